package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

func TestStore_ListFarmlandsDecodesCursor(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		store := newStore(mt.DB)
		owner := primitive.NewObjectID()
		due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

		first := mtest.CreateCursorResponse(1, "farm.farmlands", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "ownerId", Value: owner},
			{Key: "name", Value: "North"},
			{Key: "crops", Value: bson.A{"Maize"}},
			{Key: "nextIrrigationDate", Value: due},
			{Key: "status", Value: "active"},
		})
		last := mtest.CreateCursorResponse(0, "farm.farmlands", mtest.NextBatch)
		mt.AddMockResponses(first, last)

		list, err := store.ListFarmlands(context.Background(), owner, "nor")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "North", list[0].Name)
		require.NotNil(t, list[0].NextIrrigationDate)
		require.True(t, due.Equal(*list[0].NextIrrigationDate))
	})
}

func TestStore_GetFarmlandMissingIsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing", func(mt *mtest.T) {
		store := newStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "farm.farmlands", mtest.FirstBatch))

		_, err := store.GetFarmland(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		require.ErrorIs(t, err, models.ErrNotFound)
		require.EqualError(t, err, "Farmland not found")
	})
}

func TestStore_DeleteReportsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		store := newStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(t, store.DeleteTask(context.Background(), primitive.NewObjectID(), primitive.NewObjectID()))
	})

	mt.Run("nothing deleted", func(mt *mtest.T) {
		store := newStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := store.DeleteEmployee(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestStore_UpdateTaskReturnsDocument(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update", func(mt *mtest.T) {
		store := newStore(mt.DB)
		owner, id := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "ownerId", Value: owner},
			{Key: "title", Value: "Weed beans"},
			{Key: "priority", Value: "high"},
			{Key: "status", Value: "pending"},
		}}))

		title := "Weed beans"
		task, err := store.UpdateTask(context.Background(), owner, id, models.TaskPatch{
			Title:   &title,
			DueDate: models.ClearDate(),
		})
		require.NoError(t, err)
		require.Equal(t, id, task.ID)
		require.Equal(t, models.PriorityHigh, task.Priority)
		require.Nil(t, task.DueDate)
	})
}

func TestStore_CreateUserDuplicateIsConflict(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate", func(mt *mtest.T) {
		store := newStore(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := store.CreateUser(context.Background(), &models.User{Email: "demo@hingaguru.com"})
		require.ErrorIs(t, err, models.ErrConflict)
		require.EqualError(t, err, "User already exists")
	})
}

func TestTransactionFilter(t *testing.T) {
	owner := primitive.NewObjectID()
	farm := primitive.NewObjectID()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	filter := transactionFilter(owner, models.TransactionFilter{
		Type:       models.TransactionExpense,
		Category:   "seeds",
		FarmlandID: &farm,
		From:       &from,
	})

	require.Equal(t, owner, filter["ownerId"])
	require.Equal(t, models.TransactionExpense, filter["type"])
	require.Equal(t, "seeds", filter["category"])
	require.Equal(t, farm, filter["farmlandId"])
	require.Equal(t, bson.M{"$gte": from}, filter["date"])
	require.NotContains(t, filter, "employeeId")
}

func TestSearchPatternEscapesMetacharacters(t *testing.T) {
	pattern := searchPattern("a.b(c)")
	require.Equal(t, `a\.b\(c\)`, pattern.Pattern)
	require.Equal(t, "i", pattern.Options)
}
