package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

// ListTasks returns the owner's tasks ordered by due date, soonest first.
func (s *Store) ListTasks(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Task, error) {
	filter := bson.M{"ownerId": ownerID}
	if search != "" {
		filter["$or"] = searchAny(search, "title", "note")
	}

	tasks := []models.Task{}
	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}, {Key: "createdAt", Value: 1}})
	if err := s.find(ctx, tasksColl, filter, &tasks, opts); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) GetTask(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	found, err := s.findOne(ctx, tasksColl, ownedBy(ownerID, id), &task)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("Task")
	}
	return &task, nil
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	s.stamp(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	return s.insert(ctx, tasksColl, task)
}

func (s *Store) UpdateTask(ctx context.Context, ownerID, id primitive.ObjectID, patch models.TaskPatch) (*models.Task, error) {
	set, unset := bson.M{}, bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Note != nil {
		set["note"] = *patch.Note
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	applyDate(set, unset, "dueDate", patch.DueDate)

	var task models.Task
	found, err := s.update(ctx, tasksColl, ownedBy(ownerID, id), set, unset, &task)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("Task")
	}
	return &task, nil
}

func (s *Store) DeleteTask(ctx context.Context, ownerID, id primitive.ObjectID) error {
	deleted, err := s.deleteOwned(ctx, tasksColl, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NotFoundError("Task")
	}
	return nil
}
