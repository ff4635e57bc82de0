// Package repository declares the entity stores. Every owner-scoped method
// filters by owner so that records never leak between accounts; a record that
// exists under another owner is reported as models.ErrNotFound.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

type FarmlandRepository interface {
	ListFarmlands(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Farmland, error)
	GetFarmland(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Farmland, error)
	CreateFarmland(ctx context.Context, farmland *models.Farmland) error
	UpdateFarmland(ctx context.Context, ownerID, id primitive.ObjectID, patch models.FarmlandPatch) (*models.Farmland, error)
	DeleteFarmland(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type EmployeeRepository interface {
	ListEmployees(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Employee, error)
	GetEmployee(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Employee, error)
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	UpdateEmployee(ctx context.Context, ownerID, id primitive.ObjectID, patch models.EmployeePatch) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type TransactionRepository interface {
	ListTransactions(ctx context.Context, ownerID primitive.ObjectID, filter models.TransactionFilter) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// CropRepository reads are not owner-scoped: crops are shared reference data.
// Writes are restricted to the crop's owner.
type CropRepository interface {
	ListCrops(ctx context.Context, search string) ([]models.Crop, error)
	GetCrop(ctx context.Context, id primitive.ObjectID) (*models.Crop, error)
	CountCrops(ctx context.Context) (int64, error)
	CreateCrop(ctx context.Context, crop *models.Crop) error
	CreateCrops(ctx context.Context, crops []models.Crop) error
	UpdateCrop(ctx context.Context, ownerID, id primitive.ObjectID, patch models.CropPatch) (*models.Crop, error)
	DeleteCrop(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type TaskRepository interface {
	ListTasks(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Task, error)
	GetTask(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Task, error)
	CreateTask(ctx context.Context, task *models.Task) error
	UpdateTask(ctx context.Context, ownerID, id primitive.ObjectID, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// UserRepository returns models.ErrNotFound for unknown users and
// models.ErrConflict when an email is already registered.
type UserRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshot *models.SummarySnapshot) error
	ListSnapshots(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]models.SummarySnapshot, error)
}

// Store bundles every entity store behind one backend.
type Store interface {
	FarmlandRepository
	EmployeeRepository
	TransactionRepository
	CropRepository
	TaskRepository
	UserRepository
	SnapshotRepository
	Close(ctx context.Context) error
}
