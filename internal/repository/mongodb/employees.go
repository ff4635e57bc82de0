package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

func (s *Store) ListEmployees(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Employee, error) {
	filter := bson.M{"ownerId": ownerID}
	if search != "" {
		filter["$or"] = searchAny(search, "fullName", "role", "phone")
	}

	employees := []models.Employee{}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := s.find(ctx, employeesColl, filter, &employees, opts); err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *Store) GetEmployee(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	found, err := s.findOne(ctx, employeesColl, ownedBy(ownerID, id), &employee)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("Employee")
	}
	return &employee, nil
}

func (s *Store) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	s.stamp(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	return s.insert(ctx, employeesColl, employee)
}

func (s *Store) UpdateEmployee(ctx context.Context, ownerID, id primitive.ObjectID, patch models.EmployeePatch) (*models.Employee, error) {
	set := bson.M{}
	if patch.FullName != nil {
		set["fullName"] = *patch.FullName
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	var employee models.Employee
	found, err := s.update(ctx, employeesColl, ownedBy(ownerID, id), set, nil, &employee)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NotFoundError("Employee")
	}
	return &employee, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, ownerID, id primitive.ObjectID) error {
	deleted, err := s.deleteOwned(ctx, employeesColl, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NotFoundError("Employee")
	}
	return nil
}
