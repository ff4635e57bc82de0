package employee

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository"
)

// Service manages farm workers.
type Service struct {
	repo   repository.EmployeeRepository
	logger *zap.Logger
}

func NewService(repo repository.EmployeeRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Employee, error) {
	return s.repo.ListEmployees(ctx, ownerID, strings.TrimSpace(search))
}

func (s *Service) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Employee, error) {
	return s.repo.GetEmployee(ctx, ownerID, id)
}

func (s *Service) Create(ctx context.Context, ownerID primitive.ObjectID, e models.Employee) (*models.Employee, error) {
	e.ID = primitive.NilObjectID
	e.OwnerID = ownerID
	e.FullName = strings.TrimSpace(e.FullName)
	e.Role = strings.TrimSpace(e.Role)
	e.Phone = strings.TrimSpace(e.Phone)
	if e.Status == "" {
		e.Status = models.EmployeeActive
	}
	if err := validStatus(e.Status); err != nil {
		return nil, err
	}

	if err := s.repo.CreateEmployee(ctx, &e); err != nil {
		return nil, err
	}
	s.logger.Info("employee created", zap.String("id", e.ID.Hex()), zap.String("owner", ownerID.Hex()))
	return &e, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch models.EmployeePatch) (*models.Employee, error) {
	for _, v := range []*string{patch.FullName, patch.Role, patch.Phone} {
		if v != nil {
			*v = strings.TrimSpace(*v)
		}
	}
	if patch.Status != nil {
		if err := validStatus(*patch.Status); err != nil {
			return nil, err
		}
	}
	return s.repo.UpdateEmployee(ctx, ownerID, id, patch)
}

func (s *Service) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return s.repo.DeleteEmployee(ctx, ownerID, id)
}

func validStatus(status models.EmployeeStatus) error {
	switch status {
	case models.EmployeeActive, models.EmployeeOnLeave, models.EmployeeInactive:
		return nil
	}
	return models.ValidationError("Status must be one of active, on_leave, inactive")
}
