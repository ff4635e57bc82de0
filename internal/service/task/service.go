package task

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/repository"
)

// Service manages the owner's task planner.
type Service struct {
	repo   repository.TaskRepository
	logger *zap.Logger
}

func NewService(repo repository.TaskRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, ownerID primitive.ObjectID, search string) ([]models.Task, error) {
	return s.repo.ListTasks(ctx, ownerID, strings.TrimSpace(search))
}

func (s *Service) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Task, error) {
	return s.repo.GetTask(ctx, ownerID, id)
}

// Create stores a pending task. Unknown priorities fall back to medium.
func (s *Service) Create(ctx context.Context, ownerID primitive.ObjectID, t models.Task) (*models.Task, error) {
	t.ID = primitive.NilObjectID
	t.OwnerID = ownerID
	t.Title = strings.TrimSpace(t.Title)
	t.Note = strings.TrimSpace(t.Note)
	if t.Title == "" {
		return nil, models.ValidationError("Title is required")
	}
	if !validPriority(t.Priority) {
		t.Priority = models.PriorityMedium
	}
	t.Status = models.TaskPending

	if err := s.repo.CreateTask(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update applies the patch. Invalid priority or status values are ignored
// rather than rejected.
func (s *Service) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch models.TaskPatch) (*models.Task, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, models.ValidationError("Title is required")
		}
		patch.Title = &title
	}
	if patch.Note != nil {
		note := strings.TrimSpace(*patch.Note)
		patch.Note = &note
	}
	if patch.Priority != nil && !validPriority(*patch.Priority) {
		patch.Priority = nil
	}
	if patch.Status != nil && *patch.Status != models.TaskPending && *patch.Status != models.TaskCompleted {
		patch.Status = nil
	}
	return s.repo.UpdateTask(ctx, ownerID, id, patch)
}

func (s *Service) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return s.repo.DeleteTask(ctx, ownerID, id)
}

func validPriority(p models.TaskPriority) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}
