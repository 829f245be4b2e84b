package repository

import (
	"context"

	"github.com/doneo/backend/domain"
)

type TaskFilter struct {
	ProjectID  string
	Status     string
	AssigneeID string
	PendingFor string
	Limit      int
	Offset     int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	GetSubtask(ctx context.Context, id string) (*domain.Subtask, error)
	AddSubtask(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error)
	UpdateSubtask(ctx context.Context, subtask *domain.Subtask) error
}
