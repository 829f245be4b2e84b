package repository

import (
	"context"

	"github.com/doneo/backend/domain"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	SetMuted(ctx context.Context, id string, muted bool) error
	AddMember(ctx context.Context, projectID, userID string) error
	Members(ctx context.Context, projectID string) ([]domain.User, error)
}
