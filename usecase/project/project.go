package project

import (
	"context"

	"go.uber.org/zap"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
)

// UseCase owns project-level state: members, mute flag, metadata.
type UseCase struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	logger   *zap.Logger
}

func New(projects repository.ProjectRepository, users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		projects: projects,
		users:    users,
		logger:   logger,
	}
}

// GetProject returns the project with its ordered member list.
func (uc *UseCase) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return uc.projects.GetByID(ctx, id)
}

// CreateProject registers a new project.
func (uc *UseCase) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return uc.projects.Create(ctx, project)
}

// AddMember appends an existing user to the project member list; members stay
// unique by id.
func (uc *UseCase) AddMember(ctx context.Context, projectID, userID string) error {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return uc.projects.AddMember(ctx, projectID, userID)
}

// SetMuted flips the project mute flag.
func (uc *UseCase) SetMuted(ctx context.Context, projectID string, muted bool) error {
	return uc.projects.SetMuted(ctx, projectID, muted)
}
