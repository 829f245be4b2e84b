package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
)

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation of ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const query = `
	SELECT id, name, description, is_muted, created_at, updated_at
	FROM projects
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var project domain.Project
	var description *string
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&description,
		&project.IsMuted,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	if description != nil {
		project.Description = *description
	}

	members, err := r.Members(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Members = members
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO projects (id, name, description, is_muted)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.Name,
		nullString(project.Description),
		project.IsMuted,
	).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
		return nil, err
	}

	for _, member := range project.Members {
		if err := r.AddMember(ctx, project.ID, member.ID); err != nil {
			return nil, err
		}
	}
	return project, nil
}

func (r *projectRepository) SetMuted(ctx context.Context, id string, muted bool) error {
	const query = `
	UPDATE projects
	SET is_muted = $2, updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, muted)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *projectRepository) AddMember(ctx context.Context, projectID, userID string) error {
	const query = `
	INSERT INTO project_members (project_id, user_id, position)
	VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM project_members WHERE project_id = $1))
	ON CONFLICT (project_id, user_id) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateMember
	}
	return nil
}

func (r *projectRepository) Members(ctx context.Context, projectID string) ([]domain.User, error) {
	const query = `
	SELECT u.id, u.name, u.phone_number, u.avatar_initials, u.created_at, u.updated_at
	FROM project_members pm
	JOIN users u ON u.id = pm.user_id
	WHERE pm.project_id = $1
	ORDER BY pm.position
	`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.User
	for rows.Next() {
		var user domain.User
		var phone, initials *string
		if err := rows.Scan(&user.ID, &user.Name, &phone, &initials, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		if phone != nil {
			user.PhoneNumber = *phone
		}
		if initials != nil {
			user.AvatarInitials = *initials
		}
		members = append(members, user)
	}
	return members, rows.Err()
}
