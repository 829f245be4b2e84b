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

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository returns a Postgres-backed implementation of AttachmentRepository.
func NewAttachmentRepository(pool *pgxpool.Pool) repository.AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

func (r *attachmentRepository) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	const query = `
	SELECT id, project_id, type, file_name, file_size, caption, uploaded_by, uploaded_at,
	       linked_task_id, linked_subtask_id, image_data
	FROM attachments
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanAttachment(row)
}

func (r *attachmentRepository) List(ctx context.Context, filter repository.AttachmentFilter) ([]domain.Attachment, error) {
	const query = `
	SELECT id, project_id, type, file_name, file_size, caption, uploaded_by, uploaded_at,
	       linked_task_id, linked_subtask_id, image_data
	FROM attachments
	WHERE project_id = $1
	  AND ($2 = '' OR type = $2)
	  AND ($3 = '' OR linked_task_id = $3)
	ORDER BY uploaded_at, id
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.ProjectID,
		filter.Type,
		filter.TaskID,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []domain.Attachment
	for rows.Next() {
		attachment, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, *attachment)
	}
	return attachments, rows.Err()
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) (*domain.Attachment, error) {
	if attachment == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := attachment.Validate(); err != nil {
		return nil, err
	}
	if attachment.ID == "" {
		attachment.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO attachments
		(id, project_id, type, file_name, file_size, caption, uploaded_by, linked_task_id, linked_subtask_id, image_data)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING uploaded_at
	`
	if err := r.pool.QueryRow(ctx, query,
		attachment.ID,
		attachment.ProjectID,
		attachment.Type,
		attachment.FileName,
		attachment.FileSize,
		nullString(attachment.Caption),
		attachment.UploadedBy,
		nullString(attachment.LinkedTaskID),
		nullString(attachment.LinkedSubtaskID),
		attachment.ImageData,
	).Scan(&attachment.UploadedAt); err != nil {
		return nil, err
	}
	return attachment, nil
}

func scanAttachment(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Attachment, error) {
	var attachment domain.Attachment
	var (
		caption         *string
		linkedTaskID    *string
		linkedSubtaskID *string
	)

	if err := row.Scan(
		&attachment.ID,
		&attachment.ProjectID,
		&attachment.Type,
		&attachment.FileName,
		&attachment.FileSize,
		&caption,
		&attachment.UploadedBy,
		&attachment.UploadedAt,
		&linkedTaskID,
		&linkedSubtaskID,
		&attachment.ImageData,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAttachmentNotFound
		}
		return nil, err
	}

	if caption != nil {
		attachment.Caption = *caption
	}
	if linkedTaskID != nil {
		attachment.LinkedTaskID = *linkedTaskID
	}
	if linkedSubtaskID != nil {
		attachment.LinkedSubtaskID = *linkedSubtaskID
	}
	return &attachment, nil
}
