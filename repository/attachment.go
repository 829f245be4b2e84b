package repository

import (
	"context"

	"github.com/doneo/backend/domain"
)

type AttachmentFilter struct {
	ProjectID string
	Type      string
	TaskID    string
	Limit     int
	Offset    int
}

type AttachmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Attachment, error)
	List(ctx context.Context, filter AttachmentFilter) ([]domain.Attachment, error)
	Create(ctx context.Context, attachment *domain.Attachment) (*domain.Attachment, error)
}
