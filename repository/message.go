package repository

import (
	"context"

	"github.com/doneo/backend/domain"
)

type MessageFilter struct {
	ProjectID string
	BeforeSeq int64
	Limit     int
}

type MessageRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	// List returns messages in ascending seq order. BeforeSeq, when set,
	// restricts the page to older entries.
	List(ctx context.Context, filter MessageFilter) ([]domain.Message, error)
	// Append stores the message and assigns the next per-project seq.
	Append(ctx context.Context, message *domain.Message) (*domain.Message, error)
	AddReaction(ctx context.Context, messageID string, reaction domain.Reaction) error
	RemoveReaction(ctx context.Context, messageID, userID, emoji string) error
}
