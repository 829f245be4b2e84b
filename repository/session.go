package repository

import (
	"context"

	"github.com/doneo/backend/domain"
)

// SessionRepository stores login sessions. TTL handling lives in the
// implementation; expired sessions are treated as missing.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, ttlSeconds int) error
}
