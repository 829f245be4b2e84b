package repository

import (
	"context"

	"github.com/doneo/backend/domain"
)

// UserRepository stores user profiles. GetByPhone backs phone-based login,
// where the phone number is the stable identity across devices.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
