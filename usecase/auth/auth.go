package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
)

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	issuer   string
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, secret, issuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		issuer:   issuer,
		logger:   logger,
	}
}

func (uc *UseCase) CreateSession(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.newSession(ctx, userID, ttl)
}

// LoginByPhone signs a user in by phone number, creating the profile on
// first login. The phone number is the stable identity across devices.
func (uc *UseCase) LoginByPhone(ctx context.Context, phone, name string, ttl time.Duration) (*domain.User, *domain.Session, error) {
	if phone == "" {
		return nil, nil, domain.ErrInvalidPayload
	}

	user, err := uc.users.GetByPhone(ctx, phone)
	switch {
	case err == nil:
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		user = &domain.User{
			ID:          uuid.NewString(),
			Name:        name,
			PhoneNumber: phone,
		}
		user.AvatarInitials = user.Initials()
		if err := uc.users.Upsert(ctx, user); err != nil {
			return nil, nil, err
		}
		uc.logger.Info("registered user", zap.String("user_id", user.ID))
	default:
		return nil, nil, err
	}

	session, err := uc.newSession(ctx, user.ID, ttl)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (uc *UseCase) newSession(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return session, nil
}

func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// AccessToken mints a signed JWT for the session's user, expiring with the
// session. The auth middleware consumes the user_id claim.
func (uc *UseCase) AccessToken(session *domain.Session) (string, error) {
	if session == nil {
		return "", domain.ErrInvalidPayload
	}
	claims := jwt.MapClaims{
		"user_id": session.UserID,
		"sid":     session.ID,
		"iss":     uc.issuer,
		"exp":     session.ExpiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.secret)
}
