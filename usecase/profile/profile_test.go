package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository/mocks"
	"github.com/doneo/backend/usecase/profile"
)

type bufferMock struct {
	mock.Mock
}

func (m *bufferMock) BufferProfile(ctx context.Context, operation string, user *domain.User) error {
	return m.Called(ctx, operation, user).Error(0)
}

func (m *bufferMock) BufferTask(ctx context.Context, operation string, task *domain.Task) error {
	return m.Called(ctx, operation, task).Error(0)
}

func (m *bufferMock) BufferMessage(ctx context.Context, operation string, message *domain.Message) error {
	return m.Called(ctx, operation, message).Error(0)
}

func TestUpdateProfile_DerivesInitials(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	users.On("Upsert", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.AvatarInitials == "AD"
	})).Return(nil).Once()

	uc := profile.New(users, nil, nil)
	updated, err := uc.UpdateProfile(context.Background(), &domain.User{ID: "u1", Name: "Ana Diaz"})

	require.NoError(t, err)
	require.Equal(t, "AD", updated.AvatarInitials)
	users.AssertExpectations(t)
}

func TestUpdateProfile_RequiresName(t *testing.T) {
	uc := profile.New(new(mocks.UserRepositoryMock), nil, nil)

	_, err := uc.UpdateProfile(context.Background(), &domain.User{ID: "u1"})
	require.Error(t, err)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUpdateProfile_BuffersOnRepositoryFailure(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	buffer := new(bufferMock)

	users.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	buffer.On("BufferProfile", mock.Anything, "update", mock.Anything).Return(nil).Once()

	uc := profile.New(users, buffer, nil)
	updated, err := uc.UpdateProfile(context.Background(), &domain.User{ID: "u1", Name: "Ana Diaz"})

	require.NoError(t, err)
	require.NotNil(t, updated)
	buffer.AssertExpectations(t)
}
