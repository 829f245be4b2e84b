package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository/mocks"
	"github.com/doneo/backend/usecase/project"
)

func TestCreateProject_ValidatesName(t *testing.T) {
	uc := project.New(new(mocks.ProjectRepositoryMock), new(mocks.UserRepositoryMock), nil)

	_, err := uc.CreateProject(context.Background(), &domain.Project{})
	require.ErrorIs(t, err, domain.ErrProjectNameEmpty)
}

func TestCreateProject_RejectsDuplicateMembers(t *testing.T) {
	uc := project.New(new(mocks.ProjectRepositoryMock), new(mocks.UserRepositoryMock), nil)

	_, err := uc.CreateProject(context.Background(), &domain.Project{
		Name:    "Renovation",
		Members: []domain.User{{ID: "u1"}, {ID: "u1"}},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateMember)
}

func TestAddMember_RequiresExistingUser(t *testing.T) {
	projects := new(mocks.ProjectRepositoryMock)
	users := new(mocks.UserRepositoryMock)

	users.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound).Once()

	uc := project.New(projects, users, nil)
	err := uc.AddMember(context.Background(), "p1", "ghost")

	require.ErrorIs(t, err, domain.ErrUserNotFound)
	projects.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddMember_DelegatesToRepository(t *testing.T) {
	projects := new(mocks.ProjectRepositoryMock)
	users := new(mocks.UserRepositoryMock)

	users.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil).Once()
	projects.On("AddMember", mock.Anything, "p1", "u1").Return(nil).Once()

	uc := project.New(projects, users, nil)
	require.NoError(t, uc.AddMember(context.Background(), "p1", "u1"))
	projects.AssertExpectations(t)
}

func TestSetMuted(t *testing.T) {
	projects := new(mocks.ProjectRepositoryMock)
	projects.On("SetMuted", mock.Anything, "p1", true).Return(nil).Once()

	uc := project.New(projects, new(mocks.UserRepositoryMock), nil)
	require.NoError(t, uc.SetMuted(context.Background(), "p1", true))
	projects.AssertExpectations(t)
}
