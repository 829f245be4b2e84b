// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
)

type TaskRepositoryMock struct {
	mock.Mock
}

func (m *TaskRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *TaskRepositoryMock) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *TaskRepositoryMock) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	created, _ := args.Get(0).(*domain.Task)
	return created, args.Error(1)
}

func (m *TaskRepositoryMock) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *TaskRepositoryMock) GetSubtask(ctx context.Context, id string) (*domain.Subtask, error) {
	args := m.Called(ctx, id)
	subtask, _ := args.Get(0).(*domain.Subtask)
	return subtask, args.Error(1)
}

func (m *TaskRepositoryMock) AddSubtask(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error) {
	args := m.Called(ctx, subtask)
	created, _ := args.Get(0).(*domain.Subtask)
	return created, args.Error(1)
}

func (m *TaskRepositoryMock) UpdateSubtask(ctx context.Context, subtask *domain.Subtask) error {
	return m.Called(ctx, subtask).Error(0)
}

type ProjectRepositoryMock struct {
	mock.Mock
}

func (m *ProjectRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)
	project, _ := args.Get(0).(*domain.Project)
	return project, args.Error(1)
}

func (m *ProjectRepositoryMock) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	args := m.Called(ctx, project)
	created, _ := args.Get(0).(*domain.Project)
	return created, args.Error(1)
}

func (m *ProjectRepositoryMock) SetMuted(ctx context.Context, id string, muted bool) error {
	return m.Called(ctx, id, muted).Error(0)
}

func (m *ProjectRepositoryMock) AddMember(ctx context.Context, projectID, userID string) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

func (m *ProjectRepositoryMock) Members(ctx context.Context, projectID string) ([]domain.User, error) {
	args := m.Called(ctx, projectID)
	members, _ := args.Get(0).([]domain.User)
	return members, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	args := m.Called(ctx, id)
	message, _ := args.Get(0).(*domain.Message)
	return message, args.Error(1)
}

func (m *MessageRepositoryMock) List(ctx context.Context, filter repository.MessageFilter) ([]domain.Message, error) {
	args := m.Called(ctx, filter)
	messages, _ := args.Get(0).([]domain.Message)
	return messages, args.Error(1)
}

func (m *MessageRepositoryMock) Append(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	args := m.Called(ctx, message)
	created, _ := args.Get(0).(*domain.Message)
	return created, args.Error(1)
}

func (m *MessageRepositoryMock) AddReaction(ctx context.Context, messageID string, reaction domain.Reaction) error {
	return m.Called(ctx, messageID, reaction).Error(0)
}

func (m *MessageRepositoryMock) RemoveReaction(ctx context.Context, messageID, userID, emoji string) error {
	return m.Called(ctx, messageID, userID, emoji).Error(0)
}

type AttachmentRepositoryMock struct {
	mock.Mock
}

func (m *AttachmentRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	args := m.Called(ctx, id)
	attachment, _ := args.Get(0).(*domain.Attachment)
	return attachment, args.Error(1)
}

func (m *AttachmentRepositoryMock) List(ctx context.Context, filter repository.AttachmentFilter) ([]domain.Attachment, error) {
	args := m.Called(ctx, filter)
	attachments, _ := args.Get(0).([]domain.Attachment)
	return attachments, args.Error(1)
}

func (m *AttachmentRepositoryMock) Create(ctx context.Context, attachment *domain.Attachment) (*domain.Attachment, error) {
	args := m.Called(ctx, attachment)
	created, _ := args.Get(0).(*domain.Attachment)
	return created, args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserRepositoryMock) Upsert(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type SessionRepositoryMock struct {
	mock.Mock
}

func (m *SessionRepositoryMock) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*domain.Session)
	return session, args.Error(1)
}

func (m *SessionRepositoryMock) Save(ctx context.Context, session *domain.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepositoryMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *SessionRepositoryMock) Extend(ctx context.Context, id string, ttlSeconds int) error {
	return m.Called(ctx, id, ttlSeconds).Error(0)
}

var (
	_ repository.TaskRepository       = (*TaskRepositoryMock)(nil)
	_ repository.ProjectRepository    = (*ProjectRepositoryMock)(nil)
	_ repository.MessageRepository    = (*MessageRepositoryMock)(nil)
	_ repository.AttachmentRepository = (*AttachmentRepositoryMock)(nil)
	_ repository.UserRepository       = (*UserRepositoryMock)(nil)
	_ repository.SessionRepository    = (*SessionRepositoryMock)(nil)
)
