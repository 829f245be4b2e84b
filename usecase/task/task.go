package task

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/pkg/logger"
	"github.com/doneo/backend/repository"
	"github.com/doneo/backend/usecase"
)

// UseCase is the task and subtask registry: all task mutations flow through
// it, and the ones that matter to the rest of the team leave a trace in the
// project feed.
type UseCase struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	messages repository.MessageRepository
	policy   domain.Authorizer
	buffer   usecase.OperationBuffer
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	messages repository.MessageRepository,
	policy domain.Authorizer,
	buffer usecase.OperationBuffer,
	logger *zap.Logger,
) *UseCase {
	if policy == nil {
		policy = domain.MemberPolicy{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		projects: projects,
		messages: messages,
		policy:   policy,
		buffer:   buffer,
		logger:   logger,
	}
}

// CreateInput carries the fields accepted when creating a task.
type CreateInput struct {
	Title     string
	Notes     string
	DueDate   *time.Time
	Assignees []domain.User
	Subtasks  []SubtaskInput
}

// SubtaskInput carries the fields accepted when adding a subtask.
type SubtaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Assignees   []domain.User
}

// CreateTask registers a new task. Every assignee starts with a pending
// acknowledgement, so the task shows up in their inbox until accepted.
func (uc *UseCase) CreateTask(ctx context.Context, actorID, projectID string, input CreateInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, domain.ErrInvalidPayload
	}
	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(actorID) {
		return nil, domain.ErrNotMember
	}

	task := &domain.Task{
		ProjectID: projectID,
		Title:     input.Title,
		Status:    domain.TaskStatusPending,
		Assignees: input.Assignees,
		DueDate:   input.DueDate,
		Notes:     input.Notes,
		CreatedBy: actorID,
	}
	for _, assignee := range input.Assignees {
		task.PendingFor = append(task.PendingFor, assignee.ID)
	}
	for i, sub := range input.Subtasks {
		task.Subtasks = append(task.Subtasks, domain.Subtask{
			Title:       sub.Title,
			Description: sub.Description,
			DueDate:     sub.DueDate,
			Assignees:   sub.Assignees,
			Position:    i + 1,
		})
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

// GetTask returns a task with its subtasks ordered for display.
func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Subtasks = domain.SortSubtasksForDisplay(task.Subtasks)
	return task, nil
}

// ListTasks returns project tasks matching the filter.
func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Subtasks = domain.SortSubtasksForDisplay(tasks[i].Subtasks)
	}
	return tasks, nil
}

// ToggleTask flips the task status and drops a system status line in the feed.
func (uc *UseCase) ToggleTask(ctx context.Context, actorID, taskID string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if !uc.policy.CanEditTask(actorID, project, task) {
		return nil, domain.ErrForbidden
	}

	task.Status = task.Status.Toggled()
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	actor := memberByID(project, actorID)
	verb := "reopened"
	if task.Status == domain.TaskStatusDone {
		verb = "completed"
	}
	uc.postStatus(ctx, &domain.Message{
		ProjectID: task.ProjectID,
		Sender:    actor,
		Content:   fmt.Sprintf("%s %s the task", actor.Name, verb),
		Kind:      domain.MessageKindSystem,
		Ref:       domain.TaskRef(task.ID, task.Title),
	})
	return task, nil
}

// ToggleSubtask flips the subtask completion state and appends exactly one
// status message referencing the subtask, authored by the acting user.
func (uc *UseCase) ToggleSubtask(ctx context.Context, actorID, subtaskID string) (*domain.Subtask, error) {
	subtask, err := uc.tasks.GetSubtask(ctx, subtaskID)
	if err != nil {
		return nil, err
	}
	task, err := uc.tasks.GetByID(ctx, subtask.TaskID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if !uc.policy.CanToggleSubtask(actorID, project, task) {
		return nil, domain.ErrForbidden
	}

	subtask.IsDone = !subtask.IsDone
	if err := uc.tasks.UpdateSubtask(ctx, subtask); err != nil {
		return nil, err
	}

	actor := memberByID(project, actorID)
	kind := domain.MessageKindSubtaskReopened
	verb := "reopened"
	if subtask.IsDone {
		kind = domain.MessageKindSubtaskDone
		verb = "completed"
	}
	uc.postStatus(ctx, &domain.Message{
		ProjectID: task.ProjectID,
		Sender:    actor,
		Content:   fmt.Sprintf("%s %s %q", actor.Name, verb, subtask.Title),
		Kind:      kind,
		Ref:       domain.SubtaskRef(task.ID, subtask.ID, subtask.Title),
	})
	return subtask, nil
}

// AcceptTask moves the task out of the actor's pending-assignment state. An
// optional note is posted to the feed tagged with the task reference.
func (uc *UseCase) AcceptTask(ctx context.Context, actorID, taskID, note string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Acknowledge(actorID) {
		return task, nil
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return task, nil
		}
		return nil, err
	}

	if note != "" {
		project, err := uc.projects.GetByID(ctx, task.ProjectID)
		if err != nil {
			return nil, err
		}
		uc.postStatus(ctx, &domain.Message{
			ProjectID: task.ProjectID,
			Sender:    memberByID(project, actorID),
			Content:   note,
			Kind:      domain.MessageKindRegular,
			Ref:       domain.TaskRef(task.ID, task.Title),
		})
	}
	return task, nil
}

// AddSubtask appends a subtask to the task.
func (uc *UseCase) AddSubtask(ctx context.Context, actorID, taskID string, input SubtaskInput) (*domain.Subtask, error) {
	if input.Title == "" {
		return nil, domain.ErrInvalidPayload
	}
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if !uc.policy.CanEditTask(actorID, project, task) {
		return nil, domain.ErrForbidden
	}

	subtask := &domain.Subtask{
		TaskID:      taskID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Assignees:   input.Assignees,
	}
	return uc.tasks.AddSubtask(ctx, subtask)
}

// Inbox returns the tasks that are still unacknowledged assignments for the user.
func (uc *UseCase) Inbox(ctx context.Context, projectID, userID string) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{
		ProjectID:  projectID,
		PendingFor: userID,
	})
}

// InboxCount returns the badge count for the user's new-task inbox.
func (uc *UseCase) InboxCount(ctx context.Context, projectID, userID string) (int, error) {
	tasks, err := uc.Inbox(ctx, projectID, userID)
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func (uc *UseCase) postStatus(ctx context.Context, message *domain.Message) {
	if _, err := uc.messages.Append(ctx, message); err != nil {
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferMessage(ctx, usecase.OperationCreate, message); bufErr == nil {
				logger.WithRequestID(ctx, uc.logger).Warn("status message buffered", zap.String("kind", string(message.Kind)))
				return
			}
		}
		uc.logger.Error("failed to append status message", zap.Error(err))
	}
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}

func memberByID(project *domain.Project, userID string) domain.User {
	for _, m := range project.Members {
		if m.ID == userID {
			return m
		}
	}
	return domain.User{ID: userID}
}
