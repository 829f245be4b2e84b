package chat

import (
	"go.uber.org/zap"

	"github.com/doneo/backend/repository"
	"github.com/doneo/backend/usecase"
)

// UseCase is the message feed facade: sending, reacting, and reading the
// project conversation with its render metadata.
type UseCase struct {
	messages    repository.MessageRepository
	projects    repository.ProjectRepository
	tasks       repository.TaskRepository
	attachments repository.AttachmentRepository
	buffer      usecase.OperationBuffer
	logger      *zap.Logger
}

func New(
	messages repository.MessageRepository,
	projects repository.ProjectRepository,
	tasks repository.TaskRepository,
	attachments repository.AttachmentRepository,
	buffer usecase.OperationBuffer,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		messages:    messages,
		projects:    projects,
		tasks:       tasks,
		attachments: attachments,
		buffer:      buffer,
		logger:      logger,
	}
}
