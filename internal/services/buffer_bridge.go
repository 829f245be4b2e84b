package services

import (
	"context"
	"encoding/json"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/internal/infrastructure/buffer"
	"github.com/doneo/backend/usecase"
)

// BufferBridge adapts the buffer processor to the usecase OperationBuffer port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferProfile(ctx context.Context, operation string, user *domain.User) error {
	if b.processor == nil || user == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	item := buffer.Item{
		UserID:    user.ID,
		Entity:    buffer.EntityProfile,
		Operation: operation,
		Data:      payload,
		Priority:  buffer.PriorityProfile,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferTask(ctx context.Context, operation string, task *domain.Task) error {
	if b.processor == nil || task == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        task.ID,
		UserID:    task.CreatedBy,
		Entity:    buffer.EntityTask,
		Operation: operation,
		Data:      payload,
		Priority:  buffer.PriorityTask,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferMessage(ctx context.Context, operation string, message *domain.Message) error {
	if b.processor == nil || message == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        message.ID,
		UserID:    message.Sender.ID,
		Entity:    buffer.EntityMessage,
		Operation: operation,
		Data:      payload,
		Priority:  buffer.PriorityMessage,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
