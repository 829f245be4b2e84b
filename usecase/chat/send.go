package chat

import (
	"context"

	"go.uber.org/zap"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/pkg/logger"
	"github.com/doneo/backend/usecase"
)

// SendMessage appends a regular message from the actor. A message may carry
// at most one task/subtask reference; the reference title is snapshotted at
// send time when the caller left it empty.
func (uc *UseCase) SendMessage(ctx context.Context, actorID, projectID, content string, ref domain.ContextRef, quotedID string) (*domain.Message, error) {
	if content == "" {
		return nil, domain.ErrInvalidPayload
	}
	sender, err := uc.sender(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}
	ref, err = uc.resolveRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	message := &domain.Message{
		ProjectID: projectID,
		Sender:    sender,
		Content:   content,
		Kind:      domain.MessageKindRegular,
		Ref:       ref,
		QuotedID:  quotedID,
	}
	return uc.append(ctx, message)
}

// SendSystemMessage appends a message with no human sender semantics, used
// for notices such as "shared a document" or "sent a voice message".
func (uc *UseCase) SendSystemMessage(ctx context.Context, projectID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, domain.ErrInvalidPayload
	}
	message := &domain.Message{
		ProjectID: projectID,
		Content:   content,
		Kind:      domain.MessageKindSystem,
	}
	return uc.append(ctx, message)
}

// SendImageMessage registers an image attachment and appends a message
// carrying it.
func (uc *UseCase) SendImageMessage(ctx context.Context, actorID, projectID string, imageData []byte, fileName string) (*domain.Message, error) {
	if len(imageData) == 0 {
		return nil, domain.ErrAttachmentInvalid
	}
	sender, err := uc.sender(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}

	attachment := &domain.Attachment{
		ProjectID:  projectID,
		Type:       domain.AttachmentImage,
		FileName:   fileName,
		FileSize:   int64(len(imageData)),
		UploadedBy: actorID,
		ImageData:  imageData,
	}
	created, err := uc.attachments.Create(ctx, attachment)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "failed to store image attachment", err)
	}

	message := &domain.Message{
		ProjectID:    projectID,
		Sender:       sender,
		Kind:         domain.MessageKindRegular,
		AttachmentID: created.ID,
	}
	return uc.append(ctx, message)
}

// ToggleReaction adds the actor's emoji reaction to the message, or removes
// it when already present. It reports whether the reaction is set afterwards.
func (uc *UseCase) ToggleReaction(ctx context.Context, actorID, messageID, emoji string) (bool, error) {
	if emoji == "" {
		return false, domain.ErrInvalidPayload
	}
	message, err := uc.messages.GetByID(ctx, messageID)
	if err != nil {
		return false, err
	}

	if message.HasReaction(actorID, emoji) {
		if err := uc.messages.RemoveReaction(ctx, messageID, actorID, emoji); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := uc.messages.AddReaction(ctx, messageID, domain.Reaction{UserID: actorID, Emoji: emoji}); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *UseCase) append(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	created, err := uc.messages.Append(ctx, message)
	if err != nil {
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferMessage(ctx, usecase.OperationCreate, message); bufErr == nil {
				logger.WithRequestID(ctx, uc.logger).Warn("message buffered", zap.String("project_id", message.ProjectID))
				return message, nil
			}
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) sender(ctx context.Context, projectID, actorID string) (domain.User, error) {
	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return domain.User{}, err
	}
	for _, m := range project.Members {
		if m.ID == actorID {
			return m, nil
		}
	}
	return domain.User{}, domain.ErrNotMember
}

// resolveRef fills in the denormalized title snapshot and, for subtask
// references, the parent task id.
func (uc *UseCase) resolveRef(ctx context.Context, ref domain.ContextRef) (domain.ContextRef, error) {
	switch ref.Kind {
	case domain.RefNone:
		return ref, nil
	case domain.RefTask:
		if ref.Title != "" {
			return ref, nil
		}
		task, err := uc.tasks.GetByID(ctx, ref.TaskID)
		if err != nil {
			return ref, err
		}
		ref.Title = task.Title
		return ref, nil
	case domain.RefSubtask:
		if ref.Title != "" && ref.TaskID != "" {
			return ref, nil
		}
		subtask, err := uc.tasks.GetSubtask(ctx, ref.SubtaskID)
		if err != nil {
			return ref, err
		}
		if ref.Title == "" {
			ref.Title = subtask.Title
		}
		if ref.TaskID == "" {
			ref.TaskID = subtask.TaskID
		}
		return ref, nil
	default:
		return ref, domain.ErrInvalidPayload
	}
}
