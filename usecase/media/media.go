package media

import (
	"context"

	"go.uber.org/zap"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
)

// Notifier posts system notices into the project feed.
type Notifier interface {
	SendSystemMessage(ctx context.Context, projectID, content string) (*domain.Message, error)
}

// UseCase is the attachment catalog facade.
type UseCase struct {
	attachments repository.AttachmentRepository
	tasks       repository.TaskRepository
	feed        Notifier
	logger      *zap.Logger
}

func New(attachments repository.AttachmentRepository, tasks repository.TaskRepository, feed Notifier, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		attachments: attachments,
		tasks:       tasks,
		feed:        feed,
		logger:      logger,
	}
}

// Item is one attachment payload to register.
type Item struct {
	Type      domain.AttachmentType
	FileName  string
	FileSize  int64
	ImageData []byte
}

// Link is the optional task/subtask target shared by a batch of uploads.
type Link struct {
	TaskID    string
	SubtaskID string
}

// AddAttachments registers one attachment per item. All items share the same
// optional task/subtask link and caption; the uploader is the acting user and
// the upload time is assigned by the store. A subtask link is validated
// against the subtask's parent task.
func (uc *UseCase) AddAttachments(ctx context.Context, actorID, projectID string, items []Item, link Link, caption string) ([]domain.Attachment, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidPayload
	}
	if link.SubtaskID != "" {
		subtask, err := uc.tasks.GetSubtask(ctx, link.SubtaskID)
		if err != nil {
			return nil, err
		}
		if link.TaskID == "" {
			link.TaskID = subtask.TaskID
		} else if link.TaskID != subtask.TaskID {
			return nil, domain.ErrAttachmentInvalid
		}
	}

	created := make([]domain.Attachment, 0, len(items))
	for _, item := range items {
		attachment := &domain.Attachment{
			ProjectID:       projectID,
			Type:            item.Type,
			FileName:        item.FileName,
			FileSize:        item.FileSize,
			Caption:         caption,
			UploadedBy:      actorID,
			LinkedTaskID:    link.TaskID,
			LinkedSubtaskID: link.SubtaskID,
			ImageData:       item.ImageData,
		}
		stored, err := uc.attachments.Create(ctx, attachment)
		if err != nil {
			return created, domain.WrapError(domain.ErrCodeInvalid, "failed to store attachment", err)
		}
		created = append(created, *stored)
	}
	uc.logger.Info("attachments registered",
		zap.String("project_id", projectID),
		zap.Int("count", len(created)))

	uc.postNotices(ctx, projectID, items)
	return created, nil
}

// postNotices drops one "shared a ..." system message into the feed per
// attachment type in the batch. The notice is best-effort: a feed failure
// never voids the stored attachments.
func (uc *UseCase) postNotices(ctx context.Context, projectID string, items []Item) {
	if uc.feed == nil {
		return
	}
	seen := make(map[domain.AttachmentType]bool, len(items))
	for _, item := range items {
		if seen[item.Type] {
			continue
		}
		seen[item.Type] = true
		if _, err := uc.feed.SendSystemMessage(ctx, projectID, noticeFor(item.Type)); err != nil {
			uc.logger.Warn("failed to post attachment notice",
				zap.String("project_id", projectID),
				zap.String("type", string(item.Type)),
				zap.Error(err))
		}
	}
}

func noticeFor(t domain.AttachmentType) string {
	switch t {
	case domain.AttachmentDocument:
		return "shared a document"
	case domain.AttachmentContact:
		return "shared a contact"
	case domain.AttachmentVideo:
		return "shared a video"
	default:
		return "shared an image"
	}
}

// MediaList returns the media browser view: attachments partitioned by type,
// each type grouped by linked task with unlinked items in the "General"
// group, attachment order preserved within each group. A non-empty type
// filter narrows the result to that single section.
func (uc *UseCase) MediaList(ctx context.Context, projectID string, attachmentType string) ([]domain.MediaSection, error) {
	attachments, err := uc.attachments.List(ctx, repository.AttachmentFilter{
		ProjectID: projectID,
		Type:      attachmentType,
	})
	if err != nil {
		return nil, err
	}
	return domain.PartitionAttachmentsByType(attachments), nil
}
