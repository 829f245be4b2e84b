package media_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
	"github.com/doneo/backend/repository/mocks"
	"github.com/doneo/backend/usecase/media"
)

func TestAddAttachments_SharedLinkAndCaption(t *testing.T) {
	attachments := new(mocks.AttachmentRepositoryMock)
	tasks := new(mocks.TaskRepositoryMock)

	attachments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Attachment) bool {
		return a.LinkedTaskID == "t1" && a.Caption == "site photos" && a.UploadedBy == "ana"
	})).Return(&domain.Attachment{ID: "att"}, nil).Twice()

	uc := media.New(attachments, tasks, nil, nil)
	created, err := uc.AddAttachments(context.Background(), "ana", "p1",
		[]media.Item{
			{Type: domain.AttachmentImage, FileName: "one.jpg"},
			{Type: domain.AttachmentImage, FileName: "two.jpg"},
		},
		media.Link{TaskID: "t1"},
		"site photos",
	)

	require.NoError(t, err)
	require.Len(t, created, 2)
	attachments.AssertExpectations(t)
}

func TestAddAttachments_ResolvesSubtaskParent(t *testing.T) {
	attachments := new(mocks.AttachmentRepositoryMock)
	tasks := new(mocks.TaskRepositoryMock)

	tasks.On("GetSubtask", mock.Anything, "s1").Return(&domain.Subtask{ID: "s1", TaskID: "t1"}, nil).Once()
	attachments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Attachment) bool {
		return a.LinkedSubtaskID == "s1" && a.LinkedTaskID == "t1"
	})).Return(&domain.Attachment{ID: "att"}, nil).Once()

	uc := media.New(attachments, tasks, nil, nil)
	_, err := uc.AddAttachments(context.Background(), "ana", "p1",
		[]media.Item{{Type: domain.AttachmentDocument, FileName: "plan.pdf"}},
		media.Link{SubtaskID: "s1"},
		"",
	)

	require.NoError(t, err)
	attachments.AssertExpectations(t)
}

func TestAddAttachments_RejectsMismatchedSubtaskLink(t *testing.T) {
	attachments := new(mocks.AttachmentRepositoryMock)
	tasks := new(mocks.TaskRepositoryMock)

	tasks.On("GetSubtask", mock.Anything, "s1").Return(&domain.Subtask{ID: "s1", TaskID: "t1"}, nil).Once()

	uc := media.New(attachments, tasks, nil, nil)
	_, err := uc.AddAttachments(context.Background(), "ana", "p1",
		[]media.Item{{Type: domain.AttachmentImage}},
		media.Link{TaskID: "other-task", SubtaskID: "s1"},
		"",
	)

	require.ErrorIs(t, err, domain.ErrAttachmentInvalid)
	attachments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddAttachments_RequiresItems(t *testing.T) {
	uc := media.New(new(mocks.AttachmentRepositoryMock), new(mocks.TaskRepositoryMock), nil, nil)

	_, err := uc.AddAttachments(context.Background(), "ana", "p1", nil, media.Link{}, "")
	require.ErrorIs(t, err, domain.ErrInvalidPayload)
}

type feedMock struct {
	mock.Mock
}

func (m *feedMock) SendSystemMessage(ctx context.Context, projectID, content string) (*domain.Message, error) {
	args := m.Called(ctx, projectID, content)
	msg, _ := args.Get(0).(*domain.Message)
	return msg, args.Error(1)
}

func TestAddAttachments_PostsNoticePerType(t *testing.T) {
	attachments := new(mocks.AttachmentRepositoryMock)
	feed := new(feedMock)

	attachments.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Attachment{ID: "att"}, nil).Times(3)
	feed.On("SendSystemMessage", mock.Anything, "p1", "shared a document").
		Return(&domain.Message{ID: "m1", Kind: domain.MessageKindSystem}, nil).Once()
	feed.On("SendSystemMessage", mock.Anything, "p1", "shared a contact").
		Return(&domain.Message{ID: "m2", Kind: domain.MessageKindSystem}, nil).Once()

	uc := media.New(attachments, new(mocks.TaskRepositoryMock), feed, nil)
	created, err := uc.AddAttachments(context.Background(), "ana", "p1",
		[]media.Item{
			{Type: domain.AttachmentDocument, FileName: "plan.pdf"},
			{Type: domain.AttachmentDocument, FileName: "quote.pdf"},
			{Type: domain.AttachmentContact, FileName: "plumber.vcf"},
		},
		media.Link{},
		"",
	)

	require.NoError(t, err)
	require.Len(t, created, 3)
	feed.AssertExpectations(t)
}

func TestAddAttachments_NoticeFailureKeepsAttachments(t *testing.T) {
	attachments := new(mocks.AttachmentRepositoryMock)
	feed := new(feedMock)

	attachments.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Attachment{ID: "att"}, nil).Once()
	feed.On("SendSystemMessage", mock.Anything, "p1", "shared a video").
		Return(nil, domain.ErrProjectNotFound).Once()

	uc := media.New(attachments, new(mocks.TaskRepositoryMock), feed, nil)
	created, err := uc.AddAttachments(context.Background(), "ana", "p1",
		[]media.Item{{Type: domain.AttachmentVideo, FileName: "walkthrough.mp4"}},
		media.Link{},
		"",
	)

	require.NoError(t, err)
	require.Len(t, created, 1)
	feed.AssertExpectations(t)
}

func TestMediaList_GroupsByTask(t *testing.T) {
	attachments := new(mocks.AttachmentRepositoryMock)
	attachments.On("List", mock.Anything, repository.AttachmentFilter{ProjectID: "p1", Type: "image"}).
		Return([]domain.Attachment{
			{ID: "a1", Type: domain.AttachmentImage, LinkedTaskID: "t1"},
			{ID: "a2", Type: domain.AttachmentImage},
			{ID: "a3", Type: domain.AttachmentImage, LinkedTaskID: "t1"},
		}, nil).Once()

	uc := media.New(attachments, new(mocks.TaskRepositoryMock), nil, nil)
	sections, err := uc.MediaList(context.Background(), "p1", "image")

	require.NoError(t, err)
	require.Len(t, sections, 1)
	require.Equal(t, domain.AttachmentImage, sections[0].Type)

	groups := sections[0].Groups
	require.Len(t, groups, 2)
	require.Equal(t, "t1", groups[0].TaskID)
	require.Len(t, groups[0].Attachments, 2)
	require.Empty(t, groups[1].TaskID)
}

func TestMediaList_PartitionsByTypeWithoutFilter(t *testing.T) {
	attachments := new(mocks.AttachmentRepositoryMock)
	attachments.On("List", mock.Anything, repository.AttachmentFilter{ProjectID: "p1"}).
		Return([]domain.Attachment{
			{ID: "a1", Type: domain.AttachmentImage, LinkedTaskID: "t1"},
			{ID: "a2", Type: domain.AttachmentDocument, LinkedTaskID: "t1"},
			{ID: "a3", Type: domain.AttachmentImage},
		}, nil).Once()

	uc := media.New(attachments, new(mocks.TaskRepositoryMock), nil, nil)
	sections, err := uc.MediaList(context.Background(), "p1", "")

	require.NoError(t, err)
	require.Len(t, sections, 2)

	require.Equal(t, domain.AttachmentImage, sections[0].Type)
	require.Len(t, sections[0].Groups, 2)
	require.Equal(t, "t1", sections[0].Groups[0].TaskID)
	require.Empty(t, sections[0].Groups[1].TaskID)

	require.Equal(t, domain.AttachmentDocument, sections[1].Type)
	require.Len(t, sections[1].Groups, 1)
	require.Equal(t, "t1", sections[1].Groups[0].TaskID)
}
