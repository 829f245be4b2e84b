package chat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
	"github.com/doneo/backend/repository/mocks"
	"github.com/doneo/backend/usecase/chat"
)

func testProject() *domain.Project {
	return &domain.Project{
		ID:   "p1",
		Name: "Renovation",
		Members: []domain.User{
			{ID: "ana", Name: "Ana Diaz"},
			{ID: "ben", Name: "Ben Katz"},
		},
	}
}

func newUseCase(messages *mocks.MessageRepositoryMock, projects *mocks.ProjectRepositoryMock, tasks *mocks.TaskRepositoryMock, attachments *mocks.AttachmentRepositoryMock) *chat.UseCase {
	return chat.New(messages, projects, tasks, attachments, nil, nil)
}

func TestSendMessage_SnapshotsTaskTitle(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	projects := new(mocks.ProjectRepositoryMock)
	tasks := new(mocks.TaskRepositoryMock)

	projects.On("GetByID", mock.Anything, "p1").Return(testProject(), nil).Once()
	tasks.On("GetByID", mock.Anything, "t1").Return(&domain.Task{ID: "t1", Title: "Paint walls"}, nil).Once()
	messages.On("Append", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.Ref.Kind == domain.RefTask &&
			m.Ref.Title == "Paint walls" &&
			m.Sender.Name == "Ana Diaz"
	})).Return(&domain.Message{ID: "m1", Seq: 7}, nil).Once()

	uc := newUseCase(messages, projects, tasks, new(mocks.AttachmentRepositoryMock))
	sent, err := uc.SendMessage(context.Background(), "ana", "p1", "how is it going?", domain.TaskRef("t1", ""), "")

	require.NoError(t, err)
	require.Equal(t, int64(7), sent.Seq)
	messages.AssertExpectations(t)
}

func TestSendMessage_ResolvesSubtaskParent(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	projects := new(mocks.ProjectRepositoryMock)
	tasks := new(mocks.TaskRepositoryMock)

	projects.On("GetByID", mock.Anything, "p1").Return(testProject(), nil).Once()
	tasks.On("GetSubtask", mock.Anything, "s1").Return(&domain.Subtask{
		ID: "s1", TaskID: "t1", Title: "Buy paint",
	}, nil).Once()
	messages.On("Append", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.Ref.Kind == domain.RefSubtask &&
			m.Ref.TaskID == "t1" &&
			m.Ref.Title == "Buy paint"
	})).Return(&domain.Message{ID: "m1"}, nil).Once()

	uc := newUseCase(messages, projects, tasks, new(mocks.AttachmentRepositoryMock))
	_, err := uc.SendMessage(context.Background(), "ana", "p1", "done shopping", domain.SubtaskRef("", "s1", ""), "")

	require.NoError(t, err)
	messages.AssertExpectations(t)
}

func TestSendMessage_RejectsEmptyContentAndNonMembers(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	projects := new(mocks.ProjectRepositoryMock)

	uc := newUseCase(messages, projects, new(mocks.TaskRepositoryMock), new(mocks.AttachmentRepositoryMock))

	_, err := uc.SendMessage(context.Background(), "ana", "p1", "", domain.ContextRef{}, "")
	require.ErrorIs(t, err, domain.ErrInvalidPayload)

	projects.On("GetByID", mock.Anything, "p1").Return(testProject(), nil).Once()
	_, err = uc.SendMessage(context.Background(), "outsider", "p1", "hello", domain.ContextRef{}, "")
	require.ErrorIs(t, err, domain.ErrNotMember)

	messages.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSendImageMessage_CreatesAttachment(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	projects := new(mocks.ProjectRepositoryMock)
	attachments := new(mocks.AttachmentRepositoryMock)

	data := []byte{0xFF, 0xD8, 0xFF}

	projects.On("GetByID", mock.Anything, "p1").Return(testProject(), nil).Once()
	attachments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Attachment) bool {
		return a.Type == domain.AttachmentImage &&
			a.FileSize == int64(len(data)) &&
			a.UploadedBy == "ana"
	})).Return(&domain.Attachment{ID: "att1"}, nil).Once()
	messages.On("Append", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.AttachmentID == "att1"
	})).Return(&domain.Message{ID: "m1"}, nil).Once()

	uc := newUseCase(messages, projects, new(mocks.TaskRepositoryMock), attachments)
	_, err := uc.SendImageMessage(context.Background(), "ana", "p1", data, "photo.jpg")

	require.NoError(t, err)
	attachments.AssertExpectations(t)
	messages.AssertExpectations(t)
}

func TestSendSystemMessage_NoSender(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)

	messages.On("Append", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.Kind == domain.MessageKindSystem &&
			m.Sender.ID == "" &&
			m.Content == "shared a document"
	})).Return(&domain.Message{ID: "m1", Kind: domain.MessageKindSystem}, nil).Once()

	uc := newUseCase(messages, new(mocks.ProjectRepositoryMock), new(mocks.TaskRepositoryMock), new(mocks.AttachmentRepositoryMock))
	created, err := uc.SendSystemMessage(context.Background(), "p1", "shared a document")

	require.NoError(t, err)
	require.Equal(t, domain.MessageKindSystem, created.Kind)
	messages.AssertExpectations(t)

	_, err = uc.SendSystemMessage(context.Background(), "p1", "")
	require.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestToggleReaction(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)

	bare := &domain.Message{ID: "m1"}
	reacted := &domain.Message{ID: "m1", Reactions: []domain.Reaction{{Emoji: "👍", UserID: "ana"}}}

	messages.On("GetByID", mock.Anything, "m1").Return(bare, nil).Once()
	messages.On("AddReaction", mock.Anything, "m1", mock.MatchedBy(func(r domain.Reaction) bool {
		return r.UserID == "ana" && r.Emoji == "👍"
	})).Return(nil).Once()

	uc := newUseCase(messages, new(mocks.ProjectRepositoryMock), new(mocks.TaskRepositoryMock), new(mocks.AttachmentRepositoryMock))

	set, err := uc.ToggleReaction(context.Background(), "ana", "m1", "👍")
	require.NoError(t, err)
	require.True(t, set)

	// Toggling again removes the reaction.
	messages.On("GetByID", mock.Anything, "m1").Return(reacted, nil).Once()
	messages.On("RemoveReaction", mock.Anything, "m1", "ana", "👍").Return(nil).Once()

	set, err = uc.ToggleReaction(context.Background(), "ana", "m1", "👍")
	require.NoError(t, err)
	require.False(t, set)

	messages.AssertExpectations(t)
}

func TestListMessages_ComputesRenderMetadata(t *testing.T) {
	ana := domain.User{ID: "ana"}
	ben := domain.User{ID: "ben"}

	history := []domain.Message{
		{ID: "m1", Seq: 1, Sender: ana, Kind: domain.MessageKindRegular},
		{ID: "m2", Seq: 2, Sender: ana, Kind: domain.MessageKindRegular, Ref: domain.TaskRef("t1", "Paint walls")},
		{ID: "m3", Seq: 3, Sender: ben, Kind: domain.MessageKindRegular, Reactions: []domain.Reaction{
			{Emoji: "👍", UserID: "ana"},
		}},
		{ID: "m4", Seq: 4, Sender: ben, Kind: domain.MessageKindSubtaskDone, Ref: domain.SubtaskRef("t1", "s1", "Buy paint")},
	}

	messages := new(mocks.MessageRepositoryMock)
	messages.On("List", mock.Anything, repository.MessageFilter{ProjectID: "p1", Limit: 50}).
		Return(history, nil).Once()

	uc := newUseCase(messages, new(mocks.ProjectRepositoryMock), new(mocks.TaskRepositoryMock), new(mocks.AttachmentRepositoryMock))
	feed, err := uc.ListMessages(context.Background(), "p1", 50, 0)

	require.NoError(t, err)
	require.Len(t, feed, 4)

	// m1 opens the feed.
	require.True(t, feed[0].StartsGroup)
	require.False(t, feed[0].ShowsContextHeader)

	// m2 continues Ana's group but introduces a task reference.
	require.False(t, feed[1].StartsGroup)
	require.True(t, feed[1].ShowsContextHeader)

	// m3 switches sender and carries Ana's reaction.
	require.True(t, feed[2].StartsGroup)
	require.Len(t, feed[2].Reactions, 1)
	require.Equal(t, "👍", feed[2].Reactions[0].Emoji)

	// m4 is a status line with a subtask header.
	require.True(t, feed[3].StartsGroup)
	require.True(t, feed[3].ShowsContextHeader)
}

func TestBuildFeed_Empty(t *testing.T) {
	require.Nil(t, chat.BuildFeed(nil))
}
