package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doneo/backend/domain"
)

func TestAttachment_Validate(t *testing.T) {
	valid := domain.Attachment{Type: domain.AttachmentImage, FileSize: 10}
	require.NoError(t, valid.Validate())

	unknown := domain.Attachment{Type: "spreadsheet"}
	require.ErrorIs(t, unknown.Validate(), domain.ErrAttachmentInvalid)

	negative := domain.Attachment{Type: domain.AttachmentDocument, FileSize: -1}
	require.ErrorIs(t, negative.Validate(), domain.ErrAttachmentInvalid)

	// A subtask link without its parent task link is rejected.
	orphan := domain.Attachment{Type: domain.AttachmentImage, LinkedSubtaskID: "s1"}
	require.ErrorIs(t, orphan.Validate(), domain.ErrAttachmentInvalid)

	linked := domain.Attachment{Type: domain.AttachmentImage, LinkedTaskID: "t1", LinkedSubtaskID: "s1"}
	require.NoError(t, linked.Validate())
}

func TestGroupAttachmentsByTask(t *testing.T) {
	attachments := []domain.Attachment{
		{ID: "a1", LinkedTaskID: "t1"},
		{ID: "a2", LinkedTaskID: "t1"},
		{ID: "a3"},
		{ID: "a4", LinkedTaskID: "t2"},
		{ID: "a5"},
	}

	groups := domain.GroupAttachmentsByTask(attachments)
	require.Len(t, groups, 3)

	// First-seen order: t1, then the unlinked group, then t2.
	require.Equal(t, "t1", groups[0].TaskID)
	require.Len(t, groups[0].Attachments, 2)

	require.Empty(t, groups[1].TaskID)
	require.Equal(t, "a3", groups[1].Attachments[0].ID)
	require.Equal(t, "a5", groups[1].Attachments[1].ID)

	require.Equal(t, "t2", groups[2].TaskID)

	require.Nil(t, domain.GroupAttachmentsByTask(nil))
}

func TestPartitionAttachmentsByType(t *testing.T) {
	attachments := []domain.Attachment{
		{ID: "a1", Type: domain.AttachmentImage, LinkedTaskID: "t1"},
		{ID: "a2", Type: domain.AttachmentDocument},
		{ID: "a3", Type: domain.AttachmentImage},
		{ID: "a4", Type: domain.AttachmentDocument, LinkedTaskID: "t1"},
	}

	sections := domain.PartitionAttachmentsByType(attachments)
	require.Len(t, sections, 2)

	require.Equal(t, domain.AttachmentImage, sections[0].Type)
	require.Len(t, sections[0].Groups, 2)
	require.Equal(t, "t1", sections[0].Groups[0].TaskID)
	require.Equal(t, "a3", sections[0].Groups[1].Attachments[0].ID)

	require.Equal(t, domain.AttachmentDocument, sections[1].Type)
	require.Empty(t, sections[1].Groups[0].TaskID)
	require.Equal(t, "t1", sections[1].Groups[1].TaskID)

	require.Nil(t, domain.PartitionAttachmentsByType(nil))
}
