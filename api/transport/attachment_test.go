package transport_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doneo/backend/api/transport"
	"github.com/doneo/backend/domain"
)

func TestNewAttachmentView_SizeLabel(t *testing.T) {
	view := transport.NewAttachmentView(domain.Attachment{
		ID:       "a1",
		FileName: "plan.pdf",
		FileSize: 2400000,
	})

	require.Equal(t, "2.4 MB", view.SizeLabel)
}

func TestNewAttachmentGroupViews_LabelsGeneralGroup(t *testing.T) {
	groups := []domain.AttachmentGroup{
		{TaskID: "t1", Attachments: []domain.Attachment{{ID: "a1"}}},
		{Attachments: []domain.Attachment{{ID: "a2"}, {ID: "a3"}}},
	}

	views := transport.NewAttachmentGroupViews(groups)
	require.Len(t, views, 2)

	require.Equal(t, "t1", views[0].Label)
	require.Equal(t, transport.GeneralGroupLabel, views[1].Label)
	require.Len(t, views[1].Attachments, 2)
}
