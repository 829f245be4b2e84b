package transport

import (
	"github.com/dustin/go-humanize"

	"github.com/doneo/backend/domain"
)

// GeneralGroupLabel names the media-browser group for attachments without a
// task link.
const GeneralGroupLabel = "General"

// AttachmentView decorates an attachment with a human-readable size label.
type AttachmentView struct {
	domain.Attachment
	SizeLabel string `json:"size_label"`
}

// AttachmentGroupView is one media-browser section.
type AttachmentGroupView struct {
	TaskID      string           `json:"task_id,omitempty"`
	Label       string           `json:"label"`
	Attachments []AttachmentView `json:"attachments"`
}

// NewAttachmentView wraps the attachment for API responses.
func NewAttachmentView(a domain.Attachment) AttachmentView {
	return AttachmentView{
		Attachment: a,
		SizeLabel:  humanize.Bytes(uint64(a.FileSize)),
	}
}

// MediaSectionView is one per-type partition of the media browser response.
type MediaSectionView struct {
	Type   string                `json:"type"`
	Groups []AttachmentGroupView `json:"groups"`
}

// NewMediaSectionViews maps the domain sections to their API shape.
func NewMediaSectionViews(sections []domain.MediaSection) []MediaSectionView {
	views := make([]MediaSectionView, 0, len(sections))
	for _, s := range sections {
		views = append(views, MediaSectionView{
			Type:   string(s.Type),
			Groups: NewAttachmentGroupViews(s.Groups),
		})
	}
	return views
}

// NewAttachmentGroupViews maps domain groups to their API shape, labeling the
// unlinked group "General".
func NewAttachmentGroupViews(groups []domain.AttachmentGroup) []AttachmentGroupView {
	views := make([]AttachmentGroupView, 0, len(groups))
	for _, g := range groups {
		view := AttachmentGroupView{
			TaskID: g.TaskID,
			Label:  g.TaskID,
		}
		if view.Label == "" {
			view.Label = GeneralGroupLabel
		}
		for _, a := range g.Attachments {
			view.Attachments = append(view.Attachments, NewAttachmentView(a))
		}
		views = append(views, view)
	}
	return views
}
