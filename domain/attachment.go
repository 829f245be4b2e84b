package domain

import "time"

// AttachmentType enumerates the stored media kinds.
type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentDocument AttachmentType = "document"
	AttachmentVideo    AttachmentType = "video"
	AttachmentContact  AttachmentType = "contact"
)

// Valid reports whether the type is one of the known kinds.
func (t AttachmentType) Valid() bool {
	switch t {
	case AttachmentImage, AttachmentDocument, AttachmentVideo, AttachmentContact:
		return true
	}
	return false
}

// Attachment is a stored media/document/contact item, optionally linked to a
// task or subtask. A subtask link implies LinkedTaskID names the subtask's
// parent task.
type Attachment struct {
	ID              string         `json:"id"`
	ProjectID       string         `json:"project_id"`
	Type            AttachmentType `json:"type"`
	FileName        string         `json:"file_name"`
	FileSize        int64          `json:"file_size"`
	Caption         string         `json:"caption,omitempty"`
	UploadedBy      string         `json:"uploaded_by"`
	UploadedAt      time.Time      `json:"uploaded_at"`
	LinkedTaskID    string         `json:"linked_task_id,omitempty"`
	LinkedSubtaskID string         `json:"linked_subtask_id,omitempty"`
	ImageData       []byte         `json:"image_data,omitempty"`
}

// Validate checks the attachment invariants.
func (a *Attachment) Validate() error {
	if a == nil {
		return ErrInvalidPayload
	}
	if !a.Type.Valid() {
		return ErrAttachmentInvalid
	}
	if a.FileSize < 0 {
		return ErrAttachmentInvalid
	}
	if a.LinkedSubtaskID != "" && a.LinkedTaskID == "" {
		return ErrAttachmentInvalid
	}
	return nil
}

// AttachmentGroup is a run of attachments sharing a task link. TaskID is
// empty for the unlinked ("General") group.
type AttachmentGroup struct {
	TaskID      string       `json:"task_id,omitempty"`
	Attachments []Attachment `json:"attachments"`
}

// MediaSection is one type partition of the media browser, task-grouped
// within.
type MediaSection struct {
	Type   AttachmentType    `json:"type"`
	Groups []AttachmentGroup `json:"groups"`
}

// PartitionAttachmentsByType splits attachments by type first, then groups
// each partition by linked task. Sections and groups appear in first-seen
// order.
func PartitionAttachmentsByType(attachments []Attachment) []MediaSection {
	if len(attachments) == 0 {
		return nil
	}
	index := make(map[AttachmentType]int, len(attachments))
	byType := make([][]Attachment, 0, len(attachments))
	order := make([]AttachmentType, 0, len(attachments))
	for _, a := range attachments {
		i, ok := index[a.Type]
		if !ok {
			i = len(byType)
			index[a.Type] = i
			byType = append(byType, nil)
			order = append(order, a.Type)
		}
		byType[i] = append(byType[i], a)
	}

	sections := make([]MediaSection, 0, len(byType))
	for i, t := range order {
		sections = append(sections, MediaSection{
			Type:   t,
			Groups: GroupAttachmentsByTask(byType[i]),
		})
	}
	return sections
}

// GroupAttachmentsByTask partitions attachments by linked task id, preserving
// attachment order within each group. Groups appear in first-seen order; the
// unlinked group keeps an empty TaskID.
func GroupAttachmentsByTask(attachments []Attachment) []AttachmentGroup {
	if len(attachments) == 0 {
		return nil
	}
	index := make(map[string]int, len(attachments))
	groups := make([]AttachmentGroup, 0, len(attachments))
	for _, a := range attachments {
		i, ok := index[a.LinkedTaskID]
		if !ok {
			i = len(groups)
			index[a.LinkedTaskID] = i
			groups = append(groups, AttachmentGroup{TaskID: a.LinkedTaskID})
		}
		groups[i].Attachments = append(groups[i].Attachments, a)
	}
	return groups
}
