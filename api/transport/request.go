package transport

// AuthLoginRequest asks for a session. Either a known user id or a phone
// number must be supplied; phone login registers the user on first use.
type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type ProfileUpdateRequest struct {
	Name           string `json:"name"`
	PhoneNumber    string `json:"phone_number"`
	AvatarInitials string `json:"avatar_initials"`
}

type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

type MuteRequest struct {
	Muted bool `json:"muted"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id"`
}

type SubtaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	AssigneeIDs []string `json:"assignee_ids"`
}

type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Notes       string           `json:"notes"`
	DueDate     string           `json:"due_date"`
	AssigneeIDs []string         `json:"assignee_ids"`
	Subtasks    []SubtaskRequest `json:"subtasks"`
}

type AcceptTaskRequest struct {
	Note string `json:"note"`
}

// SendMessageRequest carries a new feed message. At most one of task_id and
// subtask_id may be set.
type SendMessageRequest struct {
	Content   string `json:"content"`
	TaskID    string `json:"task_id"`
	SubtaskID string `json:"subtask_id"`
	QuotedID  string `json:"quoted_id"`
}

type ImageMessageRequest struct {
	FileName  string `json:"file_name"`
	ImageData []byte `json:"image_data"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji"`
}

type AttachmentItemRequest struct {
	Type      string `json:"type"`
	FileName  string `json:"file_name"`
	FileSize  int64  `json:"file_size"`
	ImageData []byte `json:"image_data"`
}

type AddAttachmentsRequest struct {
	Items     []AttachmentItemRequest `json:"items"`
	TaskID    string                  `json:"task_id"`
	SubtaskID string                  `json:"subtask_id"`
	Caption   string                  `json:"caption"`
}
