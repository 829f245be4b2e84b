package domain

import "time"

// MessageKind enumerates the feed message variants.
type MessageKind string

const (
	MessageKindRegular         MessageKind = "regular"
	MessageKindSystem          MessageKind = "system"
	MessageKindSubtaskDone     MessageKind = "subtask_completed"
	MessageKindSubtaskReopened MessageKind = "subtask_reopened"
)

// RefKind tags the context reference variants.
type RefKind string

const (
	RefNone    RefKind = ""
	RefTask    RefKind = "task"
	RefSubtask RefKind = "subtask"
)

// ContextRef is a tagged pointer from a message to the task or subtask it
// discusses. Title is a denormalized snapshot taken at reference time; it may
// go stale if the entity is renamed later, message history being immutable.
// A message carries at most one reference, guaranteed by the single field.
type ContextRef struct {
	Kind      RefKind `json:"kind,omitempty"`
	TaskID    string  `json:"task_id,omitempty"`
	SubtaskID string  `json:"subtask_id,omitempty"`
	Title     string  `json:"title,omitempty"`
}

// TaskRef builds a task reference with a title snapshot.
func TaskRef(taskID, title string) ContextRef {
	return ContextRef{Kind: RefTask, TaskID: taskID, Title: title}
}

// SubtaskRef builds a subtask reference. The parent task id is kept so
// consumers can resolve the subtask without a second lookup.
func SubtaskRef(taskID, subtaskID, title string) ContextRef {
	return ContextRef{Kind: RefSubtask, TaskID: taskID, SubtaskID: subtaskID, Title: title}
}

// IsZero reports whether no reference is set.
func (r ContextRef) IsZero() bool {
	return r.Kind == RefNone
}

// EffectiveID is the id used for context-header comparisons: the task id for
// task references, the subtask id for subtask references, empty otherwise.
func (r ContextRef) EffectiveID() string {
	switch r.Kind {
	case RefTask:
		return r.TaskID
	case RefSubtask:
		return r.SubtaskID
	default:
		return ""
	}
}

// Reaction is a single emoji reaction by a user on a message.
type Reaction struct {
	Emoji     string    `json:"emoji"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	ReactedAt time.Time `json:"reacted_at"`
}

// Message is a feed entry. Seq is assigned by the store and is strictly
// monotonic per project, so feed order matches send order.
type Message struct {
	ID           string      `json:"id"`
	ProjectID    string      `json:"project_id"`
	Seq          int64       `json:"seq"`
	Sender       User        `json:"sender"`
	Content      string      `json:"content"`
	Kind         MessageKind `json:"kind"`
	Ref          ContextRef  `json:"ref,omitempty"`
	QuotedID     string      `json:"quoted_id,omitempty"`
	AttachmentID string      `json:"attachment_id,omitempty"`
	Reactions    []Reaction  `json:"reactions,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ReactionGroup aggregates reactions sharing an emoji.
type ReactionGroup struct {
	Emoji     string     `json:"emoji"`
	Reactions []Reaction `json:"reactions"`
}

// Count returns the number of reactions in the group.
func (g ReactionGroup) Count() int {
	return len(g.Reactions)
}

// GroupedReactions groups the message reactions by emoji in first-seen order.
// Runs in O(n) over the reaction list.
func (m *Message) GroupedReactions() []ReactionGroup {
	if m == nil || len(m.Reactions) == 0 {
		return nil
	}
	index := make(map[string]int, len(m.Reactions))
	groups := make([]ReactionGroup, 0, len(m.Reactions))
	for _, r := range m.Reactions {
		i, ok := index[r.Emoji]
		if !ok {
			i = len(groups)
			index[r.Emoji] = i
			groups = append(groups, ReactionGroup{Emoji: r.Emoji})
		}
		groups[i].Reactions = append(groups[i].Reactions, r)
	}
	return groups
}

// HasReaction reports whether the user already reacted with the emoji.
func (m *Message) HasReaction(userID, emoji string) bool {
	if m == nil {
		return false
	}
	for _, r := range m.Reactions {
		if r.UserID == userID && r.Emoji == emoji {
			return true
		}
	}
	return false
}

// StartsGroup reports whether cur opens a new visual sender group: the
// previous message is absent, the sender changed, or either message is not a
// regular one.
func StartsGroup(prev, cur *Message) bool {
	if cur == nil {
		return false
	}
	if prev == nil {
		return true
	}
	if prev.Sender.ID != cur.Sender.ID {
		return true
	}
	return prev.Kind != MessageKindRegular || cur.Kind != MessageKindRegular
}

// ShowsContextHeader reports whether cur should display its task/subtask
// context header: cur carries a reference whose effective id differs from the
// previous message's, or cur starts a new sender group.
func ShowsContextHeader(prev, cur *Message) bool {
	if cur == nil || cur.Ref.IsZero() {
		return false
	}
	if StartsGroup(prev, cur) {
		return true
	}
	var prevID string
	if prev != nil {
		prevID = prev.Ref.EffectiveID()
	}
	return cur.Ref.EffectiveID() != prevID
}
