package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EntityProfile = "profile"
	EntityTask    = "task"
	EntityMessage = "message"

	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Drain priorities. Lower values drain first, so messages come back before
// task and profile edits once connectivity returns.
const (
	PriorityMessage = 2
	PriorityProfile = 3
	PriorityTask    = 4
)

// Item is one buffered operation awaiting replay against primary storage.
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = PriorityProfile
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
