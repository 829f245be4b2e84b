package domain

import (
	"sort"
	"time"
)

// TaskStatus enumerates the two task states.
type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
	TaskStatusDone    TaskStatus = "done"
)

// Toggled returns the opposite status.
func (s TaskStatus) Toggled() TaskStatus {
	if s == TaskStatusDone {
		return TaskStatusPending
	}
	return TaskStatusDone
}

// Task is a unit of work with assignees, optional due date and child subtasks.
// PendingFor holds the ids of assignees that have not yet acknowledged the
// assignment; a task is "new" for those users until they accept it.
type Task struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"project_id"`
	Title       string       `json:"title"`
	Status      TaskStatus   `json:"status"`
	Assignees   []User       `json:"assignees,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	CreatedBy   string       `json:"created_by,omitempty"`
	PendingFor  []string     `json:"pending_for,omitempty"`
	Subtasks    []Subtask    `json:"subtasks,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Subtask is a sub-unit of a task with its own completion state, independent
// of the parent task status.
type Subtask struct {
	ID          string       `json:"id"`
	TaskID      string       `json:"task_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	IsDone      bool         `json:"is_done"`
	Assignees   []User       `json:"assignees,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Position    int          `json:"position"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// IsAssigned reports whether the user is among the task assignees.
func (t *Task) IsAssigned(userID string) bool {
	if t == nil {
		return false
	}
	for _, a := range t.Assignees {
		if a.ID == userID {
			return true
		}
	}
	return false
}

// IsNewFor reports whether the task is an unacknowledged assignment for the
// user. Drives inbox counts and badges.
func (t *Task) IsNewFor(userID string) bool {
	if t == nil {
		return false
	}
	for _, id := range t.PendingFor {
		if id == userID {
			return true
		}
	}
	return false
}

// Acknowledge removes the user from the pending-assignment set and reports
// whether the user was pending.
func (t *Task) Acknowledge(userID string) bool {
	if t == nil {
		return false
	}
	for i, id := range t.PendingFor {
		if id == userID {
			t.PendingFor = append(t.PendingFor[:i], t.PendingFor[i+1:]...)
			return true
		}
	}
	return false
}

// IsOverdue reports whether the task is past its due date and not done.
func (t *Task) IsOverdue(now time.Time) bool {
	if t == nil || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now) && t.Status != TaskStatusDone
}

// SortSubtasksForDisplay orders subtasks incomplete-before-complete, keeping
// insertion order within each completion group.
func SortSubtasksForDisplay(subtasks []Subtask) []Subtask {
	sorted := make([]Subtask, len(subtasks))
	copy(sorted, subtasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !sorted[i].IsDone && sorted[j].IsDone
	})
	return sorted
}
