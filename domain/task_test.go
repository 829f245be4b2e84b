package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/doneo/backend/domain"
)

func TestTaskStatus_Toggled(t *testing.T) {
	require.Equal(t, domain.TaskStatusDone, domain.TaskStatusPending.Toggled())
	require.Equal(t, domain.TaskStatusPending, domain.TaskStatusDone.Toggled())

	// Toggling twice lands back on the original status.
	require.Equal(t, domain.TaskStatusPending, domain.TaskStatusPending.Toggled().Toggled())
}

func TestTask_Acknowledge(t *testing.T) {
	task := &domain.Task{PendingFor: []string{"u1", "u2"}}

	require.True(t, task.IsNewFor("u1"))
	require.True(t, task.Acknowledge("u1"))
	require.False(t, task.IsNewFor("u1"))
	require.True(t, task.IsNewFor("u2"))

	// Acknowledging again is a no-op.
	require.False(t, task.Acknowledge("u1"))
	require.Equal(t, []string{"u2"}, task.PendingFor)
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	require.False(t, (&domain.Task{Status: domain.TaskStatusPending}).IsOverdue(now))
	require.False(t, (&domain.Task{Status: domain.TaskStatusPending, DueDate: &future}).IsOverdue(now))
	require.True(t, (&domain.Task{Status: domain.TaskStatusPending, DueDate: &past}).IsOverdue(now))

	// Done tasks are never overdue.
	require.False(t, (&domain.Task{Status: domain.TaskStatusDone, DueDate: &past}).IsOverdue(now))
}

func TestSortSubtasksForDisplay(t *testing.T) {
	subtasks := []domain.Subtask{
		{ID: "a", IsDone: true},
		{ID: "b"},
		{ID: "c", IsDone: true},
		{ID: "d"},
	}

	sorted := domain.SortSubtasksForDisplay(subtasks)

	ids := make([]string, 0, len(sorted))
	for _, s := range sorted {
		ids = append(ids, s.ID)
	}
	require.Equal(t, []string{"b", "d", "a", "c"}, ids)

	// The input slice is left untouched.
	require.Equal(t, "a", subtasks[0].ID)

	// Sorting an already ordered slice changes nothing.
	again := domain.SortSubtasksForDisplay(sorted)
	require.Equal(t, sorted, again)
}

func TestTask_IsAssigned(t *testing.T) {
	task := &domain.Task{Assignees: []domain.User{{ID: "u1"}, {ID: "u2"}}}

	require.True(t, task.IsAssigned("u2"))
	require.False(t, task.IsAssigned("u3"))
}
