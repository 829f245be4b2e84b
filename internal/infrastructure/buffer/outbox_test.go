package buffer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestOutbox(t *testing.T) *Outbox {
	t.Helper()
	outbox, err := Open(filepath.Join(t.TempDir(), "outbox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { outbox.Close() })
	return outbox
}

func TestOutbox_DrainOrderFollowsPriority(t *testing.T) {
	outbox := openTestOutbox(t)

	base := time.Now()
	require.NoError(t, outbox.Enqueue(Item{ID: "task-op", Entity: EntityTask, Priority: PriorityTask, Timestamp: base}))
	require.NoError(t, outbox.Enqueue(Item{ID: "msg-op", Entity: EntityMessage, Priority: PriorityMessage, Timestamp: base.Add(time.Second)}))
	require.NoError(t, outbox.Enqueue(Item{ID: "profile-op", Entity: EntityProfile, Priority: PriorityProfile, Timestamp: base}))

	items, err := outbox.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Messages drain first despite being enqueued later.
	require.Equal(t, "msg-op", items[0].ID)
	require.Equal(t, "profile-op", items[1].ID)
	require.Equal(t, "task-op", items[2].ID)
}

func TestOutbox_RemoveAndSize(t *testing.T) {
	outbox := openTestOutbox(t)

	require.NoError(t, outbox.Enqueue(Item{ID: "one", Entity: EntityTask}))
	require.NoError(t, outbox.Enqueue(Item{ID: "two", Entity: EntityTask}))

	size, err := outbox.Size()
	require.NoError(t, err)
	require.Equal(t, 2, size)

	items, err := outbox.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, outbox.Remove(items[0]))

	size, err = outbox.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)
}

func TestOutbox_RemoveByIDWithoutKey(t *testing.T) {
	outbox := openTestOutbox(t)

	require.NoError(t, outbox.Enqueue(Item{ID: "orphan", Entity: EntityMessage}))
	require.NoError(t, outbox.Remove(Item{ID: "orphan"}))

	size, err := outbox.Size()
	require.NoError(t, err)
	require.Zero(t, size)
}

func TestOutbox_RequeueBumpsTimestamp(t *testing.T) {
	outbox := openTestOutbox(t)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, outbox.Enqueue(Item{ID: "first", Entity: EntityTask, Priority: PriorityTask, Timestamp: old}))
	require.NoError(t, outbox.Enqueue(Item{ID: "retry", Entity: EntityTask, Priority: PriorityTask, Timestamp: old.Add(-time.Hour)}))

	items, err := outbox.GetBatch(10)
	require.NoError(t, err)
	require.Equal(t, "retry", items[0].ID)

	// After requeueing, the retried item sorts behind its peer.
	require.NoError(t, outbox.Remove(items[0]))
	items[0].Retries++
	require.NoError(t, outbox.Requeue(items[0]))

	items, err = outbox.GetBatch(10)
	require.NoError(t, err)
	require.Equal(t, "first", items[0].ID)
	require.Equal(t, "retry", items[1].ID)
	require.Equal(t, 1, items[1].Retries)
}

func TestOutbox_CleanupDropsStaleItems(t *testing.T) {
	outbox := openTestOutbox(t)

	require.NoError(t, outbox.Enqueue(Item{ID: "old", Entity: EntityTask, Timestamp: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, outbox.Enqueue(Item{ID: "fresh", Entity: EntityTask, Timestamp: time.Now()}))

	removed, err := outbox.Cleanup(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	items, err := outbox.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "fresh", items[0].ID)
}
