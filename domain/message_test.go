package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doneo/backend/domain"
)

func TestContextRef_EffectiveID(t *testing.T) {
	require.Empty(t, domain.ContextRef{}.EffectiveID())
	require.True(t, domain.ContextRef{}.IsZero())

	taskRef := domain.TaskRef("t1", "Ship it")
	require.Equal(t, "t1", taskRef.EffectiveID())
	require.False(t, taskRef.IsZero())

	subRef := domain.SubtaskRef("t1", "s1", "Write docs")
	require.Equal(t, "s1", subRef.EffectiveID())
	require.Equal(t, "t1", subRef.TaskID)
}

func TestStartsGroup(t *testing.T) {
	alice := domain.User{ID: "alice"}
	bob := domain.User{ID: "bob"}

	m1 := domain.Message{Sender: alice, Kind: domain.MessageKindRegular}
	m2 := domain.Message{Sender: alice, Kind: domain.MessageKindRegular}
	m3 := domain.Message{Sender: bob, Kind: domain.MessageKindRegular}
	sys := domain.Message{Sender: alice, Kind: domain.MessageKindSystem}

	// First message always opens a group.
	require.True(t, domain.StartsGroup(nil, &m1))

	// Same sender, both regular: continuation.
	require.False(t, domain.StartsGroup(&m1, &m2))

	// Sender change opens a group.
	require.True(t, domain.StartsGroup(&m2, &m3))

	// Non-regular messages break grouping in both directions.
	require.True(t, domain.StartsGroup(&m1, &sys))
	require.True(t, domain.StartsGroup(&sys, &m2))
}

func TestShowsContextHeader(t *testing.T) {
	alice := domain.User{ID: "alice"}

	plain := domain.Message{Sender: alice, Kind: domain.MessageKindRegular}
	onTask := domain.Message{Sender: alice, Kind: domain.MessageKindRegular, Ref: domain.TaskRef("t1", "")}
	onTaskAgain := domain.Message{Sender: alice, Kind: domain.MessageKindRegular, Ref: domain.TaskRef("t1", "")}
	onOtherTask := domain.Message{Sender: alice, Kind: domain.MessageKindRegular, Ref: domain.TaskRef("t2", "")}

	// No reference, no header.
	require.False(t, domain.ShowsContextHeader(nil, &plain))

	// A reference at the start of a group shows the header.
	require.True(t, domain.ShowsContextHeader(nil, &onTask))
	require.True(t, domain.ShowsContextHeader(&plain, &onTask))

	// Same sender, same reference, same group: header suppressed.
	require.False(t, domain.ShowsContextHeader(&onTask, &onTaskAgain))

	// Reference change within a group shows the header again.
	require.True(t, domain.ShowsContextHeader(&onTask, &onOtherTask))
}

func TestMessage_GroupedReactions(t *testing.T) {
	msg := domain.Message{
		Reactions: []domain.Reaction{
			{Emoji: "👍", UserID: "u1"},
			{Emoji: "🔥", UserID: "u2"},
			{Emoji: "👍", UserID: "u3"},
		},
	}

	groups := msg.GroupedReactions()
	require.Len(t, groups, 2)

	// Groups appear in first-seen order.
	require.Equal(t, "👍", groups[0].Emoji)
	require.Equal(t, 2, groups[0].Count())
	require.Equal(t, "🔥", groups[1].Emoji)
	require.Equal(t, 1, groups[1].Count())

	// Within a group, reaction order is preserved.
	require.Equal(t, "u1", groups[0].Reactions[0].UserID)
	require.Equal(t, "u3", groups[0].Reactions[1].UserID)

	require.Nil(t, (&domain.Message{}).GroupedReactions())
}

func TestMessage_HasReaction(t *testing.T) {
	msg := domain.Message{
		Reactions: []domain.Reaction{{Emoji: "👍", UserID: "u1"}},
	}

	require.True(t, msg.HasReaction("u1", "👍"))
	require.False(t, msg.HasReaction("u1", "🔥"))
	require.False(t, msg.HasReaction("u2", "👍"))
}
