package chat

import (
	"context"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
)

// FeedItem is a message annotated with the render metadata clients need to
// lay out the conversation: sender-group starts, context headers, and
// reactions grouped by emoji.
type FeedItem struct {
	Message            domain.Message         `json:"message"`
	StartsGroup        bool                   `json:"starts_group"`
	ShowsContextHeader bool                   `json:"shows_context_header"`
	Reactions          []domain.ReactionGroup `json:"reactions,omitempty"`
}

// ListMessages returns a feed page in ascending seq order with render
// metadata computed against each item's predecessor. BeforeSeq, when
// non-zero, pages backwards through history.
func (uc *UseCase) ListMessages(ctx context.Context, projectID string, limit int, beforeSeq int64) ([]FeedItem, error) {
	messages, err := uc.messages.List(ctx, repository.MessageFilter{
		ProjectID: projectID,
		BeforeSeq: beforeSeq,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	return BuildFeed(messages), nil
}

// BuildFeed computes render metadata for an ordered message slice.
func BuildFeed(messages []domain.Message) []FeedItem {
	if len(messages) == 0 {
		return nil
	}
	items := make([]FeedItem, len(messages))
	for i := range messages {
		var prev *domain.Message
		if i > 0 {
			prev = &messages[i-1]
		}
		cur := &messages[i]
		items[i] = FeedItem{
			Message:            messages[i],
			StartsGroup:        domain.StartsGroup(prev, cur),
			ShowsContextHeader: domain.ShowsContextHeader(prev, cur),
			Reactions:          cur.GroupedReactions(),
		}
	}
	return items
}
