package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doneo/backend/domain"
	"github.com/doneo/backend/repository"
)

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository returns a Postgres-backed implementation of MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) repository.MessageRepository {
	return &messageRepository{pool: pool}
}

const messageColumns = `
	m.id, m.project_id, m.seq, m.sender_id,
	COALESCE(u.name, ''), COALESCE(u.phone_number, ''), COALESCE(u.avatar_initials, ''),
	m.content, m.kind, m.ref_kind, m.ref_task_id, m.ref_subtask_id, m.ref_title,
	m.quoted_id, m.attachment_id, m.created_at`

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	const query = `
	SELECT ` + messageColumns + `
	FROM messages m
	LEFT JOIN users u ON u.id = m.sender_id
	WHERE m.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	message, err := scanMessage(row)
	if err != nil {
		return nil, err
	}
	reactions, err := r.reactionsFor(ctx, message.ID)
	if err != nil {
		return nil, err
	}
	message.Reactions = reactions
	return message, nil
}

func (r *messageRepository) List(ctx context.Context, filter repository.MessageFilter) ([]domain.Message, error) {
	const query = `
	SELECT ` + messageColumns + `
	FROM messages m
	LEFT JOIN users u ON u.id = m.sender_id
	WHERE m.project_id = $1
	  AND ($2 = 0 OR m.seq < $2)
	ORDER BY m.seq DESC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, filter.ProjectID, filter.BeforeSeq, clampLimit(filter.Limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *message)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Page is fetched newest-first; callers expect ascending seq order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	if err := r.loadReactions(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Append(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if message == nil {
		return nil, domain.ErrInvalidPayload
	}
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.Kind == "" {
		message.Kind = domain.MessageKindRegular
	}

	const query = `
	INSERT INTO messages
		(id, project_id, seq, sender_id, content, kind, ref_kind, ref_task_id, ref_subtask_id, ref_title, quoted_id, attachment_id)
	VALUES
		($1, $2,
		 (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE project_id = $2),
		 $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING seq, created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		message.ID,
		message.ProjectID,
		nullString(message.Sender.ID),
		message.Content,
		message.Kind,
		nullString(string(message.Ref.Kind)),
		nullString(message.Ref.TaskID),
		nullString(message.Ref.SubtaskID),
		nullString(message.Ref.Title),
		nullString(message.QuotedID),
		nullString(message.AttachmentID),
	).Scan(&message.Seq, &message.CreatedAt); err != nil {
		return nil, err
	}
	return message, nil
}

func (r *messageRepository) AddReaction(ctx context.Context, messageID string, reaction domain.Reaction) error {
	const query = `
	INSERT INTO reactions (message_id, user_id, emoji, reacted_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (message_id, user_id, emoji) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, messageID, reaction.UserID, reaction.Emoji)
	return err
}

func (r *messageRepository) RemoveReaction(ctx context.Context, messageID, userID, emoji string) error {
	const query = `
	DELETE FROM reactions
	WHERE message_id = $1 AND user_id = $2 AND emoji = $3
	`
	_, err := r.pool.Exec(ctx, query, messageID, userID, emoji)
	return err
}

func (r *messageRepository) reactionsFor(ctx context.Context, messageID string) ([]domain.Reaction, error) {
	const query = `
	SELECT rx.emoji, rx.user_id, COALESCE(u.name, ''), rx.reacted_at
	FROM reactions rx
	LEFT JOIN users u ON u.id = rx.user_id
	WHERE rx.message_id = $1
	ORDER BY rx.reacted_at
	`
	rows, err := r.pool.Query(ctx, query, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reactions []domain.Reaction
	for rows.Next() {
		var reaction domain.Reaction
		if err := rows.Scan(&reaction.Emoji, &reaction.UserID, &reaction.UserName, &reaction.ReactedAt); err != nil {
			return nil, err
		}
		reactions = append(reactions, reaction)
	}
	return reactions, rows.Err()
}

func (r *messageRepository) loadReactions(ctx context.Context, messages []domain.Message) error {
	if len(messages) == 0 {
		return nil
	}
	ids := make([]string, len(messages))
	index := make(map[string]int, len(messages))
	for i := range messages {
		ids[i] = messages[i].ID
		index[messages[i].ID] = i
	}

	const query = `
	SELECT rx.message_id, rx.emoji, rx.user_id, COALESCE(u.name, ''), rx.reacted_at
	FROM reactions rx
	LEFT JOIN users u ON u.id = rx.user_id
	WHERE rx.message_id = ANY($1)
	ORDER BY rx.reacted_at
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var messageID string
		var reaction domain.Reaction
		if err := rows.Scan(&messageID, &reaction.Emoji, &reaction.UserID, &reaction.UserName, &reaction.ReactedAt); err != nil {
			return err
		}
		if i, ok := index[messageID]; ok {
			messages[i].Reactions = append(messages[i].Reactions, reaction)
		}
	}
	return rows.Err()
}

func scanMessage(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Message, error) {
	var message domain.Message
	var (
		senderID     *string
		refKind      *string
		refTaskID    *string
		refSubtaskID *string
		refTitle     *string
		quotedID     *string
		attachmentID *string
	)

	if err := row.Scan(
		&message.ID,
		&message.ProjectID,
		&message.Seq,
		&senderID,
		&message.Sender.Name,
		&message.Sender.PhoneNumber,
		&message.Sender.AvatarInitials,
		&message.Content,
		&message.Kind,
		&refKind,
		&refTaskID,
		&refSubtaskID,
		&refTitle,
		&quotedID,
		&attachmentID,
		&message.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}

	if senderID != nil {
		message.Sender.ID = *senderID
	}
	if refKind != nil {
		message.Ref.Kind = domain.RefKind(*refKind)
	}
	if refTaskID != nil {
		message.Ref.TaskID = *refTaskID
	}
	if refSubtaskID != nil {
		message.Ref.SubtaskID = *refSubtaskID
	}
	if refTitle != nil {
		message.Ref.Title = *refTitle
	}
	if quotedID != nil {
		message.QuotedID = *quotedID
	}
	if attachmentID != nil {
		message.AttachmentID = *attachmentID
	}
	return &message, nil
}
