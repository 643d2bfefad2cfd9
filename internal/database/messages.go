package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const selectMessageQuery = `
	SELECT
		m.id,
		m.sender_id,
		m.receiver_id,
		m.message,
		m.is_read,
		m.created_at,
		s.username AS sender_username,
		r.username AS receiver_username
	FROM messages m
	JOIN users s ON m.sender_id = s.id
	JOIN users r ON m.receiver_id = r.id
`

// CreateMessage appends an unread message and reads it back, usernames
// included, within the same transaction.
func (db *SqlChatRepository) CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error) {
	var msg Message
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		var id int
		err := tx.QueryRowxContext(
			ctx,
			tx.Rebind("INSERT INTO messages (sender_id, receiver_id, message, is_read, created_at) "+
				"VALUES (?, ?, ?, FALSE, ?) RETURNING id"),
			params.SenderId,
			params.ReceiverId,
			params.Content,
			db.now(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}

		if err := tx.GetContext(ctx, &msg, tx.Rebind(selectMessageQuery+"WHERE m.id = ?"), id); err != nil {
			return fmt.Errorf("get message: %w", err)
		}

		return nil
	})

	return msg, err
}

// GetMessages returns the full conversation between two users, oldest first.
func (db *SqlChatRepository) GetMessages(ctx context.Context, userId, peerId int) ([]Message, error) {
	messages := make([]Message, 0)
	err := db.conn.SelectContext(
		ctx,
		&messages,
		db.conn.Rebind(selectMessageQuery+
			"WHERE (m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?) "+
			"ORDER BY m.created_at ASC, m.id ASC"),
		userId,
		peerId,
		peerId,
		userId,
	)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}

	return messages, nil
}

// MarkMessagesRead flags every unread message from senderId to receiverId as
// read and returns how many rows changed.
func (db *SqlChatRepository) MarkMessagesRead(ctx context.Context, receiverId, senderId int) (int64, error) {
	res, err := db.conn.ExecContext(
		ctx,
		db.conn.Rebind("UPDATE messages SET is_read = TRUE WHERE sender_id = ? AND receiver_id = ? AND is_read = FALSE"),
		senderId,
		receiverId,
	)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}

	return res.RowsAffected()
}
