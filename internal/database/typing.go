package database

import (
	"context"
)

func (db *SqlChatRepository) SetTypingStatus(ctx context.Context, userId, chatWithId int, isTyping bool) error {
	_, err := db.conn.ExecContext(
		ctx,
		db.conn.Rebind("INSERT INTO typing_status (user_id, chat_with_id, is_typing, updated_at) VALUES (?, ?, ?, ?) "+
			"ON CONFLICT (user_id, chat_with_id) DO UPDATE SET is_typing = excluded.is_typing, updated_at = excluded.updated_at"),
		userId,
		chatWithId,
		isTyping,
		db.now(),
	)

	return err
}

// GetTypingStatus returns the stored row for userId typing to chatWithId, or
// sql.ErrNoRows if none was ever written.
func (db *SqlChatRepository) GetTypingStatus(ctx context.Context, userId, chatWithId int) (TypingStatus, error) {
	var ts TypingStatus
	err := db.conn.GetContext(
		ctx,
		&ts,
		db.conn.Rebind("SELECT user_id, chat_with_id, is_typing, updated_at FROM typing_status "+
			"WHERE user_id = ? AND chat_with_id = ?"),
		userId,
		chatWithId,
	)

	return ts, err
}
