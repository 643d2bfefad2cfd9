package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	selectUserQuery    = "SELECT id, username, email, password_hash, is_online, last_seen, created_at FROM users"
	setOnlineQuery     = "UPDATE users SET is_online = ?, last_seen = ? WHERE id = ?"
	createSessionQuery = "INSERT INTO sessions (user_id, token, expires_at, created_at) VALUES (?, ?, ?, ?) RETURNING id"
)

func insertSession(ctx context.Context, tx *sqlx.Tx, userId int, token string, expiresAt, now time.Time) (Session, error) {
	// stored as UTC so sqlite's textual timestamps compare correctly
	expiresAt = expiresAt.UTC()
	sess := Session{
		UserId:    userId,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}

	err := tx.QueryRowxContext(ctx, tx.Rebind(createSessionQuery), userId, token, expiresAt, now).Scan(&sess.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return Session{}, fmt.Errorf("insert session: %w", ErrDuplicate)
		}
		return Session{}, fmt.Errorf("insert session: %w", err)
	}

	return sess, nil
}

func (db *SqlChatRepository) AccountExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := db.conn.GetContext(
		ctx,
		&exists,
		db.conn.Rebind("SELECT EXISTS(SELECT 1 FROM users WHERE username = ? OR email = ?)"),
		username,
		email,
	)

	return exists, err
}

// CreateAccount stores a new online user together with its first session.
func (db *SqlChatRepository) CreateAccount(ctx context.Context, params CreateAccountParams) (User, error) {
	var u User
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		now := db.now()

		var id int
		err := tx.QueryRowxContext(
			ctx,
			tx.Rebind("INSERT INTO users (username, email, password_hash, is_online, last_seen, created_at) "+
				"VALUES (?, ?, ?, TRUE, ?, ?) RETURNING id"),
			params.Username,
			params.EmailAddress,
			params.PasswordHash,
			now,
			now,
		).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert user: %w", ErrDuplicate)
			}
			return fmt.Errorf("insert user: %w", err)
		}

		if _, err := insertSession(ctx, tx, id, params.Token, params.ExpiresAt, now); err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &u, tx.Rebind(selectUserQuery+" WHERE id = ?"), id); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		return nil
	})

	return u, err
}

func (db *SqlChatRepository) GetAccountById(ctx context.Context, id int) (User, error) {
	var u User
	err := db.conn.GetContext(ctx, &u, db.conn.Rebind(selectUserQuery+" WHERE id = ? LIMIT 1"), id)

	return u, err
}

func (db *SqlChatRepository) GetAccountByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := db.conn.GetContext(ctx, &u, db.conn.Rebind(selectUserQuery+" WHERE username = ? LIMIT 1"), username)

	return u, err
}

func (db *SqlChatRepository) SetOnlineStatus(ctx context.Context, userId int, online bool) error {
	_, err := db.conn.ExecContext(ctx, db.conn.Rebind(setOnlineQuery), online, db.now(), userId)

	return err
}

// StartSession issues a session for an existing user and marks the user online.
func (db *SqlChatRepository) StartSession(ctx context.Context, params StartSessionParams) (Session, error) {
	var sess Session
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		now := db.now()

		var err error
		sess, err = insertSession(ctx, tx, params.UserId, params.Token, params.ExpiresAt, now)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(setOnlineQuery), true, now, params.UserId); err != nil {
			return fmt.Errorf("set online: %w", err)
		}

		return nil
	})

	return sess, err
}

// GetUserBySession resolves an unexpired session token to its user. It
// returns sql.ErrNoRows when the token is unknown or expired.
func (db *SqlChatRepository) GetUserBySession(ctx context.Context, token string) (User, error) {
	var u User
	err := db.conn.GetContext(
		ctx,
		&u,
		db.conn.Rebind(
			"SELECT u.id, u.username, u.email, u.password_hash, u.is_online, u.last_seen, u.created_at "+
				"FROM sessions s JOIN users u ON u.id = s.user_id "+
				"WHERE s.token = ? AND s.expires_at > ? LIMIT 1",
		),
		token,
		db.now(),
	)

	return u, err
}

// EndSession deletes the session by token and marks the user offline.
// Deleting an unknown token is not an error.
func (db *SqlChatRepository) EndSession(ctx context.Context, token string, userId int) error {
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM sessions WHERE token = ?"), token); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(setOnlineQuery), false, db.now(), userId); err != nil {
			return fmt.Errorf("set offline: %w", err)
		}

		return nil
	})
}

type unreadCount struct {
	SenderId int `db:"sender_id"`
	Count    int `db:"unread_count"`
}

type lastMessage struct {
	SenderId   int       `db:"sender_id"`
	ReceiverId int       `db:"receiver_id"`
	Content    string    `db:"message"`
	CreatedAt  time.Time `db:"created_at"`
}

// ListUsers returns every user except the viewer, online users first and
// then by most recently seen, annotated with the viewer's unread count and
// the latest message exchanged with each of them.
func (db *SqlChatRepository) ListUsers(ctx context.Context, viewerId int) ([]UserListing, error) {
	var users []User
	err := db.conn.SelectContext(
		ctx,
		&users,
		db.conn.Rebind(
			"SELECT id, username, email, is_online, last_seen, created_at FROM users WHERE id <> ? "+
				"ORDER BY is_online DESC, last_seen IS NULL, last_seen DESC, id ASC",
		),
		viewerId,
	)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	var counts []unreadCount
	err = db.conn.SelectContext(
		ctx,
		&counts,
		db.conn.Rebind(
			"SELECT sender_id, COUNT(*) AS unread_count FROM messages "+
				"WHERE receiver_id = ? AND is_read = FALSE GROUP BY sender_id",
		),
		viewerId,
	)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}

	var latest []lastMessage
	err = db.conn.SelectContext(
		ctx,
		&latest,
		db.conn.Rebind(
			"SELECT m.sender_id, m.receiver_id, m.message, m.created_at FROM messages m "+
				"WHERE m.id IN ("+
				"SELECT MAX(id) FROM messages WHERE sender_id = ? OR receiver_id = ? "+
				"GROUP BY CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END)",
		),
		viewerId,
		viewerId,
		viewerId,
	)
	if err != nil {
		return nil, fmt.Errorf("select last messages: %w", err)
	}

	unreadBySender := make(map[int]int, len(counts))
	for _, c := range counts {
		unreadBySender[c.SenderId] = c.Count
	}

	latestByPeer := make(map[int]lastMessage, len(latest))
	for _, m := range latest {
		peer := m.SenderId
		if peer == viewerId {
			peer = m.ReceiverId
		}
		latestByPeer[peer] = m
	}

	listings := make([]UserListing, 0, len(users))
	for _, u := range users {
		l := UserListing{
			User:        u,
			UnreadCount: unreadBySender[u.Id],
		}
		if m, ok := latestByPeer[u.Id]; ok {
			l.LastMessage.String, l.LastMessage.Valid = m.Content, true
			l.LastMessageTime.Time, l.LastMessageTime.Valid = m.CreatedAt, true
		}
		listings = append(listings, l)
	}

	return listings, nil
}
