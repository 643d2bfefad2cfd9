package database

import (
	"database/sql"
	"time"
)

type User struct {
	Id           int          `db:"id"`
	Username     string       `db:"username"`
	EmailAddress string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	IsOnline     bool         `db:"is_online"`
	LastSeen     sql.NullTime `db:"last_seen"`
	CreatedAt    time.Time    `db:"created_at"`
}

type Session struct {
	Id        int       `db:"id"`
	UserId    int       `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

type Message struct {
	Id               int       `db:"id"`
	SenderId         int       `db:"sender_id"`
	ReceiverId       int       `db:"receiver_id"`
	Content          string    `db:"message"`
	IsRead           bool      `db:"is_read"`
	CreatedAt        time.Time `db:"created_at"`
	SenderUsername   string    `db:"sender_username"`
	ReceiverUsername string    `db:"receiver_username"`
}

// UserListing is a directory entry as seen by one viewer.
type UserListing struct {
	User
	UnreadCount     int
	LastMessage     sql.NullString
	LastMessageTime sql.NullTime
}

type TypingStatus struct {
	UserId     int       `db:"user_id"`
	ChatWithId int       `db:"chat_with_id"`
	IsTyping   bool      `db:"is_typing"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type CreateAccountParams struct {
	Username     string
	EmailAddress string
	PasswordHash string
	Token        string
	ExpiresAt    time.Time
}

type StartSessionParams struct {
	UserId    int
	Token     string
	ExpiresAt time.Time
}

type CreateMessageParams struct {
	SenderId   int
	ReceiverId int
	Content    string
}
