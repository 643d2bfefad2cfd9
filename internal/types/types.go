package types

import (
	"time"
)

type User struct {
	Id           int        `json:"id"`
	Username     string     `json:"username"`
	EmailAddress string     `json:"email,omitempty"`
	IsOnline     bool       `json:"is_online"`
	LastSeen     *time.Time `json:"last_seen"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserListing is a directory entry as seen by the requesting user.
type UserListing struct {
	Id              int        `json:"id"`
	Username        string     `json:"username"`
	IsOnline        bool       `json:"is_online"`
	LastSeen        *time.Time `json:"last_seen"`
	Status          string     `json:"status"`
	UnreadCount     int        `json:"unread_count"`
	LastMessage     *string    `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
}

type Message struct {
	Id               int       `json:"id"`
	SenderId         int       `json:"sender_id"`
	ReceiverId       int       `json:"receiver_id"`
	SenderUsername   string    `json:"sender_username"`
	ReceiverUsername string    `json:"receiver_username"`
	Content          string    `json:"message"`
	IsRead           bool      `json:"is_read"`
	IsOwn            bool      `json:"is_own"`
	CreatedAt        time.Time `json:"created_at"`
	// Timestamp is CreatedAt in milliseconds since the epoch.
	Timestamp int64 `json:"timestamp"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type UsersResponse struct {
	Success bool          `json:"success"`
	Users   []UserListing `json:"users"`
}

type MessagesResponse struct {
	Success  bool      `json:"success"`
	Messages []Message `json:"messages"`
}

type SendMessageResponse struct {
	Success bool    `json:"success"`
	Message Message `json:"message"`
}

type MarkReadResponse struct {
	Success     bool   `json:"success"`
	MarkedCount int64  `json:"marked_count"`
	Message     string `json:"message"`
}

type TypingResponse struct {
	Success   bool       `json:"success"`
	IsTyping  bool       `json:"is_typing"`
	UpdatedAt *time.Time `json:"updated_at"`
}
