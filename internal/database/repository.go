package database

import "context"

type ChatRepository interface {
	Ping(ctx context.Context) error
	AccountExists(ctx context.Context, username, email string) (bool, error)
	CreateAccount(ctx context.Context, params CreateAccountParams) (User, error)
	GetAccountById(ctx context.Context, id int) (User, error)
	GetAccountByUsername(ctx context.Context, username string) (User, error)
	SetOnlineStatus(ctx context.Context, userId int, online bool) error
	ListUsers(ctx context.Context, viewerId int) ([]UserListing, error)
	StartSession(ctx context.Context, params StartSessionParams) (Session, error)
	GetUserBySession(ctx context.Context, token string) (User, error)
	EndSession(ctx context.Context, token string, userId int) error
	CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error)
	GetMessages(ctx context.Context, userId, peerId int) ([]Message, error)
	MarkMessagesRead(ctx context.Context, receiverId, senderId int) (int64, error)
	SetTypingStatus(ctx context.Context, userId, chatWithId int, isTyping bool) error
	GetTypingStatus(ctx context.Context, userId, chatWithId int) (TypingStatus, error)
}
