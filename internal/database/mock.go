package database

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockChatRepository) AccountExists(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockChatRepository) CreateAccount(ctx context.Context, params CreateAccountParams) (User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockChatRepository) GetAccountById(ctx context.Context, id int) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockChatRepository) GetAccountByUsername(ctx context.Context, username string) (User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockChatRepository) SetOnlineStatus(ctx context.Context, userId int, online bool) error {
	args := m.Called(ctx, userId, online)
	return args.Error(0)
}
func (m *MockChatRepository) ListUsers(ctx context.Context, viewerId int) ([]UserListing, error) {
	args := m.Called(ctx, viewerId)
	if listings, ok := args.Get(0).([]UserListing); ok {
		return listings, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockChatRepository) StartSession(ctx context.Context, params StartSessionParams) (Session, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(Session), args.Error(1)
}
func (m *MockChatRepository) GetUserBySession(ctx context.Context, token string) (User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockChatRepository) EndSession(ctx context.Context, token string, userId int) error {
	args := m.Called(ctx, token, userId)
	return args.Error(0)
}
func (m *MockChatRepository) CreateMessage(ctx context.Context, params CreateMessageParams) (Message, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockChatRepository) GetMessages(ctx context.Context, userId, peerId int) ([]Message, error) {
	args := m.Called(ctx, userId, peerId)
	if messages, ok := args.Get(0).([]Message); ok {
		return messages, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockChatRepository) MarkMessagesRead(ctx context.Context, receiverId, senderId int) (int64, error) {
	args := m.Called(ctx, receiverId, senderId)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockChatRepository) SetTypingStatus(ctx context.Context, userId, chatWithId int, isTyping bool) error {
	args := m.Called(ctx, userId, chatWithId, isTyping)
	return args.Error(0)
}
func (m *MockChatRepository) GetTypingStatus(ctx context.Context, userId, chatWithId int) (TypingStatus, error) {
	args := m.Called(ctx, userId, chatWithId)
	return args.Get(0).(TypingStatus), args.Error(1)
}
