package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/npezzotti/go-livechat/internal/database"
	"golang.org/x/crypto/bcrypt"
)

const tokenBytes = 32

type contextKey string

const (
	userKey      contextKey = "user"
	tokenKey     contextKey = "session-token"
	requestIdKey contextKey = "request-id"
)

func WithSession(ctx context.Context, user database.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, token)
}

// CurrentUser returns the authenticated user stored by authMiddleware.
func CurrentUser(ctx context.Context) (database.User, bool) {
	user, ok := ctx.Value(userKey).(database.User)
	return user, ok
}

func SessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

func WithRequestId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIdKey, id)
}

func RequestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey).(string)
	return id
}

// extractToken looks for a session token in the Authorization header, then
// the token query parameter, then a token form field.
func extractToken(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get("Authorization")); h != "" {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}

	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return r.PostFormValue("token")
	}

	return ""
}

// generateSessionToken returns 32 random bytes, hex encoded.
func generateSessionToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

func hashPassword(passwd string) (string, error) {
	passwdHash, err := bcrypt.GenerateFromPassword([]byte(passwd), bcrypt.DefaultCost)
	return string(passwdHash), err
}

func verifyPassword(passwdHash, passwd string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(passwdHash), []byte(passwd))
	return err == nil
}
