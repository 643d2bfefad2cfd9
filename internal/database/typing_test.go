package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypingStatus(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	alice := createUser(t, repo, "alice")
	bob := createUser(t, repo, "bob")

	_, err := repo.GetTypingStatus(ctx, alice.Id, bob.Id)
	assert.ErrorIs(t, err, sql.ErrNoRows, "expected no row before any update")

	require.NoError(t, repo.SetTypingStatus(ctx, alice.Id, bob.Id, true))

	ts, err := repo.GetTypingStatus(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	assert.True(t, ts.IsTyping)
	assert.Equal(t, alice.Id, ts.UserId)
	assert.Equal(t, bob.Id, ts.ChatWithId)
	first := ts.UpdatedAt

	repo.now = func() time.Time { return time.Now().UTC().Add(time.Second) }
	require.NoError(t, repo.SetTypingStatus(ctx, alice.Id, bob.Id, false), "expected upsert to update the existing row")

	ts, err = repo.GetTypingStatus(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	assert.False(t, ts.IsTyping)
	assert.True(t, ts.UpdatedAt.After(first), "expected updated_at to be refreshed")

	_, err = repo.GetTypingStatus(ctx, bob.Id, alice.Id)
	assert.ErrorIs(t, err, sql.ErrNoRows, "expected rows to be directional")
}
