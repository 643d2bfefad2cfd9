package api

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_presenceStatus(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	seen := func(d time.Duration) sql.NullTime {
		return sql.NullTime{Time: now.Add(-d), Valid: true}
	}

	tcases := []struct {
		name     string
		online   bool
		lastSeen sql.NullTime
		expected string
	}{
		{name: "online", online: true, lastSeen: seen(48 * time.Hour), expected: "Online"},
		{name: "never seen", lastSeen: sql.NullTime{}, expected: "Last seen recently"},
		{name: "seconds ago", lastSeen: seen(30 * time.Second), expected: "Last seen recently"},
		{name: "one minute", lastSeen: seen(time.Minute + 10*time.Second), expected: "Last seen 1 minute ago"},
		{name: "minutes", lastSeen: seen(59 * time.Minute), expected: "Last seen 59 minutes ago"},
		{name: "one hour", lastSeen: seen(time.Hour + 59*time.Minute), expected: "Last seen 1 hour ago"},
		{name: "hours", lastSeen: seen(3 * time.Hour), expected: "Last seen 3 hours ago"},
		{name: "one day", lastSeen: seen(25 * time.Hour), expected: "Last seen 1 day ago"},
		{name: "days", lastSeen: seen(72 * time.Hour), expected: "Last seen 3 days ago"},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, presenceStatus(tc.online, tc.lastSeen, now))
		})
	}
}
