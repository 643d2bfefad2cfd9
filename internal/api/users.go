package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/npezzotti/go-livechat/internal/types"
)

func (s *ChatApp) listUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		s.writeError(w, r, NewUnauthorizedError("Authentication token required"))
		return
	}

	listings, err := s.db.ListUsers(r.Context(), user.Id)
	if err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Failed to fetch users"))
		return
	}

	now := s.now()
	users := make([]types.UserListing, 0, len(listings))
	for _, l := range listings {
		entry := types.UserListing{
			Id:              l.Id,
			Username:        l.Username,
			IsOnline:        l.IsOnline,
			LastSeen:        nullTimePtr(l.LastSeen.Time, l.LastSeen.Valid),
			Status:          presenceStatus(l.IsOnline, l.LastSeen, now),
			UnreadCount:     l.UnreadCount,
			LastMessageTime: nullTimePtr(l.LastMessageTime.Time, l.LastMessageTime.Valid),
		}
		if l.LastMessage.Valid {
			msg := l.LastMessage.String
			entry.LastMessage = &msg
		}
		users = append(users, entry)
	}

	s.writeJson(w, http.StatusOK, types.UsersResponse{
		Success: true,
		Users:   users,
	})
}

func (s *ChatApp) updateOnlineStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		s.writeError(w, r, NewUnauthorizedError("Authentication token required"))
		return
	}

	var req UpdateStatusRequest
	if errResp := s.decodeJson(w, r, &req); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	online := true
	if req.IsOnline != nil {
		online = *req.IsOnline
	}

	if err := s.db.SetOnlineStatus(r.Context(), user.Id, online); err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Failed to update status"))
		return
	}

	s.writeJson(w, http.StatusOK, types.StatusResponse{
		Success: true,
		Message: "Status updated successfully",
	})
}

// presenceStatus renders a user's presence using the coarsest whole unit of
// time since they were last seen.
func presenceStatus(online bool, lastSeen sql.NullTime, now time.Time) string {
	if online {
		return "Online"
	}
	if !lastSeen.Valid {
		return "Last seen recently"
	}

	elapsed := now.Sub(lastSeen.Time)
	switch {
	case elapsed >= 24*time.Hour:
		return lastSeenAgo(int(elapsed/(24*time.Hour)), "day")
	case elapsed >= time.Hour:
		return lastSeenAgo(int(elapsed/time.Hour), "hour")
	case elapsed >= time.Minute:
		return lastSeenAgo(int(elapsed/time.Minute), "minute")
	default:
		return "Last seen recently"
	}
}

func lastSeenAgo(n int, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("Last seen %d %s ago", n, unit)
}
