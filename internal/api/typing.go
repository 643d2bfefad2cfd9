package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/npezzotti/go-livechat/internal/types"
)

func (s *ChatApp) setTyping(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		s.writeError(w, r, NewUnauthorizedError("Authentication token required"))
		return
	}

	var req TypingRequest
	if errResp := s.decodeJson(w, r, &req); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	if errResp := validateRequest(req, typingMessages); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	if err := s.db.SetTypingStatus(r.Context(), user.Id, int(req.ChatWithId), req.IsTyping); err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Failed to update typing status"))
		return
	}

	s.writeJson(w, http.StatusOK, types.StatusResponse{
		Success: true,
		Message: "Typing status updated",
	})
}

// getTyping reports whether the peer is currently typing to the caller.
// A typing flag older than the typing TTL counts as stopped.
func (s *ChatApp) getTyping(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		s.writeError(w, r, NewUnauthorizedError("Authentication token required"))
		return
	}

	peerId, ok := queryId(r, "chat_with_id")
	if !ok {
		s.writeError(w, r, NewBadRequestError("chat_with_id parameter required"))
		return
	}

	resp := types.TypingResponse{Success: true}
	if peerId <= 0 {
		s.writeJson(w, http.StatusOK, resp)
		return
	}

	ts, err := s.db.GetTypingStatus(r.Context(), peerId, user.Id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeJson(w, http.StatusOK, resp)
			return
		}
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Failed to get typing status"))
		return
	}

	resp.IsTyping = ts.IsTyping && s.now().Sub(ts.UpdatedAt) <= s.typingTTL
	resp.UpdatedAt = &ts.UpdatedAt

	s.writeJson(w, http.StatusOK, resp)
}
