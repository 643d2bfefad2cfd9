package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/npezzotti/go-livechat/internal/database"
	"github.com/npezzotti/go-livechat/internal/stats"
	"github.com/npezzotti/go-livechat/internal/types"
)

func (s *ChatApp) getMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		s.writeError(w, r, NewUnauthorizedError("Authentication token required"))
		return
	}

	peerId, ok := queryId(r, "chat_with")
	if !ok {
		s.writeError(w, r, NewBadRequestError("chat_with parameter required"))
		return
	}

	if _, err := s.db.GetAccountById(r.Context(), peerId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, r, NewNotFoundError("Invalid user ID"))
			return
		}
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Failed to fetch messages"))
		return
	}

	dbMessages, err := s.db.GetMessages(r.Context(), user.Id, peerId)
	if err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Failed to fetch messages"))
		return
	}

	messages := make([]types.Message, 0, len(dbMessages))
	for _, m := range dbMessages {
		messages = append(messages, toMessageResponse(m, user.Id))
	}

	s.writeJson(w, http.StatusOK, types.MessagesResponse{
		Success:  true,
		Messages: messages,
	})
}

func (s *ChatApp) sendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		s.writeError(w, r, NewUnauthorizedError("Authentication token required"))
		return
	}

	var req SendMessageRequest
	if errResp := s.decodeJson(w, r, &req); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if errResp := validateRequest(req, sendMessageMessages); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	receiverId := int(req.ReceiverId)
	if _, err := s.db.GetAccountById(r.Context(), receiverId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, r, NewNotFoundError("Invalid receiver ID"))
			return
		}
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Failed to send message"))
		return
	}

	msg, err := s.db.CreateMessage(r.Context(), database.CreateMessageParams{
		SenderId:   user.Id,
		ReceiverId: receiverId,
		Content:    req.Message,
	})
	if err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Failed to send message"))
		return
	}

	s.incrStat(stats.MessagesSent, 1)

	s.writeJson(w, http.StatusOK, types.SendMessageResponse{
		Success: true,
		Message: toMessageResponse(msg, user.Id),
	})
}

func (s *ChatApp) markRead(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		s.writeError(w, r, NewUnauthorizedError("Authentication token required"))
		return
	}

	var req MarkReadRequest
	if errResp := s.decodeJson(w, r, &req); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	if errResp := validateRequest(req, markReadMessages); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	n, err := s.db.MarkMessagesRead(r.Context(), user.Id, int(req.SenderId))
	if err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Failed to mark messages as read"))
		return
	}

	s.incrStat(stats.MessagesRead, int(n))

	s.writeJson(w, http.StatusOK, types.MarkReadResponse{
		Success:     true,
		MarkedCount: n,
		Message:     "Messages marked as read",
	})
}
