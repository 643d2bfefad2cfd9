package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/npezzotti/go-livechat/internal/database"
	"github.com/npezzotti/go-livechat/internal/types"
)

const maxBodyBytes = 1 << 20

func (s *ChatApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

// writeError logs the cause of server errors and writes the envelope.
func (s *ChatApp) writeError(w http.ResponseWriter, r *http.Request, errResp *ApiError) {
	if errResp.StatusCode >= http.StatusInternalServerError && errResp.Err != nil {
		s.log.Printf("%s %s [%s]: %v", r.Method, r.URL.Path, RequestId(r.Context()), errResp.Err)
	}
	s.writeJson(w, errResp.StatusCode, errResp)
}

// decodeJson reads a JSON request body into v. An empty body leaves v
// untouched so that defaults and required-field checks apply.
func (s *ChatApp) decodeJson(w http.ResponseWriter, r *http.Request, v any) *ApiError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return NewBadRequestError("Invalid request body")
	}

	return nil
}

// queryId reads a numeric id from the query string. ok is false when the
// parameter is absent, empty or zero; unparseable values yield id 0 with ok
// set, so the caller treats them as unknown ids.
func queryId(r *http.Request, key string) (id int, ok bool) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" || v == "0" {
		return 0, false
	}

	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, true
	}
	return id, true
}

func (s *ChatApp) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.writeError(w, r, NewInternalServerError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *ChatApp) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, NewMethodNotAllowedError())
}

func (s *ChatApp) notFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, NewNotFoundError("Not found"))
}

func (s *ChatApp) invalidAction(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, NewBadRequestError("Invalid action"))
}

func toUserResponse(u database.User) types.User {
	return types.User{
		Id:           u.Id,
		Username:     u.Username,
		EmailAddress: u.EmailAddress,
		IsOnline:     u.IsOnline,
		LastSeen:     nullTimePtr(u.LastSeen.Time, u.LastSeen.Valid),
		CreatedAt:    u.CreatedAt,
	}
}

func toMessageResponse(m database.Message, viewerId int) types.Message {
	return types.Message{
		Id:               m.Id,
		SenderId:         m.SenderId,
		ReceiverId:       m.ReceiverId,
		SenderUsername:   m.SenderUsername,
		ReceiverUsername: m.ReceiverUsername,
		Content:          m.Content,
		IsRead:           m.IsRead,
		IsOwn:            m.SenderId == viewerId,
		CreatedAt:        m.CreatedAt,
		Timestamp:        m.CreatedAt.UnixMilli(),
	}
}

func nullTimePtr(t time.Time, valid bool) *time.Time {
	if !valid {
		return nil
	}
	return &t
}
