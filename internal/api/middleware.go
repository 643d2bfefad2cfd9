package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/teris-io/shortid"
)

const requestIdHeader = "X-Request-Id"

func (s *ChatApp) errorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				var panicError error
				switch e := err.(type) {
				case error:
					panicError = e
				default:
					panicError = fmt.Errorf("%v", e)
				}
				s.log.Printf("panic: %v", panicError)
				errResp := NewInternalServerError(panicError)
				w.Header().Set("Connection", "close")
				s.writeJson(w, errResp.StatusCode, errResp)
				return
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestIdMiddleware tags every response with an X-Request-Id, keeping the
// client's value when one was sent.
func (s *ChatApp) requestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIdHeader)
		if id == "" {
			var err error
			if id, err = shortid.Generate(); err != nil {
				s.log.Printf("generate request id: %v", err)
			}
		}

		if id != "" {
			w.Header().Set(requestIdHeader, id)
			r = r.WithContext(WithRequestId(r.Context(), id))
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware resolves the request's session token to a user and stores
// both in the request context. Requests without a live session are rejected
// before next runs.
func (s *ChatApp) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			errResp := NewUnauthorizedError("Authentication token required")
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		user, err := s.db.GetUserBySession(r.Context(), token)
		if err != nil {
			var errResp *ApiError
			if errors.Is(err, sql.ErrNoRows) {
				errResp = NewUnauthorizedError("Invalid or expired session")
			} else {
				s.log.Printf("validate session: %v", err)
				errResp = NewInternalServerError(err)
			}
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		ctx := WithSession(r.Context(), user, token)
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")

		next(w, r.WithContext(ctx))
	}
}
