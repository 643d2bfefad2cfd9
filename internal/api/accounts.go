package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/npezzotti/go-livechat/internal/database"
	"github.com/npezzotti/go-livechat/internal/stats"
	"github.com/npezzotti/go-livechat/internal/types"
)

func (s *ChatApp) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if errResp := s.decodeJson(w, r, &req); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if errResp := validateRequest(req, registerMessages); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	exists, err := s.db.AccountExists(r.Context(), req.Username, req.Email)
	if err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Registration failed"))
		return
	}
	if exists {
		s.writeError(w, r, NewConflictError("Username or email already exists"))
		return
	}

	pwdHash, err := hashPassword(req.Password)
	if err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Registration failed"))
		return
	}

	token, err := generateSessionToken()
	if err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Registration failed"))
		return
	}

	params := database.CreateAccountParams{
		Username:     req.Username,
		EmailAddress: req.Email,
		PasswordHash: pwdHash,
		Token:        token,
		ExpiresAt:    s.now().Add(s.sessionTTL),
	}

	newUser, err := s.db.CreateAccount(r.Context(), params)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, database.ErrDuplicate) {
			s.writeError(w, r, NewConflictError("Username or email already exists"))
			return
		}
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Registration failed"))
		return
	}

	s.incrStat(stats.Registrations, 1)

	s.writeJson(w, http.StatusOK, types.AuthResponse{
		Success: true,
		User:    toUserResponse(newUser),
		Token:   token,
		Message: "Registration successful",
	})
}

func (s *ChatApp) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if errResp := s.decodeJson(w, r, &req); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	if errResp := validateRequest(req, loginMessages); errResp != nil {
		s.writeError(w, r, errResp)
		return
	}

	dbUser, err := s.db.GetAccountByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, r, NewUnauthorizedError("Invalid credentials"))
			return
		}
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Login failed"))
		return
	}

	if !verifyPassword(dbUser.PasswordHash, req.Password) {
		s.writeError(w, r, NewUnauthorizedError("Invalid credentials"))
		return
	}

	token, err := generateSessionToken()
	if err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Login failed"))
		return
	}

	_, err = s.db.StartSession(r.Context(), database.StartSessionParams{
		UserId:    dbUser.Id,
		Token:     token,
		ExpiresAt: s.now().Add(s.sessionTTL),
	})
	if err != nil {
		s.writeError(w, r, NewInternalServerError(fmt.Errorf("start session: %w", err)).WithMessage("Login failed"))
		return
	}

	s.incrStat(stats.Logins, 1)

	dbUser.IsOnline = true
	dbUser.LastSeen = sql.NullTime{Time: s.now().UTC(), Valid: true}

	s.writeJson(w, http.StatusOK, types.AuthResponse{
		Success: true,
		User:    toUserResponse(dbUser),
		Token:   token,
		Message: "Login successful",
	})
}

func (s *ChatApp) logout(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		s.writeError(w, r, NewUnauthorizedError("Authentication token required"))
		return
	}

	token, _ := SessionToken(r.Context())
	if err := s.db.EndSession(r.Context(), token, user.Id); err != nil {
		s.writeError(w, r, NewInternalServerError(err).WithMessage("Logout failed"))
		return
	}

	s.incrStat(stats.Logouts, 1)

	s.writeJson(w, http.StatusOK, types.StatusResponse{
		Success: true,
		Message: "Logout successful",
	})
}
