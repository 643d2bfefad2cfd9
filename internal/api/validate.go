package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

var registerMessages = map[string]string{
	"Username.required": "All fields are required",
	"Email.required":    "All fields are required",
	"Password.required": "All fields are required",
	"Email.email":       "Invalid email format",
	"Password.min":      "Password must be at least 6 characters",
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"Username.required": "Username and password are required",
	"Password.required": "Username and password are required",
}

type UpdateStatusRequest struct {
	IsOnline *bool `json:"is_online"`
}

type SendMessageRequest struct {
	ReceiverId flexibleId `json:"receiver_id" validate:"required"`
	Message    string     `json:"message" validate:"required,max=1000"`
}

var sendMessageMessages = map[string]string{
	"ReceiverId.required": "Receiver ID and message are required",
	"Message.required":    "Receiver ID and message are required",
	"Message.max":         "Message too long",
}

type MarkReadRequest struct {
	SenderId flexibleId `json:"sender_id" validate:"required"`
}

var markReadMessages = map[string]string{
	"SenderId.required": "Sender ID is required",
}

type TypingRequest struct {
	ChatWithId flexibleId `json:"chat_with_id" validate:"required"`
	IsTyping   bool       `json:"is_typing"`
}

var typingMessages = map[string]string{
	"ChatWithId.required": "chat_with_id is required",
}

// validateRequest checks req against its validate tags and maps the first
// failure to a client message. Missing fields are reported ahead of
// malformed ones.
func validateRequest(req any, messages map[string]string) *ApiError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewBadRequestError("Invalid request")
	}

	for _, fe := range verrs {
		if fe.Tag() != "required" {
			continue
		}
		if msg, ok := messages[fe.Field()+".required"]; ok {
			return NewBadRequestError(msg)
		}
	}

	for _, fe := range verrs {
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return NewBadRequestError(msg)
		}
	}

	return NewBadRequestError("Invalid request")
}

// flexibleId accepts an id sent either as a JSON number or a numeric string.
type flexibleId int

func (id *flexibleId) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = 0
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid id %s: %w", s, err)
		}
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*id = 0
			return nil
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}

	*id = flexibleId(n)
	return nil
}
