package api

import (
	"fmt"
	"net/http"
)

// ApiError is the error envelope returned to clients. Err carries the
// underlying cause for server-side logging and is never serialized.
type ApiError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Err        error  `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

// WithMessage returns a copy of e with a different client-facing message.
func (e *ApiError) WithMessage(msg string) *ApiError {
	cp := *e
	cp.Message = msg
	return &cp
}

func NewBadRequestError(msg string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    msg,
	}
}

func NewNotFoundError(msg string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusNotFound,
		Message:    msg,
	}
}

func NewConflictError(msg string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusConflict,
		Message:    msg,
	}
}

func NewInternalServerError(err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusInternalServerError,
		Message:    http.StatusText(http.StatusInternalServerError),
		Err:        err,
	}
}

func NewUnauthorizedError(msg string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    msg,
	}
}

func NewMethodNotAllowedError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    "Method not allowed",
	}
}
