package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"agency-site-server/response"
)

// ValidationError is a rejected input, caught before any store or CDN call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("session expired, please sign in again")
	ErrAccountDisabled    = errors.New("account is inactive")
)

func init() {
	response.RegisterTranslator(func(err error) *response.AppError {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			return &response.AppError{HTTPStatus: http.StatusBadRequest, Message: vErr.Error(), Err: err}
		case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidSession):
			return &response.AppError{HTTPStatus: http.StatusUnauthorized, Message: "Unauthorized: " + err.Error(), Err: err}
		case errors.Is(err, ErrAccountDisabled):
			return &response.AppError{HTTPStatus: http.StatusForbidden, Message: "Forbidden: " + err.Error(), Err: err}
		}
		return nil
	})
}

var validate = validator.New()

// required trims s and rejects it when empty
func required(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, "is required")
	}
	return s, nil
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func validURL(raw string) bool {
	return validate.Var(raw, "url") == nil
}
