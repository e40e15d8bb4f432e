package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape every API handler writes.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AppError represents an application error with its HTTP status.
type AppError struct {
	HTTPStatus int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequest(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: msg}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Message: msg}
}

func NewBadGateway(msg string, err error) *AppError {
	return &AppError{HTTPStatus: http.StatusBadGateway, Message: msg, Err: err}
}

func NewServerError(err error) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: "Something went wrong, please try again", Err: err}
}

// Translator maps domain errors to AppErrors; packages register theirs at init.
type Translator func(err error) *AppError

var translators []Translator

// RegisterTranslator adds a domain error mapping consulted by Error.
func RegisterTranslator(t Translator) {
	translators = append(translators, t)
}

// FromError resolves err into an AppError, defaulting to a generic 500.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, t := range translators {
		if mapped := t(err); mapped != nil {
			return mapped
		}
	}
	return NewServerError(err)
}

// Success sends a 200 OK response with data.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error sends an error response and aborts the chain. Server errors are
// attached to the gin context so the request logger records the cause.
func Error(c *gin.Context, err error) {
	appErr := FromError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, Envelope{Success: false, Error: appErr.Message})
}
