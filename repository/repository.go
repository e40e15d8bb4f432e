// Package repository is the typed access layer over the document store.
// Every method returns models.* records; rows never leak untyped.
package repository

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"agency-site-server/response"
)

// ErrNotFound is returned when a document id does not exist.
var ErrNotFound = errors.New("record not found")

func init() {
	response.RegisterTranslator(func(err error) *response.AppError {
		if errors.Is(err, ErrNotFound) {
			return &response.AppError{HTTPStatus: http.StatusNotFound, Message: "Not found", Err: err}
		}
		return nil
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
