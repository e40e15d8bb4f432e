// Package storage uploads images to the CDN and rewrites their delivery URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"agency-site-server/response"
)

// MaxImageSize is the largest accepted upload (5MB)
const MaxImageSize = 5 * 1024 * 1024

var (
	ErrImageTooLarge = errors.New("image must be 5MB or smaller")
	ErrImageType     = errors.New("image must be a jpg, png, webp or gif file")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadInput is one image ready to be sent to the CDN
type UploadInput struct {
	Filename string
	Folder   string
	Data     []byte
}

// UploadResult is the stored image as reported by the CDN
type UploadResult struct {
	URL      string
	PublicID string
}

// ImageStore is the image CDN
type ImageStore interface {
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// UploadError is a failed CDN call. StatusCode 0 means the request never got a response.
type UploadError struct {
	StatusCode int
	Details    string
}

func (e *UploadError) Error() string {
	if e.StatusCode == 0 {
		return "image upload failed: " + e.Details
	}
	return fmt.Sprintf("image upload failed (%d): %s", e.StatusCode, e.Details)
}

// Retryable reports whether repeating the call may succeed
func (e *UploadError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
}

func init() {
	response.RegisterTranslator(func(err error) *response.AppError {
		var uploadErr *UploadError
		switch {
		case errors.As(err, &uploadErr):
			return response.NewBadGateway("Image upload failed, please try again", err)
		case errors.Is(err, ErrImageTooLarge), errors.Is(err, ErrImageType):
			return response.NewBadRequest(err.Error())
		}
		return nil
	})
}

// ValidateImage checks an upload's extension and size before any network call
func ValidateImage(filename string, size int64) error {
	if size <= 0 || size > MaxImageSize {
		return ErrImageTooLarge
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(filename))] {
		return ErrImageType
	}
	return nil
}
