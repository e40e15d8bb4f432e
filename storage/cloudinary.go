package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"agency-site-server/config"
	"agency-site-server/logger"
)

// Cloudinary stores images in a Cloudinary account
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary connects using either CLOUDINARY_URL or the split credentials
func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("cloudinary is not configured")
	}

	cld, err := cloudinary.NewFromURL(cfg.ConnectionURL())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	logger.Info().Str("cloud", cld.Config.Cloud.CloudName).Str("folder", cfg.Folder).Msg("Cloudinary image store ready")
	return &Cloudinary{cld: cld, folder: cfg.Folder}, nil
}

func (s *Cloudinary) Upload(ctx context.Context, input *UploadInput) (*UploadResult, error) {
	folder := s.folder
	if input.Folder != "" {
		folder = strings.Trim(s.folder+"/"+input.Folder, "/")
	}

	overwrite := false
	unique := true
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(input.Data), uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID(input.Filename),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		return nil, &UploadError{Details: err.Error()}
	}
	if res.Error.Message != "" {
		return nil, &UploadError{StatusCode: http.StatusBadRequest, Details: res.Error.Message}
	}
	if res.SecureURL == "" {
		return nil, &UploadError{StatusCode: http.StatusBadGateway, Details: "response did not include an image URL"}
	}

	return &UploadResult{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *Cloudinary) Delete(ctx context.Context, publicID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: "image"})
	if err != nil {
		return &UploadError{Details: err.Error()}
	}
	if res.Error.Message != "" {
		return &UploadError{StatusCode: http.StatusBadRequest, Details: res.Error.Message}
	}
	return nil
}

// publicID keeps the original file name readable and makes it unique
func publicID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, base)
	if base == "" {
		base = "image"
	}
	return base + "-" + uuid.NewString()[:8]
}
