package services

import (
	"context"
	"net/http"

	"agency-site-server/logger"
	"agency-site-server/metrics"
	"agency-site-server/storage"
)

// ImageFile is an image attached to a form submission
type ImageFile struct {
	Filename string
	Size     int64
	Data     []byte
}

func (f *ImageFile) validate() error {
	if f == nil {
		return nil
	}
	return storage.ValidateImage(f.Filename, f.Size)
}

var errUploadsDisabled = &storage.UploadError{StatusCode: http.StatusServiceUnavailable, Details: "image uploads are not configured"}

// uploader sends images to the CDN with or without retries
type uploader struct {
	store  storage.ImageStore
	folder string
	retry  *storage.RetryPolicy
}

func (u uploader) upload(ctx context.Context, file *ImageFile) (string, error) {
	if u.store == nil {
		return "", errUploadsDisabled
	}

	input := &storage.UploadInput{Filename: file.Filename, Folder: u.folder, Data: file.Data}

	var (
		res *storage.UploadResult
		err error
	)
	if u.retry != nil {
		res, err = storage.UploadWithRetry(ctx, u.store, input, *u.retry)
	} else {
		res, err = u.store.Upload(ctx, input)
	}
	metrics.RecordUpload(err)
	if err != nil {
		logger.Error().Err(err).Str("folder", u.folder).Str("file", file.Filename).Msg("Image upload failed")
		return "", err
	}

	logger.Info().Str("folder", u.folder).Str("url", res.URL).Msg("Image uploaded")
	return res.URL, nil
}
