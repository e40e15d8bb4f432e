// Package memory is an in-process image store used by tests and local runs
// without CDN credentials.
package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"agency-site-server/storage"
)

// Store keeps uploaded images in memory
type Store struct {
	mu       sync.Mutex
	images   map[string][]byte
	failures []error
	uploads  int
	deletes  []string
}

// New creates an empty store
func New() *Store {
	return &Store{images: make(map[string][]byte)}
}

// FailNext makes the next len(errs) uploads return the given errors in order
func (s *Store) FailNext(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, errs...)
}

func (s *Store) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads++
	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(input.Filename), filepath.Ext(input.Filename))
	id := strings.Trim(input.Folder+"/"+name+"-"+uuid.NewString()[:8], "/")
	s.images[id] = append([]byte(nil), input.Data...)

	return &storage.UploadResult{
		URL:      fmt.Sprintf("https://res.cloudinary.com/memory/image/upload/%s%s", id, strings.ToLower(filepath.Ext(input.Filename))),
		PublicID: id,
	}, nil
}

func (s *Store) Delete(ctx context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, publicID)
	delete(s.images, publicID)
	return nil
}

// Uploads is the number of upload attempts, failed ones included
func (s *Store) Uploads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads
}

// Len is the number of stored images
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}

// Deleted lists public ids passed to Delete
func (s *Store) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}
