package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"agency-site-server/models"
	"agency-site-server/notify"
	"agency-site-server/repository"
	"agency-site-server/storage/memory"
	"agency-site-server/testdb"
)

// fixedClock returns a clock frozen at t that tests can move
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recorder keeps every event it is sent
type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(_ context.Context, e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type reviewFixture struct {
	db     *gorm.DB
	repo   repository.ReviewRepository
	images *memory.Store
	events *recorder
	clock  *fixedClock
	svc    *ReviewService
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	db := testdb.New(t)
	f := &reviewFixture{
		db:     db,
		repo:   repository.NewReviewRepository(db),
		images: memory.New(),
		events: &recorder{},
		clock:  newClock(),
	}
	f.svc = NewReviewService(f.repo, f.images, f.events).WithClock(f.clock.Now)
	return f
}

func jpeg(name string) *ImageFile {
	return &ImageFile{Filename: name, Size: 3, Data: []byte{0xff, 0xd8, 0xff}}
}

// mockReviewRepository fails the test on any call not set up with On
type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.Review)
	return r, args.Error(1)
}

func (m *mockReviewRepository) ListApprovedPublic(ctx context.Context) ([]models.Review, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.Review)
	return r, args.Error(1)
}

func (m *mockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepository) CountByStatus(ctx context.Context) (map[models.ReviewStatus]int64, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(map[models.ReviewStatus]int64)
	return r, args.Error(1)
}

func (m *mockReviewRepository) AverageRating(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
