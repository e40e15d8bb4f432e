package services

import (
	"context"
	"strings"
	"time"

	"agency-site-server/logger"
	"agency-site-server/metrics"
	"agency-site-server/models"
	"agency-site-server/notify"
	"agency-site-server/repository"
	"agency-site-server/storage"
)

// ReviewInput is a review as typed into the public form or the admin editor
type ReviewInput struct {
	Name        string `json:"name" form:"name"`
	Position    string `json:"position" form:"position"`
	Company     string `json:"company" form:"company"`
	Content     string `json:"content" form:"content"`
	Rating      int    `json:"rating" form:"rating"`
	ProjectType string `json:"project_type" form:"project_type"`
}

func (in *ReviewInput) normalize() error {
	var err error
	if in.Name, err = required("name", in.Name); err != nil {
		return err
	}
	if in.Content, err = required("content", in.Content); err != nil {
		return err
	}
	if !models.IsValidRating(in.Rating) {
		return invalid("rating", "must be between 1 and 5")
	}
	in.Position = strings.TrimSpace(in.Position)
	in.Company = strings.TrimSpace(in.Company)
	in.ProjectType = strings.TrimSpace(in.ProjectType)
	return nil
}

// ReviewUpdate is a partial admin edit; nil fields are left alone
type ReviewUpdate struct {
	Name        *string              `json:"name" form:"name"`
	Position    *string              `json:"position" form:"position"`
	Company     *string              `json:"company" form:"company"`
	Content     *string              `json:"content" form:"content"`
	Rating      *int                 `json:"rating" form:"rating"`
	ProjectType *string              `json:"project_type" form:"project_type"`
	Status      *models.ReviewStatus `json:"status" form:"status"`
	IsPublic    *bool                `json:"is_public" form:"is_public"`
}

// ReviewStats summarizes the moderation queue
type ReviewStats struct {
	Total         int64   `json:"total"`
	Pending       int64   `json:"pending"`
	Approved      int64   `json:"approved"`
	Rejected      int64   `json:"rejected"`
	AverageRating float64 `json:"average_rating"`
}

// ReviewService owns the review lifecycle: pending on submission, then
// approved or rejected by an admin.
type ReviewService struct {
	repo     repository.ReviewRepository
	images   uploader
	notifier notify.Notifier
	now      func() time.Time
}

// NewReviewService creates a review service. Review images get a single
// upload attempt.
func NewReviewService(repo repository.ReviewRepository, images storage.ImageStore, notifier notify.Notifier) *ReviewService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &ReviewService{
		repo:     repo,
		images:   uploader{store: images, folder: "reviews"},
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock replaces the time source
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	s.now = now
	return s
}

// Submit stores a visitor's review as pending and hidden. The image, if any,
// is uploaded after the record exists and patched on; when that upload fails
// the review is kept without an image and the upload error is returned with it.
func (s *ReviewService) Submit(ctx context.Context, input ReviewInput, image *ImageFile) (*models.Review, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if err := image.validate(); err != nil {
		return nil, err
	}

	review := newReview(input, s.now())
	review.Status = models.ReviewStatusPending
	review.IsPublic = false

	stored, err := s.create(ctx, review, image)
	if !stored {
		return nil, err
	}
	metrics.ReviewActions.WithLabelValues("submitted").Inc()
	s.notifier.Notify(ctx, notify.New(notify.ReviewSubmitted, review))
	logger.Info().Str("review_id", review.ID).Int("rating", review.Rating).Msg("Review submitted for moderation")
	return review, err
}

// CreateAdminReview stores a review typed in by an admin, skipping moderation
func (s *ReviewService) CreateAdminReview(ctx context.Context, input ReviewInput, image *ImageFile) (*models.Review, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if err := image.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	review := newReview(input, now)
	review.Status = models.ReviewStatusApproved
	review.IsPublic = true
	review.ReviewedAt = &now
	review.ReviewedBy = models.ReviewedByAdmin

	stored, err := s.create(ctx, review, image)
	if !stored {
		return nil, err
	}
	metrics.ReviewActions.WithLabelValues("created").Inc()
	logger.Info().Str("review_id", review.ID).Msg("Admin review created")
	return review, err
}

func newReview(input ReviewInput, now time.Time) *models.Review {
	return &models.Review{
		Name:        input.Name,
		Position:    input.Position,
		Company:     input.Company,
		Content:     input.Content,
		Rating:      input.Rating,
		ProjectType: input.ProjectType,
		SubmittedAt: now,
	}
}

// create is the two-phase write: record first, then image URL. stored is
// true once the record exists, even when attaching the image failed.
func (s *ReviewService) create(ctx context.Context, review *models.Review, image *ImageFile) (stored bool, err error) {
	if err := s.repo.Create(ctx, review); err != nil {
		logger.Error().Err(err).Msg("Failed to create review")
		return false, err
	}
	if image == nil {
		return true, nil
	}

	url, err := s.images.upload(ctx, image)
	if err != nil {
		logger.Warn().Str("review_id", review.ID).Msg("Review saved without its image")
		return true, err
	}
	if err := s.repo.UpdateFields(ctx, review.ID, map[string]interface{}{"image": url}); err != nil {
		logger.Error().Err(err).Str("review_id", review.ID).Msg("Failed to attach image to review")
		return true, err
	}
	review.Image = url
	return true, nil
}

// Approve publishes a review
func (s *ReviewService) Approve(ctx context.Context, id string) (*models.Review, error) {
	review, err := s.moderate(ctx, id, models.ReviewStatusApproved, true)
	if err != nil {
		return nil, err
	}
	metrics.ReviewActions.WithLabelValues("approved").Inc()
	s.notifier.Notify(ctx, notify.New(notify.ReviewApproved, review))
	return review, nil
}

// Reject hides a review
func (s *ReviewService) Reject(ctx context.Context, id string) (*models.Review, error) {
	review, err := s.moderate(ctx, id, models.ReviewStatusRejected, false)
	if err != nil {
		return nil, err
	}
	metrics.ReviewActions.WithLabelValues("rejected").Inc()
	s.notifier.Notify(ctx, notify.New(notify.ReviewRejected, review))
	return review, nil
}

func (s *ReviewService) moderate(ctx context.Context, id string, status models.ReviewStatus, public bool) (*models.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	err = s.repo.UpdateFields(ctx, id, map[string]interface{}{
		"status":      status,
		"is_public":   public,
		"reviewed_at": now,
		"reviewed_by": models.ReviewedByAdmin,
	})
	if err != nil {
		return nil, err
	}

	review.Status = status
	review.IsPublic = public
	review.ReviewedAt = &now
	review.ReviewedBy = models.ReviewedByAdmin
	logger.Info().Str("review_id", id).Str("status", string(status)).Msg("Review moderated")
	return review, nil
}

// Update applies an admin edit. Status may be set directly to any state; the
// first move away from pending stamps the review time. A new image replaces
// the old one, removeImage clears it.
func (s *ReviewService) Update(ctx context.Context, id string, upd ReviewUpdate, image *ImageFile, removeImage bool) (*models.Review, error) {
	if err := image.validate(); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(review, upd); err != nil {
		return nil, err
	}

	switch {
	case image != nil:
		url, err := s.images.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		review.Image = url
	case removeImage:
		review.Image = ""
	}

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	metrics.ReviewActions.WithLabelValues("updated").Inc()
	logger.Info().Str("review_id", id).Str("status", string(review.Status)).Msg("Review updated")
	return review, nil
}

func (s *ReviewService) apply(review *models.Review, upd ReviewUpdate) error {
	var err error
	if upd.Name != nil {
		if review.Name, err = required("name", *upd.Name); err != nil {
			return err
		}
	}
	if upd.Content != nil {
		if review.Content, err = required("content", *upd.Content); err != nil {
			return err
		}
	}
	if upd.Rating != nil {
		if !models.IsValidRating(*upd.Rating) {
			return invalid("rating", "must be between 1 and 5")
		}
		review.Rating = *upd.Rating
	}
	if upd.Position != nil {
		review.Position = strings.TrimSpace(*upd.Position)
	}
	if upd.Company != nil {
		review.Company = strings.TrimSpace(*upd.Company)
	}
	if upd.ProjectType != nil {
		review.ProjectType = strings.TrimSpace(*upd.ProjectType)
	}
	if upd.IsPublic != nil {
		review.IsPublic = *upd.IsPublic
	}
	if upd.Status != nil {
		if !models.IsValidReviewStatus(*upd.Status) {
			return invalid("status", "must be pending, approved or rejected")
		}
		if *upd.Status != models.ReviewStatusPending && review.ReviewedAt == nil {
			now := s.now()
			review.ReviewedAt = &now
			review.ReviewedBy = models.ReviewedByAdmin
		}
		review.Status = *upd.Status
	}
	return nil
}

// Delete removes a review for good. The CDN image is left in place.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.ReviewActions.WithLabelValues("deleted").Inc()
	logger.Info().Str("review_id", id).Msg("Review deleted")
	return nil
}

// Get returns one review
func (s *ReviewService) Get(ctx context.Context, id string) (*models.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// ListApprovedPublic returns the reviews shown on the public site, most
// recently reviewed first
func (s *ReviewService) ListApprovedPublic(ctx context.Context) ([]models.Review, error) {
	return s.repo.ListApprovedPublic(ctx)
}

// List returns every review matching filter, newest submission first. The
// whole table is fetched and filtered in memory.
func (s *ReviewService) List(ctx context.Context, filter ReviewFilter) ([]models.Review, error) {
	if filter.Status != "" && !models.IsValidReviewStatus(filter.Status) {
		return nil, invalid("status", "must be pending, approved or rejected")
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all), nil
}

// Stats counts reviews by status and averages the rating of all of them
func (s *ReviewService) Stats(ctx context.Context) (*ReviewStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.repo.AverageRating(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ReviewStats{
		Pending:       counts[models.ReviewStatusPending],
		Approved:      counts[models.ReviewStatusApproved],
		Rejected:      counts[models.ReviewStatusRejected],
		AverageRating: avg,
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected
	return stats, nil
}
