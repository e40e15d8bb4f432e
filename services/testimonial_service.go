package services

import (
	"context"

	"agency-site-server/content"
	"agency-site-server/logger"
	"agency-site-server/metrics"
	"agency-site-server/models"
)

// TestimonialSet is what the home page carousel shows
type TestimonialSet struct {
	Items    []content.Testimonial `json:"items"`
	Fallback bool                  `json:"fallback"`
}

type approvedReviewLister interface {
	ListApprovedPublic(ctx context.Context) ([]models.Review, error)
}

// TestimonialService feeds the carousel from approved public reviews
type TestimonialService struct {
	reviews  approvedReviewLister
	fallback []content.Testimonial
}

// NewTestimonialService creates a testimonial service with the set shown
// when no live testimonials can be had
func NewTestimonialService(reviews approvedReviewLister, fallback []content.Testimonial) *TestimonialService {
	return &TestimonialService{reviews: reviews, fallback: fallback}
}

// Load returns the live testimonials, or the fallback set when the store
// fails or has none. A store failure is logged and never returned: anonymous
// visitors always get a carousel.
func (s *TestimonialService) Load(ctx context.Context) TestimonialSet {
	reviews, err := s.reviews.ListApprovedPublic(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load testimonials, using fallback set")
		return s.fallbackSet()
	}
	if len(reviews) == 0 {
		return s.fallbackSet()
	}

	items := make([]content.Testimonial, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, content.Testimonial{
			Name:     r.Name,
			Position: r.Position,
			Company:  r.Company,
			Content:  r.Content,
			Rating:   r.Rating,
			Image:    r.Image,
		})
	}
	return TestimonialSet{Items: items}
}

func (s *TestimonialService) fallbackSet() TestimonialSet {
	metrics.TestimonialFallbacks.Inc()
	items := make([]content.Testimonial, len(s.fallback))
	copy(items, s.fallback)
	return TestimonialSet{Items: items, Fallback: true}
}
