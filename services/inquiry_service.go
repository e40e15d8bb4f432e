package services

import (
	"context"
	"strings"

	"agency-site-server/logger"
	"agency-site-server/metrics"
	"agency-site-server/models"
	"agency-site-server/notify"
	"agency-site-server/repository"
)

// InquiryInput is a contact-form submission
type InquiryInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

func (in *InquiryInput) normalize() error {
	var err error
	if in.Name, err = required("name", in.Name); err != nil {
		return err
	}
	if in.Email, err = required("email", in.Email); err != nil {
		return err
	}
	if !validEmail(in.Email) {
		return invalid("email", "must be a valid e-mail address")
	}
	if in.Subject, err = required("subject", in.Subject); err != nil {
		return err
	}
	if in.Message, err = required("message", in.Message); err != nil {
		return err
	}
	return nil
}

// InquiryService handles the contact form and the admin inbox
type InquiryService struct {
	repo     repository.InquiryRepository
	notifier notify.Notifier
}

func NewInquiryService(repo repository.InquiryRepository, notifier notify.Notifier) *InquiryService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &InquiryService{repo: repo, notifier: notifier}
}

// Submit stores a new inquiry with status new
func (s *InquiryService) Submit(ctx context.Context, input InquiryInput) (*models.Inquiry, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	inquiry := &models.Inquiry{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Status:  models.InquiryStatusNew,
	}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	metrics.InquiriesReceived.Inc()
	s.notifier.Notify(ctx, notify.New(notify.InquiryCreated, inquiry))
	logger.Info().Str("inquiry_id", inquiry.ID).Msg("Inquiry received")
	return inquiry, nil
}

// List returns inquiries newest first, optionally with one status
func (s *InquiryService) List(ctx context.Context, status models.InquiryStatus) ([]models.Inquiry, error) {
	status = models.InquiryStatus(strings.TrimSpace(string(status)))
	if status != "" && !models.IsValidInquiryStatus(status) {
		return nil, invalid("status", "must be new, in-progress or resolved")
	}
	return s.repo.List(ctx, status)
}

func (s *InquiryService) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) (*models.Inquiry, error) {
	if !models.IsValidInquiryStatus(status) {
		return nil, invalid("status", "must be new, in-progress or resolved")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	logger.Info().Str("inquiry_id", id).Str("status", string(status)).Msg("Inquiry status updated")
	return s.repo.GetByID(ctx, id)
}

func (s *InquiryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Str("inquiry_id", id).Msg("Inquiry deleted")
	return nil
}

// Counts returns the number of inquiries per status
func (s *InquiryService) Counts(ctx context.Context) (map[models.InquiryStatus]int64, error) {
	return s.repo.CountByStatus(ctx)
}
