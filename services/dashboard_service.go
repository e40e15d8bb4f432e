package services

import (
	"context"

	"agency-site-server/models"
)

// DashboardStats is the admin landing page summary
type DashboardStats struct {
	Reviews     *ReviewStats                   `json:"reviews"`
	Inquiries   map[models.InquiryStatus]int64 `json:"inquiries"`
	Projects    int64                          `json:"projects"`
	TeamMembers int64                          `json:"team_members"`
}

// NewInquiries is the number of unread contact-form messages
func (s *DashboardStats) NewInquiries() int64 {
	return s.Inquiries[models.InquiryStatusNew]
}

type DashboardService struct {
	reviews   *ReviewService
	inquiries *InquiryService
	projects  *ProjectService
	team      *TeamService
}

func NewDashboardService(reviews *ReviewService, inquiries *InquiryService, projects *ProjectService, team *TeamService) *DashboardService {
	return &DashboardService{reviews: reviews, inquiries: inquiries, projects: projects, team: team}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	reviews, err := s.reviews.Stats(ctx)
	if err != nil {
		return nil, err
	}
	inquiries, err := s.inquiries.Counts(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, err
	}
	team, err := s.team.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Reviews:     reviews,
		Inquiries:   inquiries,
		Projects:    projects,
		TeamMembers: team,
	}, nil
}
