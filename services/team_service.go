package services

import (
	"context"
	"strings"

	"agency-site-server/logger"
	"agency-site-server/models"
	"agency-site-server/repository"
	"agency-site-server/storage"
)

// TeamMemberInput is a team member as edited in the admin panel
type TeamMemberInput struct {
	Name     string `json:"name" form:"name"`
	Role     string `json:"role" form:"role"`
	Bio      string `json:"bio" form:"bio"`
	LinkedIn string `json:"linkedin" form:"linkedin"`
	Twitter  string `json:"twitter" form:"twitter"`
	GitHub   string `json:"github" form:"github"`
}

func (in *TeamMemberInput) normalize() error {
	var err error
	if in.Name, err = required("name", in.Name); err != nil {
		return err
	}
	if in.Role, err = required("role", in.Role); err != nil {
		return err
	}
	in.Bio = strings.TrimSpace(in.Bio)

	links := map[string]*string{"linkedin": &in.LinkedIn, "twitter": &in.Twitter, "github": &in.GitHub}
	for field, link := range links {
		*link = strings.TrimSpace(*link)
		if *link != "" && !validURL(*link) {
			return invalid(field, "must be a valid URL")
		}
	}
	return nil
}

// TeamService manages the people on the about page
type TeamService struct {
	repo   repository.TeamMemberRepository
	images uploader
}

func NewTeamService(repo repository.TeamMemberRepository, images storage.ImageStore, retry storage.RetryPolicy) *TeamService {
	return &TeamService{
		repo:   repo,
		images: uploader{store: images, folder: "team", retry: &retry},
	}
}

// List returns members in display order
func (s *TeamService) List(ctx context.Context) ([]models.TeamMember, error) {
	return s.repo.List(ctx)
}

func (s *TeamService) Get(ctx context.Context, id string) (*models.TeamMember, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TeamService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Create appends a member at the end of the display order
func (s *TeamService) Create(ctx context.Context, input TeamMemberInput, image *ImageFile) (*models.TeamMember, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if err := image.validate(); err != nil {
		return nil, err
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	member := &models.TeamMember{Order: int(count)}
	input.applyTo(member)

	if image != nil {
		url, err := s.images.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		member.Image = url
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	logger.Info().Str("member_id", member.ID).Int("order", member.Order).Msg("Team member created")
	return member, nil
}

func (s *TeamService) Update(ctx context.Context, id string, input TeamMemberInput, image *ImageFile) (*models.TeamMember, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if err := image.validate(); err != nil {
		return nil, err
	}

	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.images.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		member.Image = url
	}
	input.applyTo(member)

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	logger.Info().Str("member_id", id).Msg("Team member updated")
	return member, nil
}

func (in TeamMemberInput) applyTo(m *models.TeamMember) {
	m.Name = in.Name
	m.Role = in.Role
	m.Bio = in.Bio
	m.LinkedIn = in.LinkedIn
	m.Twitter = in.Twitter
	m.GitHub = in.GitHub
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Str("member_id", id).Msg("Team member deleted")
	return nil
}

// Reorder sets the display order to the order of ids, which must name every
// member exactly once
func (s *TeamService) Reorder(ctx context.Context, ids []string) ([]models.TeamMember, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(members) {
		return nil, invalid("ids", "must list every team member exactly once")
	}

	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return nil, invalid("ids", "must list every team member exactly once")
		}
		delete(known, id)
	}

	if err := s.repo.Reorder(ctx, ids); err != nil {
		return nil, err
	}

	logger.Info().Int("members", len(ids)).Msg("Team reordered")
	return s.repo.List(ctx)
}
