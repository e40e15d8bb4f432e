package services

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"agency-site-server/logger"
	"agency-site-server/models"
	"agency-site-server/repository"
	"agency-site-server/storage"
)

// ProjectInput is a portfolio entry as edited in the admin panel
type ProjectInput struct {
	Title       string   `json:"title" form:"title"`
	Description string   `json:"description" form:"description"`
	Category    string   `json:"category" form:"category"`
	Tags        []string `json:"tags" form:"tags"`
	URL         string   `json:"url" form:"url"`
}

func (in *ProjectInput) normalize() error {
	var err error
	if in.Title, err = required("title", in.Title); err != nil {
		return err
	}
	if in.Description, err = required("description", in.Description); err != nil {
		return err
	}
	if in.Category, err = required("category", in.Category); err != nil {
		return err
	}
	in.Category = strings.ToLower(in.Category)

	in.URL = strings.TrimSpace(in.URL)
	if in.URL != "" && !validURL(in.URL) {
		return invalid("url", "must be a valid URL")
	}

	in.Tags = cleanTags(in.Tags)
	return nil
}

// cleanTags trims, drops empties and duplicates, and splits comma lists
func cleanTags(raw []string) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, tag := range strings.Split(entry, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[strings.ToLower(tag)] {
				continue
			}
			seen[strings.ToLower(tag)] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// ProjectService manages the portfolio
type ProjectService struct {
	repo   repository.ProjectRepository
	images uploader
}

// NewProjectService creates a project service. Images are retried per policy
// before the project is written.
func NewProjectService(repo repository.ProjectRepository, images storage.ImageStore, retry storage.RetryPolicy) *ProjectService {
	return &ProjectService{
		repo:   repo,
		images: uploader{store: images, folder: "projects", retry: &retry},
	}
}

// List returns the projects in category, or all of them for "" and "all"
func (s *ProjectService) List(ctx context.Context, category string) ([]models.Project, error) {
	return s.repo.List(ctx, strings.ToLower(strings.TrimSpace(category)))
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories lists the categories in use
func (s *ProjectService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *ProjectService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ProjectService) Create(ctx context.Context, input ProjectInput, image *ImageFile) (*models.Project, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if err := image.validate(); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Tags:        datatypes.JSONSlice[string](input.Tags),
		URL:         input.URL,
	}

	if image != nil {
		url, err := s.images.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		project.Image = url
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	logger.Info().Str("project_id", project.ID).Str("category", project.Category).Msg("Project created")
	return project, nil
}

// Update replaces a project's fields; the image changes only when a new one is given
func (s *ProjectService) Update(ctx context.Context, id string, input ProjectInput, image *ImageFile) (*models.Project, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if err := image.validate(); err != nil {
		return nil, err
	}

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if image != nil {
		url, err := s.images.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		project.Image = url
	}

	project.Title = input.Title
	project.Description = input.Description
	project.Category = input.Category
	project.Tags = datatypes.JSONSlice[string](input.Tags)
	project.URL = input.URL

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	logger.Info().Str("project_id", id).Msg("Project updated")
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Str("project_id", id).Msg("Project deleted")
	return nil
}
