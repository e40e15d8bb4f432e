package repository

import (
	"context"

	"gorm.io/gorm"

	"agency-site-server/models"
)

// CategoryAll selects every project regardless of category
const CategoryAll = "all"

// ProjectRepository persists portfolio projects
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context, category string) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a gorm-backed project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, category string) ([]models.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})
	if category != "" && category != CategoryAll {
		query = query.Where("category = ?", category)
	}

	var projects []models.Project
	err := query.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	res := r.db.WithContext(ctx).Model(project).Select("*").Omit("created_at").Updates(project)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *projectRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&n).Error
	return n, err
}
