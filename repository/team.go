package repository

import (
	"context"

	"gorm.io/gorm"

	"agency-site-server/models"
)

// TeamMemberRepository persists team members
type TeamMemberRepository interface {
	Create(ctx context.Context, member *models.TeamMember) error
	GetByID(ctx context.Context, id string) (*models.TeamMember, error)
	List(ctx context.Context) ([]models.TeamMember, error)
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Reorder(ctx context.Context, ids []string) error
}

type teamMemberRepository struct {
	db *gorm.DB
}

// NewTeamMemberRepository creates a gorm-backed team member repository
func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

func (r *teamMemberRepository) Create(ctx context.Context, member *models.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *teamMemberRepository) GetByID(ctx context.Context, id string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (r *teamMemberRepository) List(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.WithContext(ctx).Order("display_order ASC, created_at ASC").Find(&members).Error
	return members, err
}

func (r *teamMemberRepository) Update(ctx context.Context, member *models.TeamMember) error {
	res := r.db.WithContext(ctx).Model(member).Select("*").Omit("created_at").Updates(member)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *teamMemberRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TeamMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *teamMemberRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.TeamMember{}).Count(&n).Error
	return n, err
}

// Reorder stores each id's slice position as its display order
func (r *teamMemberRepository) Reorder(ctx context.Context, ids []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&models.TeamMember{}).Where("id = ?", id).Update("display_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}
