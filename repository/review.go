package repository

import (
	"context"

	"gorm.io/gorm"

	"agency-site-server/models"
)

// ReviewRepository persists reviews
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	List(ctx context.Context) ([]models.Review, error)
	ListApprovedPublic(ctx context.Context) ([]models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[models.ReviewStatus]int64, error)
	AverageRating(ctx context.Context) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a gorm-backed review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListApprovedPublic(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("status = ? AND is_public = ?", models.ReviewStatusApproved, true).
		Order("reviewed_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	res := r.db.WithContext(ctx).Model(review).Select("*").Omit("submitted_at").Updates(review)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepository) CountByStatus(ctx context.Context) (map[models.ReviewStatus]int64, error) {
	var rows []struct {
		Status models.ReviewStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.ReviewStatus]int64{
		models.ReviewStatusPending:  0,
		models.ReviewStatusApproved: 0,
		models.ReviewStatusRejected: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}
