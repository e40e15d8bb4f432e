package repository

import (
	"context"

	"gorm.io/gorm"

	"agency-site-server/models"
)

// InquiryRepository persists contact-form inquiries
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id string) (*models.Inquiry, error)
	List(ctx context.Context, status models.InquiryStatus) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[models.InquiryStatus]int64, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a gorm-backed inquiry repository
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) GetByID(ctx context.Context, id string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error; err != nil {
		return nil, translate(err)
	}
	return &inquiry, nil
}

func (r *inquiryRepository) List(ctx context.Context, status models.InquiryStatus) ([]models.Inquiry, error) {
	query := r.db.WithContext(ctx).Model(&models.Inquiry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var inquiries []models.Inquiry
	err := query.Order("created_at DESC").Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Inquiry{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inquiryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Inquiry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inquiryRepository) CountByStatus(ctx context.Context) (map[models.InquiryStatus]int64, error) {
	var rows []struct {
		Status models.InquiryStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Inquiry{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.InquiryStatus]int64{
		models.InquiryStatusNew:        0,
		models.InquiryStatusInProgress: 0,
		models.InquiryStatusResolved:   0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
