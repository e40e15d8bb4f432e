package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Rating bounds for reviews
const (
	MinRating = 1
	MaxRating = 5
)

// ReviewedByAdmin is recorded as reviewer for reviews authored in the admin panel
const ReviewedByAdmin = "admin"

// Review is a piece of client feedback, submitted by a visitor or entered by an admin
type Review struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	Name        string       `json:"name" gorm:"size:255;not null"`
	Position    string       `json:"position" gorm:"size:255"`
	Company     string       `json:"company" gorm:"size:255"`
	Content     string       `json:"content" gorm:"type:text;not null"`
	Rating      int          `json:"rating" gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	ProjectType string       `json:"project_type,omitempty" gorm:"size:100"`
	Image       string       `json:"image,omitempty" gorm:"size:500"`
	Status      ReviewStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	IsPublic    bool         `json:"is_public" gorm:"default:false;index"`
	SubmittedAt time.Time    `json:"submitted_at" gorm:"<-:create;not null"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty" gorm:"index"`
	ReviewedBy  string       `json:"reviewed_by,omitempty" gorm:"size:100"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate assigns the opaque store id
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReviewStatusPending
	}
	return nil
}

// IsVisible reports whether the review is shown on the public site
func (r *Review) IsVisible() bool {
	return r.Status == ReviewStatusApproved && r.IsPublic
}

// IsValidReviewStatus checks if the status is one of the lifecycle states
func IsValidReviewStatus(s ReviewStatus) bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	default:
		return false
	}
}

// IsValidRating checks the 1..5 rating bounds
func IsValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
