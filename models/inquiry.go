package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "new"
	InquiryStatusInProgress InquiryStatus = "in-progress"
	InquiryStatusResolved   InquiryStatus = "resolved"
)

// Inquiry is a contact-form submission
type Inquiry struct {
	ID        string        `json:"id" gorm:"primaryKey;size:36"`
	Name      string        `json:"name" gorm:"size:255;not null"`
	Email     string        `json:"email" gorm:"size:255;not null"`
	Subject   string        `json:"subject" gorm:"size:255;not null"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	Status    InquiryStatus `json:"status" gorm:"type:varchar(20);not null;default:'new';index"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Inquiry model
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate assigns the opaque store id
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = InquiryStatusNew
	}
	return nil
}

// IsValidInquiryStatus checks if the status is one of new, in-progress, resolved
func IsValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusInProgress, InquiryStatusResolved:
		return true
	default:
		return false
	}
}
