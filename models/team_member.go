package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamMember is a person shown on the about page
type TeamMember struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Role      string    `json:"role" gorm:"size:255;not null"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Image     string    `json:"image,omitempty" gorm:"size:500"`
	LinkedIn  string    `json:"linkedin,omitempty" gorm:"column:linkedin;size:500"`
	Twitter   string    `json:"twitter,omitempty" gorm:"size:500"`
	GitHub    string    `json:"github,omitempty" gorm:"column:github;size:500"`
	Order     int       `json:"order" gorm:"column:display_order;not null;default:0;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the TeamMember model
func (TeamMember) TableName() string {
	return "team_members"
}

// BeforeCreate assigns the opaque store id
func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
