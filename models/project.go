package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a portfolio entry
type Project struct {
	ID          string                      `json:"id" gorm:"primaryKey;size:36"`
	Title       string                      `json:"title" gorm:"size:255;not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Category    string                      `json:"category" gorm:"size:100;not null;index"`
	Image       string                      `json:"image,omitempty" gorm:"size:500"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	URL         string                      `json:"url,omitempty" gorm:"size:500"`
	CreatedAt   time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns the opaque store id
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}
