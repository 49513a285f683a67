package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a portfolio entry. Projects have no owner: any signed-in user may edit them.
type Project struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	Title        string                      `json:"title" gorm:"size:200;not null"`
	Slug         string                      `json:"slug" gorm:"size:200;uniqueIndex;not null"`
	Description  string                      `json:"description" gorm:"type:text;not null"`
	Thumbnail    string                      `json:"thumbnail" gorm:"size:500;not null"`
	LiveLink     string                      `json:"liveLink" gorm:"size:500;not null"`
	GithubLink   string                      `json:"githubLink,omitempty" gorm:"size:500"`
	Features     datatypes.JSONSlice[string] `json:"features" gorm:"type:json"`
	Technologies datatypes.JSONSlice[string] `json:"technologies" gorm:"type:json"`
	Published    bool                        `json:"published" gorm:"not null;index"`
	CreatedAt    time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
