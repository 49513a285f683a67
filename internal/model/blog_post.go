package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost is an article owned by the user who wrote it.
type BlogPost struct {
	ID        uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string                      `json:"title" gorm:"size:200;not null"`
	Slug      string                      `json:"slug" gorm:"size:200;uniqueIndex;not null"`
	Content   string                      `json:"content" gorm:"type:text;not null"`
	Excerpt   string                      `json:"excerpt" gorm:"size:500;not null"`
	AuthorID  uuid.UUID                   `json:"authorId" gorm:"type:char(36);not null;index"`
	Tags      datatypes.JSONSlice[string] `json:"tags" gorm:"type:json"`
	Published bool                        `json:"published" gorm:"not null;index"`
	CreatedAt time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time                   `json:"updatedAt"`

	// Relations
	Author *Author `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// Author is the public projection of the user who owns a post.
type Author struct {
	ID       uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username string    `json:"username"`
}

// TableName maps Author onto the users table.
func (Author) TableName() string {
	return "users"
}

// BeforeCreate sets UUID before creating the record.
func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
