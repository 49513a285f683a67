package model

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultBio is used when the profile is read before anyone has written it.
const DefaultBio = "Welcome to my portfolio!"

// AboutProfile is the single "about me" document shown on the home page.
type AboutProfile struct {
	ID             uint                                `json:"-" gorm:"primaryKey"`
	Bio            string                              `json:"bio" gorm:"type:text;not null"`
	WorkExperience datatypes.JSONSlice[WorkExperience] `json:"workExperience" gorm:"type:json"`
	Skills         datatypes.JSONSlice[string]         `json:"skills" gorm:"type:json"`
	CreatedAt      time.Time                           `json:"createdAt"`
	UpdatedAt      time.Time                           `json:"updatedAt"`
}

// WorkExperience is one position listed on the profile.
type WorkExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}
