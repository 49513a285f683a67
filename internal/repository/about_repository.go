package repository

import (
	"context"

	"gorm.io/gorm"

	"portfolio/internal/model"
)

// AboutRepository stores the singleton profile.
type AboutRepository interface {
	// Get returns gorm.ErrRecordNotFound until a profile has been saved.
	Get(ctx context.Context) (*model.AboutProfile, error)
	Save(ctx context.Context, profile *model.AboutProfile) error
}

type aboutRepository struct {
	db *gorm.DB
}

// NewAboutRepository creates a new profile repository.
func NewAboutRepository(db *gorm.DB) AboutRepository {
	return &aboutRepository{db: db}
}

func (r *aboutRepository) Get(ctx context.Context) (*model.AboutProfile, error) {
	var profile model.AboutProfile
	if err := r.db.WithContext(ctx).Order("id").First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save inserts the profile when it has no ID yet and updates it otherwise.
func (r *aboutRepository) Save(ctx context.Context, profile *model.AboutProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
