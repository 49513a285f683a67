package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"portfolio/internal/model"
	"portfolio/internal/repository/mocks"
)

func TestAboutService_GetCreatesDefault(t *testing.T) {
	repo := new(mocks.AboutRepository)
	repo.On("Get", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *model.AboutProfile) bool {
		return p.Bio == model.DefaultBio
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.AboutProfile).ID = 1
	}).Return(nil)

	profile, err := NewAboutService(repo, nil, zap.NewNop()).Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Welcome to my portfolio!", profile.Bio)
	assert.NotNil(t, profile.Skills)
	repo.AssertExpectations(t)
}

func TestAboutService_GetExisting(t *testing.T) {
	stored := &model.AboutProfile{ID: 1, Bio: "Hi", Skills: datatypes.JSONSlice[string]{"go"}}
	repo := new(mocks.AboutRepository)
	repo.On("Get", mock.Anything).Return(stored, nil)

	profile, err := NewAboutService(repo, nil, zap.NewNop()).Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, stored, profile)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAboutService_Update(t *testing.T) {
	repo := new(mocks.AboutRepository)
	repo.On("Get", mock.Anything).Return(&model.AboutProfile{ID: 1, Bio: "old"}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	in := &AboutInput{
		Bio:            "new",
		WorkExperience: []WorkExperienceInput{{Company: "Acme", Position: "Engineer", Duration: "2020-2024"}},
		Skills:         []string{"go", "sql"},
	}

	profile, err := NewAboutService(repo, nil, zap.NewNop()).Update(context.Background(), claimsFor(uuid.New(), model.RoleUser), in)

	require.NoError(t, err)
	assert.Equal(t, uint(1), profile.ID)
	assert.Equal(t, "new", profile.Bio)
	assert.Equal(t, []model.WorkExperience{{Company: "Acme", Position: "Engineer", Duration: "2020-2024"}}, []model.WorkExperience(profile.WorkExperience))
	assert.Equal(t, []string{"go", "sql"}, []string(profile.Skills))
}
