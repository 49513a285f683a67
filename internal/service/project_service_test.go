package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository/mocks"
	"portfolio/internal/validation"
)

func validProjectInput() *ProjectInput {
	return &ProjectInput{
		Title:        "CMS",
		Slug:         "cms",
		Description:  "A portfolio CMS",
		Thumbnail:    "https://example.com/cms.png",
		LiveLink:     "https://example.com",
		Features:     []string{"blog"},
		Technologies: []string{"go"},
		Published:    true,
	}
}

func TestProjectService_AnyAuthenticatedUserMayEdit(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	repo := new(mocks.ProjectRepository)
	repo.On("FindByID", mock.Anything, projectID).Return(&model.Project{ID: projectID, Slug: "cms"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	svc := NewProjectService(repo, nil, zap.NewNop())

	project, err := svc.Update(ctx, claimsFor(uuid.New(), model.RoleUser), projectID.String(), validProjectInput())

	require.NoError(t, err)
	assert.Equal(t, "CMS", project.Title)
	assert.Equal(t, []string{"blog"}, []string(project.Features))
	repo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
}

func TestProjectService_UpdateRejectsBlankSlug(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	repo := new(mocks.ProjectRepository)
	repo.On("FindByID", mock.Anything, projectID).Return(&model.Project{ID: projectID, Slug: "cms"}, nil)
	in := validProjectInput()
	in.Slug = " \t "

	_, err := NewProjectService(repo, nil, zap.NewNop()).Update(ctx, claimsFor(uuid.New(), model.RoleUser), projectID.String(), in)

	var invalid *validation.Invalid
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Slug is required", invalid.Fields["slug"])
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate slug", func(t *testing.T) {
		repo := new(mocks.ProjectRepository)
		repo.On("FindBySlug", mock.Anything, "cms").Return(&model.Project{ID: uuid.New()}, nil)

		_, err := NewProjectService(repo, nil, zap.NewNop()).Create(ctx, claimsFor(uuid.New(), model.RoleUser), validProjectInput())

		assert.ErrorIs(t, err, apperrors.ErrSlugExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("anonymous", func(t *testing.T) {
		repo := new(mocks.ProjectRepository)

		_, err := NewProjectService(repo, nil, zap.NewNop()).Create(ctx, nil, validProjectInput())

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestProjectService_Delete_NotFound(t *testing.T) {
	projectID := uuid.New()
	repo := new(mocks.ProjectRepository)
	repo.On("Delete", mock.Anything, projectID).Return(gorm.ErrRecordNotFound)

	err := NewProjectService(repo, nil, zap.NewNop()).Delete(context.Background(), claimsFor(uuid.New(), model.RoleUser), projectID.String())

	assert.EqualError(t, err, "project not found")
}
