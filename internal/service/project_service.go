package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

const (
	projectCacheTTL     = 5 * time.Minute
	projectListCacheKey = "projects:published"
	projectResource     = "project"
)

// ProjectService handles project operations. Projects have no owner, so
// any authenticated caller may change them.
type ProjectService interface {
	List(ctx context.Context, claims *auth.Claims, publishedOnly bool) ([]model.Project, error)
	Get(ctx context.Context, claims *auth.Claims, id string) (*model.Project, error)
	Create(ctx context.Context, claims *auth.Claims, in *ProjectInput) (*model.Project, error)
	Update(ctx context.Context, claims *auth.Claims, id string, in *ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, claims *auth.Claims, id string) error
}

type projectService struct {
	repo  repository.ProjectRepository
	cache *cache.Client
	log   *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, cache *cache.Client, log *zap.Logger) ProjectService {
	return &projectService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func projectIDKey(id uuid.UUID) string { return "project:id:" + id.String() }

func (s *projectService) List(ctx context.Context, claims *auth.Claims, publishedOnly bool) ([]model.Project, error) {
	ctx, span := startSpan(ctx, "ProjectService.List")
	defer span.End()

	publishedOnly = publishedOnly || claims == nil
	if publishedOnly {
		var cached []model.Project
		if s.cache.GetJSON(ctx, projectListCacheKey, &cached) {
			return cached, nil
		}
	}

	projects, err := s.repo.List(ctx, repository.ListFilter{PublishedOnly: publishedOnly})
	if err != nil {
		return nil, fail(span, fmt.Errorf("list projects: %w", err))
	}
	if publishedOnly {
		s.cache.SetJSON(ctx, projectListCacheKey, projects, projectCacheTTL)
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, claims *auth.Claims, id string) (*model.Project, error) {
	ctx, span := startSpan(ctx, "ProjectService.Get")
	defer span.End()

	projectID, err := parseID(id, projectResource)
	if err != nil {
		return nil, err
	}
	key := projectIDKey(projectID)
	if claims == nil {
		var cached model.Project
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	project, err := s.find(ctx, projectID)
	if err != nil {
		return nil, fail(span, err)
	}
	if !project.Published {
		if claims == nil {
			return nil, apperrors.NotFound(projectResource)
		}
		return project, nil
	}
	s.cache.SetJSON(ctx, key, project, projectCacheTTL)
	return project, nil
}

func (s *projectService) Create(ctx context.Context, claims *auth.Claims, in *ProjectInput) (*model.Project, error) {
	ctx, span := startSpan(ctx, "ProjectService.Create")
	defer span.End()

	if err := auth.AuthorizeUnowned(claims); err != nil {
		return nil, err
	}
	slug, err := slugOf(in.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug, uuid.Nil); err != nil {
		return nil, fail(span, err)
	}

	project := &model.Project{Slug: slug}
	apply(project, in)
	if err := s.repo.Create(ctx, project); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrSlugExists
		}
		return nil, fail(span, fmt.Errorf("create project: %w", err))
	}

	s.invalidate(ctx, project.ID)
	s.log.Info("project created", zap.String("project_id", project.ID.String()))
	return project, nil
}

func (s *projectService) Update(ctx context.Context, claims *auth.Claims, id string, in *ProjectInput) (*model.Project, error) {
	ctx, span := startSpan(ctx, "ProjectService.Update")
	defer span.End()

	if err := auth.AuthorizeUnowned(claims); err != nil {
		return nil, err
	}
	projectID, err := parseID(id, projectResource)
	if err != nil {
		return nil, err
	}
	project, err := s.find(ctx, projectID)
	if err != nil {
		return nil, fail(span, err)
	}

	slug, err := slugOf(in.Slug)
	if err != nil {
		return nil, err
	}
	if slug != project.Slug {
		if err := s.ensureSlugFree(ctx, slug, project.ID); err != nil {
			return nil, fail(span, err)
		}
	}
	project.Slug = slug
	apply(project, in)

	if err := s.repo.Update(ctx, project); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrSlugExists
		}
		return nil, fail(span, fmt.Errorf("update project: %w", err))
	}

	s.invalidate(ctx, project.ID)
	s.log.Info("project updated", zap.String("project_id", project.ID.String()))
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, claims *auth.Claims, id string) error {
	ctx, span := startSpan(ctx, "ProjectService.Delete")
	defer span.End()

	if err := auth.AuthorizeUnowned(claims); err != nil {
		return err
	}
	projectID, err := parseID(id, projectResource)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, projectID); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound(projectResource)
		}
		return fail(span, fmt.Errorf("delete project: %w", err))
	}

	s.invalidate(ctx, projectID)
	s.log.Info("project deleted", zap.String("project_id", projectID.String()))
	return nil
}

func (s *projectService) find(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound(projectResource)
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

func (s *projectService) ensureSlugFree(ctx context.Context, slug string, self uuid.UUID) error {
	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("check slug: %w", err)
	}
	if existing.ID != self {
		return apperrors.ErrSlugExists
	}
	return nil
}

func (s *projectService) invalidate(ctx context.Context, id uuid.UUID) {
	_ = s.cache.Delete(ctx, projectListCacheKey, projectIDKey(id))
}

func apply(p *model.Project, in *ProjectInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.Thumbnail = in.Thumbnail
	p.LiveLink = in.LiveLink
	p.GithubLink = in.GithubLink
	p.Features = datatypes.JSONSlice[string](orEmpty(in.Features))
	p.Technologies = datatypes.JSONSlice[string](orEmpty(in.Technologies))
	p.Published = in.Published
}
