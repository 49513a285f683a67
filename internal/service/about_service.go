package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

const (
	aboutCacheTTL = 10 * time.Minute
	aboutCacheKey = "about"
)

// AboutService reads and writes the singleton profile.
type AboutService interface {
	Get(ctx context.Context) (*model.AboutProfile, error)
	Update(ctx context.Context, claims *auth.Claims, in *AboutInput) (*model.AboutProfile, error)
}

type aboutService struct {
	repo  repository.AboutRepository
	cache *cache.Client
	log   *zap.Logger
}

// NewAboutService creates a new profile service.
func NewAboutService(repo repository.AboutRepository, cache *cache.Client, log *zap.Logger) AboutService {
	return &aboutService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Get returns the profile, creating the default one on first read.
func (s *aboutService) Get(ctx context.Context) (*model.AboutProfile, error) {
	ctx, span := startSpan(ctx, "AboutService.Get")
	defer span.End()

	var cached model.AboutProfile
	if s.cache.GetJSON(ctx, aboutCacheKey, &cached) {
		return &cached, nil
	}

	profile, err := s.load(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	if profile.ID == 0 {
		if err := s.repo.Save(ctx, profile); err != nil {
			return nil, fail(span, fmt.Errorf("create default profile: %w", err))
		}
		s.log.Info("default about profile created")
	}

	s.cache.SetJSON(ctx, aboutCacheKey, profile, aboutCacheTTL)
	return profile, nil
}

// Update replaces the profile contents, creating it if needed.
func (s *aboutService) Update(ctx context.Context, claims *auth.Claims, in *AboutInput) (*model.AboutProfile, error) {
	ctx, span := startSpan(ctx, "AboutService.Update")
	defer span.End()

	if err := auth.AuthorizeUnowned(claims); err != nil {
		return nil, err
	}
	profile, err := s.load(ctx)
	if err != nil {
		return nil, fail(span, err)
	}

	profile.Bio = in.Bio
	profile.WorkExperience = datatypes.JSONSlice[model.WorkExperience](in.workExperience())
	profile.Skills = datatypes.JSONSlice[string](orEmpty(in.Skills))
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fail(span, fmt.Errorf("save profile: %w", err))
	}

	_ = s.cache.Delete(ctx, aboutCacheKey)
	s.log.Info("about profile updated", zap.String("user_id", claims.UserID))
	return profile, nil
}

// load returns the stored profile or an unsaved default one.
func (s *aboutService) load(ctx context.Context) (*model.AboutProfile, error) {
	profile, err := s.repo.Get(ctx)
	if err == nil {
		return profile, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &model.AboutProfile{
		Bio:            model.DefaultBio,
		WorkExperience: datatypes.JSONSlice[model.WorkExperience]{},
		Skills:         datatypes.JSONSlice[string]{},
	}, nil
}
