package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"portfolio/internal/auth"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// SeedService bootstraps accounts. The API itself never creates users.
type SeedService interface {
	EnsureAdmin(ctx context.Context, username, email, password string) (*model.User, bool, error)
}

type seedService struct {
	users repository.UserRepository
	log   *zap.Logger
}

// NewSeedService creates a new seed service.
func NewSeedService(users repository.UserRepository, log *zap.Logger) SeedService {
	return &seedService{users: users, log: log}
}

// EnsureAdmin creates the admin account unless a user with that email or
// username exists. The boolean reports whether a user was created.
func (s *seedService) EnsureAdmin(ctx context.Context, username, email, password string) (*model.User, bool, error) {
	email = normalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, fmt.Errorf("check user existence: %w", err)
	}
	username = strings.TrimSpace(username)
	existing, err = s.users.FindByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("admin account created", zap.String("user_id", user.ID.String()))
	return user, true, nil
}
