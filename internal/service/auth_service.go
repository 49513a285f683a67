package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token string
	User  *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, claims *auth.Claims, current, next string) error
}

type authService struct {
	users repository.UserRepository
	codec *auth.TokenCodec
	log   *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, codec *auth.TokenCodec, log *zap.Logger) AuthService {
	return &authService{
		users: users,
		codec: codec,
		log:   log,
	}
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both return ErrInvalidCredentials after one bcrypt compare.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx, span := startSpan(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !isNotFound(err) {
			return nil, fail(span, fmt.Errorf("find user: %w", err))
		}
		auth.VerifyPassword(password, auth.DummyHash())
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(auth.Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, fail(span, fmt.Errorf("issue token: %w", err))
	}

	s.log.Info("user logged in", zap.String("user_id", user.ID.String()))
	return &LoginResult{Token: token, User: user}, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *authService) ChangePassword(ctx context.Context, claims *auth.Claims, current, next string) error {
	ctx, span := startSpan(ctx, "AuthService.ChangePassword")
	defer span.End()

	if err := auth.AuthorizeUnowned(claims); err != nil {
		return err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return apperrors.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrUnauthenticated
		}
		return fail(span, fmt.Errorf("find user: %w", err))
	}
	if !auth.VerifyPassword(current, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fail(span, err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fail(span, fmt.Errorf("update password: %w", err))
	}

	s.log.Info("password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
