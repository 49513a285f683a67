package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/events"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

const contactResource = "message"

// ContactService stores contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, in *ContactInput) (*model.ContactMessage, error)
	List(ctx context.Context, claims *auth.Claims) ([]model.ContactMessage, error)
	Delete(ctx context.Context, claims *auth.Claims, id string) error
}

type contactService struct {
	repo      repository.ContactRepository
	publisher events.Publisher
	topic     string
	log       *zap.Logger
}

// NewContactService creates a new contact service. Submissions are announced on topic.
func NewContactService(repo repository.ContactRepository, publisher events.Publisher, topic string, log *zap.Logger) ContactService {
	return &contactService{
		repo:      repo,
		publisher: publisher,
		topic:     topic,
		log:       log,
	}
}

func (s *contactService) Submit(ctx context.Context, in *ContactInput) (*model.ContactMessage, error) {
	ctx, span := startSpan(ctx, "ContactService.Submit")
	defer span.End()

	msg := &model.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   normalizeEmail(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: in.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fail(span, fmt.Errorf("store message: %w", err))
	}

	event := events.ContactSubmitted{
		ID:          msg.ID.String(),
		Name:        msg.Name,
		Email:       msg.Email,
		Subject:     msg.Subject,
		SubmittedAt: msg.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, s.topic, event.ID, event); err != nil {
		s.log.Warn("publish contact event failed", zap.String("message_id", event.ID), zap.Error(err))
	}

	s.log.Info("contact message received", zap.String("message_id", msg.ID.String()))
	return msg, nil
}

func (s *contactService) List(ctx context.Context, claims *auth.Claims) ([]model.ContactMessage, error) {
	ctx, span := startSpan(ctx, "ContactService.List")
	defer span.End()

	if err := auth.AuthorizeUnowned(claims); err != nil {
		return nil, err
	}
	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fail(span, fmt.Errorf("list messages: %w", err))
	}
	return msgs, nil
}

func (s *contactService) Delete(ctx context.Context, claims *auth.Claims, id string) error {
	ctx, span := startSpan(ctx, "ContactService.Delete")
	defer span.End()

	if err := auth.AuthorizeUnowned(claims); err != nil {
		return err
	}
	msgID, err := parseID(id, contactResource)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, msgID); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound(contactResource)
		}
		return fail(span, fmt.Errorf("delete message: %w", err))
	}
	s.log.Info("contact message deleted", zap.String("message_id", id))
	return nil
}
