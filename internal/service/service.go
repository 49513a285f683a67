package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/validation"
)

var tracer = otel.Tracer("portfolio/service")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// fail marks the span as failed unless err is an expected client error.
func fail(span trace.Span, err error) error {
	if apperrors.MapErrorToHTTP(err).StatusCode >= 500 {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// parseID treats an unparseable id the same as an unknown one.
func parseID(raw, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NotFound(resource)
	}
	return id, nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// slugOf normalizes a submitted slug and refuses one that is blank.
func slugOf(raw string) (string, error) {
	slug := normalizeSlug(raw)
	if slug == "" {
		return "", &validation.Invalid{Fields: map[string]string{"slug": "Slug is required"}}
	}
	return slug, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
