package handler

import (
	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/validation"
)

// MessageResponse is the body of operations that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// currentClaims returns the caller identity set by the auth middleware, or
// nil for an anonymous request.
func currentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(auth.ContextKey).(*auth.Claims)
	return claims
}

// decodeBody reads the request body as a JSON object and validates it against T.
func decodeBody[T any](c echo.Context, gate *validation.Gate) (*T, error) {
	payload, err := validation.ParsePayload(c.Request().Body)
	if err != nil {
		return nil, apperrors.ErrInvalidBody
	}
	return validation.Decode[T](gate, payload)
}
