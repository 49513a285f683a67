package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/service"
	"portfolio/internal/validation"
)

// AboutHandler serves the about profile.
type AboutHandler struct {
	aboutService service.AboutService
	gate         *validation.Gate
}

// NewAboutHandler creates a new about handler.
func NewAboutHandler(aboutService service.AboutService, gate *validation.Gate) *AboutHandler {
	return &AboutHandler{aboutService: aboutService, gate: gate}
}

// Get godoc
// @Summary Get the about profile
// @Tags about
// @Produce json
// @Success 200 {object} model.AboutProfile
// @Router /about [get]
func (h *AboutHandler) Get(c echo.Context) error {
	profile, err := h.aboutService.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary Replace the about profile
// @Tags about
// @Accept json
// @Produce json
// @Param request body service.AboutInput true "Profile"
// @Success 200 {object} model.AboutProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /about [put]
func (h *AboutHandler) Update(c echo.Context) error {
	in, err := decodeBody[service.AboutInput](c, h.gate)
	if err != nil {
		return err
	}
	profile, err := h.aboutService.Update(c.Request().Context(), currentClaims(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
