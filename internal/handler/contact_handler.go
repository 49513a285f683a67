package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/service"
	"portfolio/internal/validation"
)

// ContactHandler handles contact form endpoints.
type ContactHandler struct {
	contactService service.ContactService
	gate           *validation.Gate
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService, gate *validation.Gate) *ContactHandler {
	return &ContactHandler{contactService: contactService, gate: gate}
}

// Submit godoc
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body service.ContactInput true "Message"
// @Success 201 {object} model.ContactMessage
// @Failure 400 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	in, err := decodeBody[service.ContactInput](c, h.gate)
	if err != nil {
		return err
	}
	msg, err := h.contactService.Submit(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// List godoc
// @Summary List contact messages
// @Tags contact
// @Produce json
// @Success 200 {array} model.ContactMessage
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	msgs, err := h.contactService.List(c.Request().Context(), currentClaims(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Delete godoc
// @Summary Delete a contact message
// @Tags contact
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /contact/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.contactService.Delete(c.Request().Context(), currentClaims(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Message deleted"})
}
