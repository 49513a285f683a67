package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/service"
	"portfolio/internal/validation"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
	gate           *validation.Gate
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService, gate *validation.Gate) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, gate: gate}
}

// List godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param published query bool false "Only published projects"
// @Success 200 {array} model.Project
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context(), currentClaims(c), c.QueryParam("published") == "true")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projectService.Get(c.Request().Context(), currentClaims(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body service.ProjectInput true "Project"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	in, err := decodeBody[service.ProjectInput](c, h.gate)
	if err != nil {
		return err
	}
	project, err := h.projectService.Create(c.Request().Context(), currentClaims(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// Update godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body service.ProjectInput true "Project"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	in, err := decodeBody[service.ProjectInput](c, h.gate)
	if err != nil {
		return err
	}
	project, err := h.projectService.Update(c.Request().Context(), currentClaims(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.projectService.Delete(c.Request().Context(), currentClaims(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Project deleted"})
}
