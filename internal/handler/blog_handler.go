package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/service"
	"portfolio/internal/validation"
)

// BlogHandler handles blog post endpoints.
type BlogHandler struct {
	blogService service.BlogService
	gate        *validation.Gate
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService, gate *validation.Gate) *BlogHandler {
	return &BlogHandler{blogService: blogService, gate: gate}
}

// List godoc
// @Summary List blog posts
// @Description Anonymous callers only see published posts. Newest first.
// @Tags blogs
// @Produce json
// @Param published query bool false "Only published posts"
// @Success 200 {array} model.BlogPost
// @Failure 500 {object} errors.ErrorResponse
// @Router /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	posts, err := h.blogService.List(c.Request().Context(), currentClaims(c), c.QueryParam("published") == "true")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get godoc
// @Summary Get a blog post by ID
// @Tags blogs
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.BlogPost
// @Failure 404 {object} errors.ErrorResponse
// @Router /blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	post, err := h.blogService.Get(c.Request().Context(), currentClaims(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// GetBySlug godoc
// @Summary Get a blog post by slug
// @Tags blogs
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} model.BlogPost
// @Failure 404 {object} errors.ErrorResponse
// @Router /blogs/slug/{slug} [get]
func (h *BlogHandler) GetBySlug(c echo.Context) error {
	post, err := h.blogService.GetBySlug(c.Request().Context(), currentClaims(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create godoc
// @Summary Create a blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body service.BlogInput true "Post"
// @Success 201 {object} model.BlogPost
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	in, err := decodeBody[service.BlogInput](c, h.gate)
	if err != nil {
		return err
	}
	post, err := h.blogService.Create(c.Request().Context(), currentClaims(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Update godoc
// @Summary Update a blog post
// @Description Only the author may update a post.
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body service.BlogInput true "Post"
// @Success 200 {object} model.BlogPost
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	in, err := decodeBody[service.BlogInput](c, h.gate)
	if err != nil {
		return err
	}
	post, err := h.blogService.Update(c.Request().Context(), currentClaims(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a blog post
// @Description Only the author may delete a post.
// @Tags blogs
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.blogService.Delete(c.Request().Context(), currentClaims(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Blog deleted"})
}
