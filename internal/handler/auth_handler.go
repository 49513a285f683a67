package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

// UserSummary is the public part of the logged in user.
type UserSummary struct {
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
	Token   string      `json:"token"`
}

// VerifyResponse reports whether the request carries a valid token.
type VerifyResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *auth.Claims `json:"user,omitempty"`
}

// Login godoc
// @Summary Login user
// @Description Verifies credentials, sets the authToken cookie and returns the token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidBody
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie(result.Token, int(auth.TokenTTL.Seconds())))
	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    UserSummary{Username: result.User.Username, Role: result.User.Role},
		Token:   result.Token,
	})
}

// Logout godoc
// @Summary Logout user
// @Description Clears the auth cookie. Issued tokens stay valid until they expire.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie("", -1))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

// Verify godoc
// @Summary Verify the current token
// @Tags auth
// @Produce json
// @Success 200 {object} VerifyResponse
// @Failure 401 {object} VerifyResponse
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, VerifyResponse{Authenticated: false})
	}
	return c.JSON(http.StatusOK, VerifyResponse{Authenticated: true, User: claims})
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req service.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidBody
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.Request().Context(), currentClaims(c), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated"})
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
