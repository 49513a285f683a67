package router

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"portfolio/docs"
	"portfolio/internal/auth"
	"portfolio/internal/config"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/handler"
	"portfolio/internal/observability"
	"portfolio/internal/validation"
)

// Handlers groups the route handlers.
type Handlers struct {
	Auth    *handler.AuthHandler
	Blog    *handler.BlogHandler
	Project *handler.ProjectHandler
	About   *handler.AboutHandler
	Contact *handler.ContactHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	codec *auth.TokenCodec,
	gate *validation.Gate,
	log *zap.Logger,
	h Handlers,
) {
	e.HTTPErrorHandler = errorHandler(log)
	e.Validator = &CustomValidator{gate: gate}

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(observability.Metrics())

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(observability.MetricsHandler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	secured := requireAuth(codec)
	viewer := optionalAuth(auth.NewAuthenticator(codec))

	api := e.Group("/api")

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/verify", h.Auth.Verify, viewer)
	api.PUT("/auth/password", h.Auth.ChangePassword, secured)

	api.GET("/blogs", h.Blog.List, viewer)
	api.POST("/blogs", h.Blog.Create, secured)
	api.GET("/blogs/slug/:slug", h.Blog.GetBySlug, viewer)
	api.GET("/blogs/:id", h.Blog.Get, viewer)
	api.PUT("/blogs/:id", h.Blog.Update, secured)
	api.DELETE("/blogs/:id", h.Blog.Delete, secured)

	api.GET("/projects", h.Project.List, viewer)
	api.POST("/projects", h.Project.Create, secured)
	api.GET("/projects/:id", h.Project.Get, viewer)
	api.PUT("/projects/:id", h.Project.Update, secured)
	api.DELETE("/projects/:id", h.Project.Delete, secured)

	api.GET("/about", h.About.Get)
	api.PUT("/about", h.About.Update, secured)

	api.POST("/contact", h.Contact.Submit)
	api.GET("/contact", h.Contact.List, secured)
	api.DELETE("/contact/:id", h.Contact.Delete, secured)
}

// requireAuth rejects requests without a valid token. The cause is never
// revealed to the client.
func requireAuth(codec *auth.TokenCodec) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + auth.CookieName + ",header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  auth.ContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return codec.Decode(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrUnauthenticated
		},
	})
}

// optionalAuth attaches claims when the request carries a valid token and
// otherwise lets it through as anonymous.
func optionalAuth(a *auth.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := a.Authenticate(c.Request()); err == nil {
				c.Set(auth.ContextKey, claims)
			}
			return next(c)
		}
	}
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

// errorHandler renders every error as {"error": ...}. Server errors are
// logged and replaced with a generic message.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status int
			body   apperrors.ErrorResponse
			he     *echo.HTTPError
		)
		if errors.As(err, &he) {
			status = he.Code
			msg, ok := he.Message.(string)
			if !ok || status >= http.StatusInternalServerError {
				msg = http.StatusText(status)
			}
			body = apperrors.ErrorResponse{Error: msg}
		} else {
			mapped := apperrors.MapErrorToHTTP(err)
			status = mapped.StatusCode
			body = mapped.ToErrorResponse()
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}

// CustomValidator adapts the validation gate to echo.Validator.
type CustomValidator struct {
	gate *validation.Gate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.gate.Struct(i)
}
