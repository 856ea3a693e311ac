package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/lielreyter/IDJ/internal/config"
	"github.com/lielreyter/IDJ/internal/errors"
	"github.com/lielreyter/IDJ/internal/handler"
	"github.com/lielreyter/IDJ/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	videoHandler *handler.VideoHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "OK",
			"message": "Server is running",
		})
	})

	// Auth routes (all public)
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/oauth", authHandler.OAuthLogin)
	auth.GET("/verify-email/:token", authHandler.VerifyEmail)
	auth.POST("/resend-verification", authHandler.ResendVerification)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password/:token", authHandler.ResetPassword)

	// Video routes; reads are public with optional personalization, writes
	// require a session token.
	protect := authMiddleware.Protect()
	optional := authMiddleware.OptionalAuth()

	videos := api.Group("/videos")
	videos.GET("", videoHandler.Feed, optional)
	videos.GET("/:id", videoHandler.Get, optional)
	videos.GET("/:id/comments", videoHandler.ListComments)
	videos.POST("", videoHandler.Create, protect)
	videos.PUT("/:id", videoHandler.Update, protect)
	videos.DELETE("/:id", videoHandler.Delete, protect)
	videos.PUT("/:id/like", videoHandler.ToggleLike, protect)
	videos.POST("/:id/comments", videoHandler.AddComment, protect)
	videos.DELETE("/:id/comments/:commentId", videoHandler.DeleteComment, protect)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorHandler renders every error as the {success:false, error} envelope.
// Nothing propagates to the transport layer as an unhandled fault.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	switch e := err.(type) {
	case *echo.HTTPError:
		status = e.Code
		if msg, ok := e.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	case *errors.HTTPError:
		status = e.StatusCode
		message = e.Message
	default:
		httpErr := errors.MapErrorToHTTP(err)
		status = httpErr.StatusCode
		message = httpErr.Message
	}

	_ = c.JSON(status, errors.ErrorResponse{Success: false, Error: message})
}
