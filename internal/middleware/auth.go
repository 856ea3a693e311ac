package middleware

import (
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/lielreyter/IDJ/internal/auth"
	apperrors "github.com/lielreyter/IDJ/internal/errors"
	"github.com/lielreyter/IDJ/internal/model"
	"github.com/lielreyter/IDJ/internal/repository"
)

const currentUserKey = "currentUser"

// AuthMiddleware extracts and verifies bearer tokens and resolves the
// subject from the credential store.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repository.UserRepository
}

// NewAuthMiddleware creates the middleware set for protected routes.
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// Protect requires a valid bearer token. A missing header, a bad or expired
// token, and a subject that no longer exists all yield the same 401, so a
// caller cannot probe which condition it hit.
func (m *AuthMiddleware) Protect() echo.MiddlewareFunc {
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return m.jwtService.ValidateToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNotAuthorized)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMiddleware(m.loadUser(next))
	}
}

// loadUser resolves the verified claims to a live user record. The token
// may outlive the account, so a vanished subject is rejected here.
func (m *AuthMiddleware) loadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.Claims)
		if !ok {
			return unauthorized()
		}
		userID, err := claims.SubjectID()
		if err != nil {
			return unauthorized()
		}
		user, err := m.userRepo.FindByID(c.Request().Context(), userID)
		if err != nil {
			return unauthorized()
		}
		c.Set(currentUserKey, user)
		return next(c)
	}
}

// OptionalAuth resolves the caller's identity when a valid bearer token is
// present and proceeds anonymously otherwise. It never rejects a request.
func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return next(c)
			}
			claims, err := m.jwtService.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return next(c)
			}
			userID, err := claims.SubjectID()
			if err != nil {
				return next(c)
			}
			if user, err := m.userRepo.FindByID(c.Request().Context(), userID); err == nil {
				c.Set(currentUserKey, user)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the resolved identity, or nil on anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}

func unauthorized() error {
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNotAuthorized)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
}
