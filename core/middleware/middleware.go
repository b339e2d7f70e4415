package middleware

import (
	"net/http"

	"campus-events-api/core/cache"
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by AuthMiddleware.
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"
	ContextKeyToken  = "token"
)

type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(cache cache.Cache) *Middleware {
	return &Middleware{cache: cache}
}

// AuthMiddleware verifies the bearer token, rejects blacklisted tokens and
// stores the caller's identity on the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrMissingAuthorizationHeader, "authentication required")
			}

			blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted:Error:", err)
				return controller.NewErrorResponse(http.StatusInternalServerError, errors.ErrInternalServer, "failed to verify token")
			}
			if blacklisted {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "token has been revoked")
			}

			tokenData, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "invalid or expired token")
			}

			c.Set(ContextKeyUserID, tokenData.UserID)
			c.Set(ContextKeyRole, tokenData.Role)
			c.Set(ContextKeyToken, token)
			return next(c)
		}
	}
}

// RequireRoles gates a route to the given roles. Must run after
// AuthMiddleware.
func (m *Middleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "insufficient role for this operation")
		}
	}
}

// UserIDFromContext returns the authenticated caller's id.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyUserID).(uuid.UUID)
	return id, ok
}

// RoleFromContext returns the authenticated caller's role.
func RoleFromContext(c echo.Context) string {
	role, _ := c.Get(ContextKeyRole).(string)
	return role
}
