package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
	"github.com/seas-computing/course-planner/internal/pkg/session"
)

// UserContextKey is where RequireAuth stores the session user
const UserContextKey = "user"

// SessionLoader reads the user of a request's session
type SessionLoader interface {
	Load(ctx context.Context, r *http.Request) (*models.User, error)
}

// cookieRefresher is implemented by session stores whose cookie must be
// re-issued when the stored session is extended
type cookieRefresher interface {
	Refresh(w http.ResponseWriter, r *http.Request)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	sessions SessionLoader
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions SessionLoader) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAuth rejects requests without a valid session and exposes the
// session user to later handlers
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.sessions.Load(c.Request.Context(), c.Request)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				logger.Error().Err(err).Msg("Failed to load session")
			}
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if r, ok := m.sessions.(cookieRefresher); ok {
			r.Refresh(c.Writer, c.Request)
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireGroup rejects users outside group. It must run after RequireAuth.
func (m *AuthMiddleware) RequireGroup(group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if !user.IsMember(group) {
			logger.Warn().Str("eppn", user.EPPN).Str("group", group).Msg("User lacks required group")
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
