// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/crewjam/saml/samlsp"
	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
	"github.com/seas-computing/course-planner/internal/pkg/session"
)

// SessionManager is the part of session.Store used by the login flow
type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, user *models.User) (string, error)
	Load(ctx context.Context, r *http.Request) (*models.User, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// AuthController handles login, logout and the SAML endpoints
type AuthController struct {
	sessions  SessionManager
	saml      *samlsp.Middleware
	devUser   *models.User
	clientURL string
}

// NewAuthController creates a new AuthController. With a nil samlMiddleware
// the controller runs in development mode and /login signs in devUser.
func NewAuthController(sessions SessionManager, samlMiddleware *samlsp.Middleware, devUser *models.User, clientURL string) *AuthController {
	c := &AuthController{
		sessions:  sessions,
		saml:      samlMiddleware,
		devUser:   devUser,
		clientURL: clientURL,
	}
	if samlMiddleware != nil {
		samlMiddleware.OnError = c.samlError
	}
	return c
}

// SAMLEnabled reports whether logins go through the identity provider
func (c *AuthController) SAMLEnabled() bool {
	return c.saml != nil
}

// Login starts a session
// @Summary Log in
// @Description Redirects to the identity provider, or straight back to the client when a session already exists. In development mode a session for the development user is created.
// @Tags auth
// @Success 302 "Redirect to the client or the identity provider"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /login [get]
func (c *AuthController) Login(ctx *gin.Context) {
	if c.saml == nil {
		if _, err := c.sessions.Create(ctx.Request.Context(), ctx.Writer, c.devUser); err != nil {
			logger.Error().Err(err).Msg("Failed to create development session")
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to create session"),
			))
			return
		}
		logger.Info().Str("eppn", c.devUser.EPPN).Msg("Development login")
		ctx.Redirect(http.StatusFound, c.clientURL)
		return
	}

	if _, err := c.sessions.Load(ctx.Request.Context(), ctx.Request); err == nil {
		ctx.Redirect(http.StatusFound, c.clientURL)
		return
	}
	c.saml.HandleStartAuthFlow(ctx.Writer, ctx.Request)
}

// Logout ends the session
// @Summary Log out
// @Description Deletes the session and redirects to the client
// @Tags auth
// @Success 302 "Redirect to the client"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.sessions.Destroy(ctx.Request.Context(), ctx.Writer, ctx.Request); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to end session"),
		))
		return
	}
	ctx.Redirect(http.StatusFound, c.clientURL)
}

// SAML serves the service provider metadata and assertion consumer endpoints
func (c *AuthController) SAML(ctx *gin.Context) {
	if c.saml == nil {
		ctx.Status(http.StatusNotFound)
		return
	}
	c.saml.ServeHTTP(ctx.Writer, ctx.Request)
}

// samlError answers a failed assertion with 401 and the unauthorized message
func (c *AuthController) samlError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Warn().Err(err).Str("path", r.URL.Path).Msg("SAML login failed")

	message, _ := apperrors.Message(session.ErrNotAuthorized)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message),
	))
}
