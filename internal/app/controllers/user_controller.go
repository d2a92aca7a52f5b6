package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/middleware"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
)

// UserController handles user-related operations
type UserController struct{}

// NewUserController creates a new user controller
func NewUserController() *UserController {
	return &UserController{}
}

// mapUserToResponse converts a session user to the response DTO
func mapUserToResponse(user *models.User) dto.UserResponse {
	groups := user.Groups
	if groups == nil {
		groups = []string{}
	}
	return dto.UserResponse{
		EPPN:      user.EPPN,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		FullName:  user.FullName(),
		Groups:    groups,
	}
}

// GetCurrentUser returns the signed in user
// @Summary Get current user
// @Description Returns the user stored in the request's session
// @Tags users
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Router /users/current [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(mapUserToResponse(user)))
}
