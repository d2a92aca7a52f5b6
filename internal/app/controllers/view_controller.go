package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/app/services"
	"github.com/seas-computing/course-planner/internal/middleware"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/seas-computing/course-planner/internal/pkg/helpers"
)

// ViewController manages the saved column views of the current user
type ViewController struct {
	viewService services.ViewService
}

// NewViewController creates a new ViewController
func NewViewController(viewService services.ViewService) *ViewController {
	return &ViewController{
		viewService: viewService,
	}
}

// currentEPPN returns the eppn of the session user. Routes are mounted behind
// RequireAuth so a missing user means the middleware chain is misconfigured.
func currentEPPN(ctx *gin.Context) (string, bool) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return "", false
	}
	return user.EPPN, true
}

// GetViews lists the current user's views
// @Summary List saved views
// @Description Returns the column views saved by the current user
// @Tags views
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.APIResponse{data=[]dto.ViewResponse} "Views retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /view [get]
func (c *ViewController) GetViews(ctx *gin.Context) {
	eppn, ok := currentEPPN(ctx)
	if !ok {
		return
	}

	views, err := c.viewService.ListViews(ctx.Request.Context(), eppn)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(views))
}

// CreateView saves a column view
// @Summary Save a view
// @Description Stores a named column selection for the current user
// @Tags views
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.ViewRequest true "View"
// @Success 201 {object} dto.APIResponse{data=dto.ViewResponse} "View created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid name or unknown column"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /view [post]
func (c *ViewController) CreateView(ctx *gin.Context) {
	eppn, ok := currentEPPN(ctx)
	if !ok {
		return
	}

	var req dto.ViewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	view, err := c.viewService.CreateView(ctx.Request.Context(), eppn, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(view))
}

// DeleteView removes one of the current user's views
// @Summary Delete a view
// @Description Deletes a view owned by the current user
// @Tags views
// @Produce json
// @Security SessionCookie
// @Param id path string true "View ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "View deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid view ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 404 {object} dto.ErrorResponse "View not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /view/{id} [delete]
func (c *ViewController) DeleteView(ctx *gin.Context) {
	eppn, ok := currentEPPN(ctx)
	if !ok {
		return
	}

	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.viewService.DeleteView(ctx.Request.Context(), eppn, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "View deleted"}))
}
