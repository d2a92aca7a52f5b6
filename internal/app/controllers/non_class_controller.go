package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/app/services"
	"github.com/seas-computing/course-planner/internal/middleware"
)

// NonClassController handles non-class events
type NonClassController struct {
	nonClassService services.NonClassService
}

// NewNonClassController creates a new NonClassController
func NewNonClassController(nonClassService services.NonClassService) *NonClassController {
	return &NonClassController{
		nonClassService: nonClassService,
	}
}

// GetNonClassEvents lists non-class events by academic year
// @Summary List non-class events
// @Description Groups non-class parents with their fall and spring events by academic year. Defaults to the current academic year.
// @Tags non-class-events
// @Produce json
// @Security SessionCookie
// @Param acadYear query string false "Comma separated academic years" example(2021)
// @Success 200 {object} dto.APIResponse{data=map[string][]dto.NonClassYearResponse} "Events retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /non-class-events [get]
func (c *NonClassController) GetNonClassEvents(ctx *gin.Context) {
	events, err := c.nonClassService.ListByAcademicYears(ctx.Request.Context(), ctx.Query("acadYear"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(events))
}

// CreateNonClassParent creates a non-class parent
// @Summary Create a non-class parent
// @Description Creates a non-class parent and an event for every semester
// @Tags non-class-events
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.NonClassParentRequest true "Parent information"
// @Success 201 {object} dto.APIResponse{data=dto.NonClassParentResponse} "Parent created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown area"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User is not an administrator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /non-class-events [post]
func (c *NonClassController) CreateNonClassParent(ctx *gin.Context) {
	var req dto.NonClassParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	parent, err := c.nonClassService.CreateParent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(parent))
}
