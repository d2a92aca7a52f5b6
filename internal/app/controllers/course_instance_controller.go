package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/app/services"
	"github.com/seas-computing/course-planner/internal/middleware"
	"github.com/seas-computing/course-planner/internal/pkg/helpers"
)

// CourseInstanceController handles per-semester course planning
type CourseInstanceController struct {
	instanceService services.CourseInstanceService
}

// NewCourseInstanceController creates a new CourseInstanceController
func NewCourseInstanceController(instanceService services.CourseInstanceService) *CourseInstanceController {
	return &CourseInstanceController{
		instanceService: instanceService,
	}
}

// GetCourseInstances lists courses per academic year
// @Summary List course instances by academic year
// @Description Returns one list per requested academic year; each course carries its fall and spring instance with instructors and meetings. Unknown years are ignored and an empty list selects every year.
// @Tags course-instances
// @Produce json
// @Security SessionCookie
// @Param acadYear query string false "Comma separated academic years" example(2020,2021)
// @Success 200 {object} dto.APIResponse{data=[][]dto.CourseInstanceResponse} "Course instances retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /course-instances [get]
func (c *CourseInstanceController) GetCourseInstances(ctx *gin.Context) {
	years, err := c.instanceService.ListByAcademicYears(ctx.Request.Context(), ctx.Query("acadYear"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(years))
}

// GetMultiYearPlan returns the multi-year plan
// @Summary Multi-year plan
// @Description Lists each course's semesters and faculty over numYears academic years starting at the current one
// @Tags course-instances
// @Produce json
// @Security SessionCookie
// @Param numYears query int false "Number of academic years" minimum(1) maximum(10) default(4)
// @Success 200 {object} dto.APIResponse{data=[]dto.MultiYearPlanResponse} "Plan retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid numYears"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /course-instances/multi-year-plan [get]
func (c *CourseInstanceController) GetMultiYearPlan(ctx *gin.Context) {
	numYears, err := helpers.ParseIntQuery(ctx, "numYears", services.DefaultPlanYears)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	plan, err := c.instanceService.MultiYearPlan(ctx.Request.Context(), numYears)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(plan))
}

// UpdateCourseInstance edits offered status and enrollment
// @Summary Update a course instance
// @Description Stores the offered status and enrollment figures of a course instance
// @Tags course-instances
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Course instance ID" Format(uuid)
// @Param request body dto.UpdateCourseInstanceRequest true "Instance fields"
// @Success 200 {object} dto.APIResponse{data=dto.InstanceBlock} "Course instance updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Course instance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /course-instances/{id} [put]
func (c *CourseInstanceController) UpdateCourseInstance(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateCourseInstanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	block, err := c.instanceService.UpdateInstance(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(block))
}

// UpdateInstructors replaces the instructors of a course instance
// @Summary Replace instructors
// @Description Sets the ordered instructor list of a course instance. Every id must be an existing faculty member listed once.
// @Tags course-instances
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Course instance ID" Format(uuid)
// @Param request body dto.InstructorListRequest true "Ordered faculty ids"
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorData} "Instructors updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid or duplicate instructors"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Course instance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /course-instances/{id}/instructors [put]
func (c *CourseInstanceController) UpdateInstructors(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.InstructorListRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	instructors, err := c.instanceService.ReplaceInstructors(ctx.Request.Context(), id, req.Instructors)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(instructors))
}
