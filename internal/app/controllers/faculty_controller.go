package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/app/services"
	"github.com/seas-computing/course-planner/internal/middleware"
	"github.com/seas-computing/course-planner/internal/pkg/helpers"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// GetAllFaculty retrieves all faculty members
// @Summary List faculty
// @Description Retrieves every faculty member with their area
// @Tags faculty
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.APIResponse{data=[]dto.FacultyResponse} "Faculty retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty [get]
func (c *FacultyController) GetAllFaculty(ctx *gin.Context) {
	faculty, err := c.facultyService.ListFaculty(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculty))
}

// CreateFaculty handles faculty creation
// @Summary Create a faculty member
// @Description Creates a faculty member and a PRESENT absence record for every semester
// @Tags faculty
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.FacultyRequest true "Faculty information"
// @Success 201 {object} dto.APIResponse{data=dto.FacultyResponse} "Faculty created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown area"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User is not an administrator"
// @Failure 409 {object} dto.ErrorResponse "HUID already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.FacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	faculty, err := c.facultyService.CreateFaculty(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(faculty))
}

// UpdateFaculty updates an existing faculty member
// @Summary Update a faculty member
// @Description Replaces the editable fields of a faculty member
// @Tags faculty
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Faculty ID" Format(uuid)
// @Param request body dto.FacultyRequest true "Updated faculty information"
// @Success 200 {object} dto.APIResponse{data=dto.FacultyResponse} "Faculty updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown area"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 409 {object} dto.ErrorResponse "HUID already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.FacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	faculty, err := c.facultyService.UpdateFaculty(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculty))
}

// GetInstructors lists faculty for instructor pickers
// @Summary List instructors
// @Description Returns every faculty member as id and display name, sorted by display name
// @Tags faculty
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorResponse} "Instructors retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/instructors [get]
func (c *FacultyController) GetInstructors(ctx *gin.Context) {
	instructors, err := c.facultyService.ListInstructors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(instructors))
}

// GetSchedule returns teaching and absences per academic year
// @Summary Faculty schedule
// @Description Groups each faculty member's courses and absence by academic year. Defaults to the current academic year.
// @Tags faculty
// @Produce json
// @Security SessionCookie
// @Param acadYears query string false "Comma separated academic years" example(2020,2021)
// @Success 200 {object} dto.APIResponse{data=map[string][]dto.FacultyScheduleResponse} "Schedule retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User is not an administrator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/schedule [get]
func (c *FacultyController) GetSchedule(ctx *gin.Context) {
	schedule, err := c.facultyService.Schedule(ctx.Request.Context(), ctx.Query("acadYears"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schedule))
}

// UpdateAbsence changes the type of an absence record
// @Summary Update an absence
// @Description Sets the absence type of one faculty member for one semester
// @Tags faculty
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Absence ID" Format(uuid)
// @Param request body dto.AbsenceRequest true "Absence type"
// @Success 200 {object} dto.APIResponse{data=dto.AbsenceResponse} "Absence updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Absence not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/absence/{id} [put]
func (c *FacultyController) UpdateAbsence(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.AbsenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	absence, err := c.facultyService.UpdateAbsence(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(absence))
}
