package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/app/services"
	"github.com/seas-computing/course-planner/internal/middleware"
)

// ScheduleController serves the weekly schedule view
type ScheduleController struct {
	scheduleService services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService services.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// GetSchedule returns every course meeting of a semester
// @Summary Semester schedule
// @Description Lists the course meetings of one semester ordered by weekday and start time
// @Tags schedule
// @Produce json
// @Security SessionCookie
// @Param term query string true "Term" Enums(FALL,SPRING)
// @Param calendarYear query int true "Calendar year" example(2020)
// @Success 200 {object} dto.APIResponse{data=[]dto.ScheduleEntryResponse} "Schedule retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid term or year"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedule [get]
func (c *ScheduleController) GetSchedule(ctx *gin.Context) {
	var query dto.ScheduleQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	entries, err := c.scheduleService.Schedule(ctx.Request.Context(), models.Term(query.Term), query.CalendarYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(entries))
}
