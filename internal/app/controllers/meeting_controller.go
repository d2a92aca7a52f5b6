package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/app/services"
	"github.com/seas-computing/course-planner/internal/middleware"
	"github.com/seas-computing/course-planner/internal/pkg/helpers"
)

// MeetingController handles meetings and rooms
type MeetingController struct {
	meetingService services.MeetingService
}

// NewMeetingController creates a new MeetingController
func NewMeetingController(meetingService services.MeetingService) *MeetingController {
	return &MeetingController{
		meetingService: meetingService,
	}
}

// ReplaceMeetings sets the meetings of a course instance or non-class event
// @Summary Replace meetings
// @Description Replaces every meeting of the parent. Meetings with an id are updated, the rest are created and meetings missing from the list are removed.
// @Tags meetings
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param parentId path string true "Course instance or non-class event ID" Format(uuid)
// @Param request body dto.MeetingListRequest true "Meetings"
// @Success 200 {object} dto.APIResponse{data=[]dto.MeetingResponse} "Meetings saved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid meetings or unknown room"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User is not an administrator"
// @Failure 404 {object} dto.ErrorResponse "Parent not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /meetings/{parentId} [put]
func (c *MeetingController) ReplaceMeetings(ctx *gin.Context) {
	parentID, err := helpers.ParseIDParam(ctx, "parentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.MeetingListRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	meetings, err := c.meetingService.ReplaceMeetings(ctx.Request.Context(), parentID, req.Meetings)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(meetings))
}

// GetRooms lists rooms
// @Summary List rooms
// @Description Retrieves every room with its building and campus
// @Tags rooms
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.APIResponse{data=[]dto.RoomResponse} "Rooms retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rooms [get]
func (c *MeetingController) GetRooms(ctx *gin.Context) {
	rooms, err := c.meetingService.ListRooms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rooms))
}

// GetRoomAvailability lists rooms with the meetings booked in a time slot
// @Summary Room availability
// @Description Returns every room along with the titles of meetings that overlap the requested slot
// @Tags rooms
// @Produce json
// @Security SessionCookie
// @Param calendarYear query int true "Calendar year" example(2020)
// @Param term query string true "Term" Enums(FALL,SPRING)
// @Param day query string true "Day" Enums(MON,TUE,WED,THU,FRI,SAT,SUN)
// @Param startTime query string true "Start time" example(10:30)
// @Param endTime query string true "End time" example(11:45)
// @Param excludeParent query string false "Parent whose own meetings are ignored" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]dto.RoomAvailabilityResponse} "Availability retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rooms/availability [get]
func (c *MeetingController) GetRoomAvailability(ctx *gin.Context) {
	var query dto.RoomAvailabilityQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	rooms, err := c.meetingService.RoomAvailability(ctx.Request.Context(), &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rooms))
}
