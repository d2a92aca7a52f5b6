package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/middleware"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// LogController forwards browser log entries to the server log
type LogController struct{}

// NewLogController creates a new LogController
func NewLogController() *LogController {
	return &LogController{}
}

// CreateLog records a client log entry
// @Summary Client log
// @Description Writes a log entry sent by the browser client to the server log
// @Tags log
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body dto.ClientLogRequest true "Log entry"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Log entry recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid log entry"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Router /log [post]
func (c *LogController) CreateLog(ctx *gin.Context) {
	var req dto.ClientLogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	event := logger.WithLevel(logger.ParseLevel(req.Level)).Str("source", "client")
	if user, ok := middleware.CurrentUser(ctx); ok {
		event = event.Str("eppn", user.EPPN)
	}
	if len(req.Context) > 0 {
		event = event.Fields(req.Context)
	}
	event.Msg(req.Message)

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Logged"}))
}
