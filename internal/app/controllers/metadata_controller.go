package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/app/services"
	"github.com/seas-computing/course-planner/internal/middleware"
)

// MetadataController serves the lookup data the client loads on start
type MetadataController struct {
	semesterService services.SemesterService
}

// NewMetadataController creates a new MetadataController
func NewMetadataController(semesterService services.SemesterService) *MetadataController {
	return &MetadataController{
		semesterService: semesterService,
	}
}

// GetMetadata returns the application metadata
// @Summary Application metadata
// @Description Current academic year, area names, semesters ordered by year with spring first, and catalog prefixes
// @Tags metadata
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.APIResponse{data=dto.MetadataResponse} "Metadata retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /metadata [get]
func (c *MetadataController) GetMetadata(ctx *gin.Context) {
	metadata, err := c.semesterService.Metadata(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(metadata))
}

// GetSemesters lists semester labels
// @Summary List semesters
// @Description Returns "TERM YEAR" labels ordered by year, spring before fall
// @Tags metadata
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.APIResponse{data=[]string} "Semesters retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters [get]
func (c *MetadataController) GetSemesters(ctx *gin.Context) {
	semesters, err := c.semesterService.SemesterList(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(semesters))
}

// GetYears lists the academic years that have semesters
// @Summary List academic years
// @Description Returns the distinct academic years in ascending order
// @Tags metadata
// @Produce json
// @Security SessionCookie
// @Success 200 {object} dto.APIResponse{data=[]string} "Years retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters/years [get]
func (c *MetadataController) GetYears(ctx *gin.Context) {
	years, err := c.semesterService.YearList(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(years))
}
