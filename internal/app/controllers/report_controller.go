package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/app/services"
	"github.com/seas-computing/course-planner/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController serves spreadsheet downloads
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// GetCoursesReport downloads the course planning workbook
// @Summary Course report
// @Description Builds an xlsx workbook with one row per course and offered, instructors and enrollment columns for every semester in the range. Both years default to the current academic year.
// @Tags report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security SessionCookie
// @Param startYear query int false "First academic year" example(2020)
// @Param endYear query int false "Last academic year" example(2022)
// @Success 200 {file} file "Workbook"
// @Failure 400 {object} dto.ErrorResponse "startYear is after endYear"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - No valid session"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /report/courses [get]
func (c *ReportController) GetCoursesReport(ctx *gin.Context) {
	var query dto.ReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	// The workbook is buffered so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := c.reportService.WriteCourseReport(ctx.Request.Context(), query.StartYear, query.EndYear, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, reportFileName(query)))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func reportFileName(query dto.ReportQuery) string {
	switch {
	case query.StartYear != 0 && query.EndYear != 0:
		return fmt.Sprintf("courses_%d-%d.xlsx", query.StartYear, query.EndYear)
	case query.StartYear != 0:
		return fmt.Sprintf("courses_%d.xlsx", query.StartYear)
	default:
		return "courses.xlsx"
	}
}
