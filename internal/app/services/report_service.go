package services

import (
	"context"
	"fmt"
	"io"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/pkg/academic"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/seas-computing/course-planner/internal/pkg/report"
)

// ReportService defines the interface for spreadsheet exports
type ReportService interface {
	WriteCourseReport(ctx context.Context, startYear, endYear int, w io.Writer) error
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	loader *courseInstanceServiceImpl
}

// NewReportService creates a new ReportService
func NewReportService(
	semesters SemesterStore,
	courses CourseStore,
	instances CourseInstanceStore,
	clock Clock,
) ReportService {
	return &reportServiceImpl{
		loader: &courseInstanceServiceImpl{
			semesters: semesters,
			courses:   courses,
			instances: instances,
			clock:     clock,
		},
	}
}

// enrollment picks the most settled enrollment figure of an instance
func enrollment(ci *models.CourseInstance) *int {
	switch {
	case ci.ActualEnrollment != nil:
		return ci.ActualEnrollment
	case ci.StudyCardEnrollment != nil:
		return ci.StudyCardEnrollment
	default:
		return ci.PreEnrollment
	}
}

// WriteCourseReport renders every course over the academic years startYear
// to endYear as an xlsx workbook. Zero years default to the current academic year.
func (s *reportServiceImpl) WriteCourseReport(ctx context.Context, startYear, endYear int, w io.Writer) error {
	current := academic.CurrentAcademicYear(s.loader.clock.now())
	if startYear == 0 {
		startYear = current
	}
	if endYear == 0 {
		endYear = startYear
		if current > endYear {
			endYear = current
		}
	}
	if startYear > endYear {
		return apperrors.NewValidationError("startYear", "startYear must not be after endYear")
	}

	semesters, err := s.loader.semesters.ListSemesters(ctx)
	if err != nil {
		return fmt.Errorf("error getting semesters: %w", err)
	}
	selected := semestersOfYears(semesters, academic.YearRange(startYear, endYear-startYear+1))

	data, err := s.loader.load(ctx, selected, false)
	if err != nil {
		return err
	}

	labels := make([]string, len(selected))
	for i := range selected {
		labels[i] = selected[i].Label()
	}

	rows := make([]report.CourseRow, 0, len(data.courses))
	for _, c := range data.courses {
		row := report.CourseRow{
			CatalogNumber:   c.CatalogNumber(),
			Title:           c.Title,
			IsUndergraduate: c.IsUndergraduate,
			SameAs:          c.SameAs,
			Cells:           make([]report.SemesterCell, len(selected)),
		}
		if c.Area != nil {
			row.Area = c.Area.Name
		}
		for i, sem := range selected {
			ci := data.instances[instanceKey{c.ID, sem.ID}]
			if ci == nil {
				continue
			}
			cell := report.SemesterCell{Offered: string(ci.Offered), Enrollment: enrollment(ci)}
			for _, instructor := range data.instructors[ci.ID] {
				cell.Instructors = append(cell.Instructors, instructor.DisplayName)
			}
			row.Cells[i] = cell
		}
		rows = append(rows, row)
	}

	return report.WriteCourseReport(w, labels, rows)
}
