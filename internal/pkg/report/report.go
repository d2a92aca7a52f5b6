// Package report renders planner data as xlsx workbooks.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the course report worksheet
const SheetName = "Courses"

// SemesterCell is one course in one semester
type SemesterCell struct {
	Offered     string
	Instructors []string
	Enrollment  *int
}

// CourseRow is one course with a cell per reported semester
type CourseRow struct {
	Area            string
	CatalogNumber   string
	Title           string
	IsUndergraduate bool
	SameAs          string
	Cells           []SemesterCell
}

var fixedHeaders = []string{"Area", "Course", "Title", "Undergraduate", "Same As"}

// CourseReport builds a workbook with one row per course. Every semester in
// semesters adds offered, instructors and enrollment columns; each row's
// Cells must follow the same order.
func CourseReport(semesters []string, rows []CourseRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, 0, len(fixedHeaders)+3*len(semesters))
	for _, h := range fixedHeaders {
		header = append(header, h)
	}
	for _, s := range semesters {
		header = append(header, s+" Offered", s+" Instructors", s+" Enrollment")
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	for i, row := range rows {
		values := make([]interface{}, 0, len(header))
		undergrad := "N"
		if row.IsUndergraduate {
			undergrad = "Y"
		}
		values = append(values, row.Area, row.CatalogNumber, row.Title, undergrad, row.SameAs)
		for j := range semesters {
			var cell SemesterCell
			if j < len(row.Cells) {
				cell = row.Cells[j]
			}
			var enrollment interface{}
			if cell.Enrollment != nil {
				enrollment = *cell.Enrollment
			}
			values = append(values, cell.Offered, strings.Join(cell.Instructors, "; "), enrollment)
		}

		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, start, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

// WriteCourseReport renders the course report into w
func WriteCourseReport(w io.Writer, semesters []string, rows []CourseRow) error {
	f, err := CourseReport(semesters, rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
