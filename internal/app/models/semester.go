package models

import "github.com/seas-computing/course-planner/internal/pkg/academic"

// Semester is a term of a calendar year
type Semester struct {
	ID           string `json:"id" db:"id"`
	Term         Term   `json:"term" db:"term"`
	CalendarYear int    `json:"calendarYear" db:"calendar_year"`
}

// AcademicYear returns the academic year the semester belongs to
func (s *Semester) AcademicYear() int {
	return academic.AcademicYear(string(s.Term), s.CalendarYear)
}

// Label renders the semester as "FALL 2019"
func (s *Semester) Label() string {
	return academic.SemesterLabel(string(s.Term), s.CalendarYear)
}

// Before orders semesters chronologically: by calendar year, then SPRING before FALL.
func (s *Semester) Before(other *Semester) bool {
	if s.CalendarYear != other.CalendarYear {
		return s.CalendarYear < other.CalendarYear
	}
	return academic.TermOrder(string(s.Term)) < academic.TermOrder(string(other.Term))
}
