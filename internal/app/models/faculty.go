package models

import "strings"

// Faculty represents a member of the teaching staff
type Faculty struct {
	ID        string          `json:"id" db:"id"`
	HUID      string          `json:"HUID" db:"huid"`
	FirstName string          `json:"firstName" db:"first_name"`
	LastName  string          `json:"lastName" db:"last_name"`
	Category  FacultyCategory `json:"category" db:"category"`
	AreaID    *string         `json:"areaId" db:"area_id"`
	JointWith string          `json:"jointWith" db:"joint_with"`
	Notes     string          `json:"notes" db:"notes"`

	Area *Area `json:"area,omitempty"`
}

// DisplayName renders "Last, First", or whichever part is present.
func DisplayName(firstName, lastName string) string {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	switch {
	case first != "" && last != "":
		return last + ", " + first
	case last != "":
		return last
	default:
		return first
	}
}

// DisplayName of the faculty member
func (f *Faculty) DisplayName() string {
	return DisplayName(f.FirstName, f.LastName)
}

// Absence records a faculty member's leave status in a semester
type Absence struct {
	ID         string      `json:"id" db:"id"`
	FacultyID  string      `json:"facultyId" db:"faculty_id"`
	SemesterID string      `json:"semesterId" db:"semester_id"`
	Type       AbsenceType `json:"type" db:"type"`
}
