package models

import "time"

// Area groups courses and faculty by discipline
type Area struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Course is an entry of the course catalog.
type Course struct {
	ID              string       `json:"id" db:"id"`
	Title           string       `json:"title" db:"title"`
	Prefix          string       `json:"prefix" db:"prefix"`
	Number          string       `json:"number" db:"number"`
	IsUndergraduate bool         `json:"isUndergraduate" db:"is_undergraduate"`
	Notes           string       `json:"notes" db:"notes"`
	Private         bool         `json:"private" db:"private"`
	SameAs          string       `json:"sameAs" db:"same_as"`
	IsSEAS          IsSEAS       `json:"isSEAS" db:"is_seas"`
	TermPattern     *TermPattern `json:"termPattern" db:"term_pattern"` // Nullable
	AreaID          string       `json:"areaId" db:"area_id"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Area *Area `json:"area,omitempty"`
}

// CatalogNumber joins prefix and number, e.g. "CS 50".
func (c *Course) CatalogNumber() string {
	return c.Prefix + " " + c.Number
}

// CourseInstance is a course in one semester.
type CourseInstance struct {
	ID                  string  `json:"id" db:"id"`
	CourseID            string  `json:"courseId" db:"course_id"`
	SemesterID          string  `json:"semesterId" db:"semester_id"`
	Offered             Offered `json:"offered" db:"offered"`
	PreEnrollment       *int    `json:"preEnrollment" db:"pre_enrollment"`
	StudyCardEnrollment *int    `json:"studyCardEnrollment" db:"study_card_enrollment"`
	ActualEnrollment    *int    `json:"actualEnrollment" db:"actual_enrollment"`

	Semester *Semester `json:"semester,omitempty"`
}

// InstructorAssignment is one ordered entry of a course instance's teaching staff.
type InstructorAssignment struct {
	CourseInstanceID string `db:"course_instance_id"`
	FacultyID        string `db:"faculty_id"`
	FirstName        string `db:"first_name"`
	LastName         string `db:"last_name"`
	InstructorOrder  int    `db:"instructor_order"`
}
