package models

// NonClassParent is a recurring activity that is not a course, such as a
// reading group, which can still book rooms in each semester.
type NonClassParent struct {
	ID           string  `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	ContactName  string  `json:"contactName" db:"contact_name"`
	ContactEmail string  `json:"contactEmail" db:"contact_email"`
	ContactPhone string  `json:"contactPhone" db:"contact_phone"`
	Notes        string  `json:"notes" db:"notes"`
	ExpectedSize *int    `json:"expectedSize" db:"expected_size"`
	AreaID       string  `json:"areaId" db:"area_id"`
	CourseID     *string `json:"courseId" db:"course_id"`

	Area *Area `json:"area,omitempty"`
}

// NonClassEvent is a non-class parent in one semester
type NonClassEvent struct {
	ID               string `json:"id" db:"id"`
	NonClassParentID string `json:"nonClassParentId" db:"non_class_parent_id"`
	SemesterID       string `json:"semesterId" db:"semester_id"`
	Private          bool   `json:"private" db:"private"`

	Semester *Semester `json:"semester,omitempty"`
}
