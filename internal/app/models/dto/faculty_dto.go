package dto

// FacultyResponse represents a faculty member with their area
type FacultyResponse struct {
	ID        string    `json:"id"`
	HUID      string    `json:"HUID" example:"12345678"`
	FirstName string    `json:"firstName" example:"David"`
	LastName  string    `json:"lastName" example:"Malan"`
	Category  string    `json:"category" example:"LADDER" enums:"LADDER,NON_LADDER,NON_SEAS_LADDER"`
	Area      *AreaData `json:"area"`
	JointWith string    `json:"jointWith"`
	Notes     string    `json:"notes"`
}

// FacultyRequest is the body of faculty creation and update. Area is an area id.
type FacultyRequest struct {
	HUID      string `json:"HUID" binding:"required,notblank" example:"12345678"`
	FirstName string `json:"firstName" example:"David"`
	LastName  string `json:"lastName" example:"Malan"`
	Category  string `json:"category" binding:"required,oneof=LADDER NON_LADDER NON_SEAS_LADDER" example:"LADDER"`
	Area      string `json:"area" binding:"required,uuid"`
	JointWith string `json:"jointWith"`
	Notes     string `json:"notes"`
}

// InstructorResponse is a faculty member as offered in instructor pickers
type InstructorResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName" example:"Malan, David"`
}

// AbsenceData is the absence of one faculty member in one semester
type AbsenceData struct {
	ID   string `json:"id"`
	Type string `json:"type" example:"PRESENT"`
}

// ScheduleCourse is a course taught by a faculty member in a semester
type ScheduleCourse struct {
	ID            string `json:"id"`
	CatalogNumber string `json:"catalogNumber" example:"CS 050"`
}

// FacultySemesterBlock is a faculty member's status and teaching load in a semester
type FacultySemesterBlock struct {
	Term         string           `json:"term" example:"FALL"`
	CalendarYear int              `json:"calendarYear" example:"2019"`
	Absence      *AbsenceData     `json:"absence"`
	Courses      []ScheduleCourse `json:"courses"`
}

// FacultyScheduleResponse is one faculty member's academic year
type FacultyScheduleResponse struct {
	ID           string               `json:"id"`
	FirstName    string               `json:"firstName"`
	LastName     string               `json:"lastName"`
	Category     string               `json:"category"`
	Area         string               `json:"area"`
	JointWith    string               `json:"jointWith"`
	AcademicYear int                  `json:"academicYear" example:"2020"`
	Fall         FacultySemesterBlock `json:"fall"`
	Spring       FacultySemesterBlock `json:"spring"`
}

// AbsenceRequest changes the type of an absence
type AbsenceRequest struct {
	Type string `json:"type" binding:"required,oneof=SABBATICAL SABBATICAL_ELIGIBLE SABBATICAL_INELIGIBLE TEACHING_RELIEF RESEARCH_LEAVE PARENTAL_LEAVE NO_LONGER_ACTIVE PRESENT" example:"SABBATICAL"`
}

// AbsenceResponse is an updated absence
type AbsenceResponse struct {
	ID        string `json:"id"`
	FacultyID string `json:"facultyId"`
	Type      string `json:"type"`
}
