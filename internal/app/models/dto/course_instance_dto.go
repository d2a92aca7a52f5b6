package dto

// InstructorData is one entry of an ordered instructor list
type InstructorData struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName" example:"Malan, David"`
	InstructorOrder int    `json:"instructorOrder" example:"0"`
}

// InstanceBlock is the per-semester half of a course row
type InstanceBlock struct {
	ID                  string            `json:"id"`
	CalendarYear        int               `json:"calendarYear" example:"2019"`
	Offered             string            `json:"offered" example:"Y" enums:"Y,N,RETIRED,"`
	PreEnrollment       *int              `json:"preEnrollment"`
	StudyCardEnrollment *int              `json:"studyCardEnrollment"`
	ActualEnrollment    *int              `json:"actualEnrollment"`
	Instructors         []InstructorData  `json:"instructors"`
	Meetings            []MeetingResponse `json:"meetings"`
}

// CourseInstanceResponse is a course in one academic year with its fall and spring instances
type CourseInstanceResponse struct {
	ID              string        `json:"id"`
	AcademicYear    int           `json:"academicYear" example:"2020"`
	Title           string        `json:"title"`
	CatalogNumber   string        `json:"catalogNumber" example:"CS 050"`
	Area            string        `json:"area" example:"CS"`
	IsUndergraduate bool          `json:"isUndergraduate"`
	IsSEAS          string        `json:"isSEAS"`
	SameAs          string        `json:"sameAs"`
	Notes           string        `json:"notes"`
	TermPattern     *string       `json:"termPattern"`
	Private         bool          `json:"private"`
	Fall            InstanceBlock `json:"fall"`
	Spring          InstanceBlock `json:"spring"`
}

// MultiYearPlanInstance is a course instance and its ordered faculty
type MultiYearPlanInstance struct {
	ID      string           `json:"id"`
	Faculty []InstructorData `json:"faculty"`
}

// MultiYearPlanSemester is one semester of a course's multi-year plan
type MultiYearPlanSemester struct {
	ID           string                `json:"id"`
	AcademicYear int                   `json:"academicYear" example:"2021"`
	CalendarYear int                   `json:"calendarYear" example:"2020"`
	Term         string                `json:"term" example:"FALL"`
	Instance     MultiYearPlanInstance `json:"instance"`
}

// MultiYearPlanResponse lists a course's semesters across a span of academic years
type MultiYearPlanResponse struct {
	ID            string                  `json:"id"`
	Area          string                  `json:"area"`
	CatalogNumber string                  `json:"catalogNumber"`
	Title         string                  `json:"title"`
	Semesters     []MultiYearPlanSemester `json:"semesters"`
}

// UpdateCourseInstanceRequest edits offered status and enrollment figures
type UpdateCourseInstanceRequest struct {
	Offered             string `json:"offered" binding:"omitempty,oneof=Y N RETIRED" example:"Y"`
	PreEnrollment       *int   `json:"preEnrollment" binding:"omitempty,min=0"`
	StudyCardEnrollment *int   `json:"studyCardEnrollment" binding:"omitempty,min=0"`
	ActualEnrollment    *int   `json:"actualEnrollment" binding:"omitempty,min=0"`
}

// InstructorListRequest replaces the ordered instructors of a course instance
type InstructorListRequest struct {
	Instructors []string `json:"instructors" binding:"required,dive,uuid"`
}
