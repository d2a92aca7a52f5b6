package dto

// NonClassEventBlock is a non-class parent in one semester
type NonClassEventBlock struct {
	ID           string            `json:"id"`
	CalendarYear int               `json:"calendarYear" example:"2019"`
	Private      bool              `json:"private"`
	Meetings     []MeetingResponse `json:"meetings"`
}

// NonClassParentResponse is a non-class activity with its area
type NonClassParentResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title" example:"Reading group"`
	ContactName  string   `json:"contactName"`
	ContactEmail string   `json:"contactEmail"`
	ContactPhone string   `json:"contactPhone"`
	Notes        string   `json:"notes"`
	ExpectedSize *int     `json:"expectedSize"`
	Area         AreaData `json:"area"`
	CourseID     *string  `json:"courseId"`
}

// NonClassYearResponse is a non-class parent in one academic year
type NonClassYearResponse struct {
	NonClassParentResponse
	AcademicYear int                `json:"academicYear" example:"2020"`
	Fall         NonClassEventBlock `json:"fall"`
	Spring       NonClassEventBlock `json:"spring"`
}

// NonClassParentRequest creates a non-class parent. Area is an area id.
type NonClassParentRequest struct {
	Area         string `json:"area" binding:"required,uuid"`
	Title        string `json:"title" binding:"required,notblank" example:"Reading group"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
	ExpectedSize *int   `json:"expectedSize" binding:"omitempty,min=0"`
	CourseID     string `json:"courseId" binding:"omitempty,uuid"`
}
