package dto

// ClockTime is a time of day split into fields
type ClockTime struct {
	Hour   int `json:"hour" example:"10"`
	Minute int `json:"minute" example:"30"`
}

// ScheduleLocation is where a scheduled meeting takes place
type ScheduleLocation struct {
	Campus   string `json:"campus"`
	Building string `json:"building"`
	Room     string `json:"room"`
}

// ScheduleCourseData identifies the course of a scheduled meeting
type ScheduleCourseData struct {
	Area   string `json:"area"`
	Prefix string `json:"prefix"`
	Number string `json:"number"`
}

// ScheduleEntryResponse is one meeting of the weekly schedule view
type ScheduleEntryResponse struct {
	ID       string             `json:"id"`
	Begin    ClockTime          `json:"begin"`
	End      ClockTime          `json:"end"`
	Weekday  string             `json:"weekday" example:"MON"`
	Location *ScheduleLocation  `json:"location"`
	Course   ScheduleCourseData `json:"course"`
}

// ScheduleQuery selects the semester of the schedule view
type ScheduleQuery struct {
	Term         string `form:"term" binding:"required,oneof=FALL SPRING"`
	CalendarYear int    `form:"calendarYear" binding:"required,min=1900,max=2999"`
}
