package dto

// RoomResponse describes a room and where it is
type RoomResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name" example:"Maxwell Dworkin G115"`
	Campus   string `json:"campus" example:"Cambridge"`
	Building string `json:"building" example:"Maxwell Dworkin"`
	Capacity int    `json:"capacity" example:"60"`
}

// MeetingResponse is a saved weekly meeting
type MeetingResponse struct {
	ID        string        `json:"id"`
	Day       string        `json:"day" example:"MON"`
	StartTime string        `json:"startTime" example:"10:30"`
	EndTime   string        `json:"endTime" example:"11:45"`
	Room      *RoomResponse `json:"room"`
}

// MeetingRequest is one meeting of a replacement list. An id keeps an existing meeting's identity.
type MeetingRequest struct {
	ID        string `json:"id" binding:"omitempty,uuid"`
	Day       string `json:"day" binding:"required,oneof=MON TUE WED THU FRI SAT SUN" example:"MON"`
	StartTime string `json:"startTime" binding:"required,clocktime" example:"10:30"`
	EndTime   string `json:"endTime" binding:"required,clocktime,timeafter=StartTime" example:"11:45"`
	RoomID    string `json:"roomId" binding:"omitempty,uuid"`
}

// MeetingListRequest replaces every meeting of a course instance or non-class event
type MeetingListRequest struct {
	Meetings []MeetingRequest `json:"meetings" binding:"required,dive"`
}

// RoomAvailabilityQuery selects a time slot to check rooms against
type RoomAvailabilityQuery struct {
	CalendarYear  int    `form:"calendarYear" binding:"required,min=1900,max=2999"`
	Term          string `form:"term" binding:"required,oneof=FALL SPRING"`
	Day           string `form:"day" binding:"required,oneof=MON TUE WED THU FRI SAT SUN"`
	StartTime     string `form:"startTime" binding:"required,clocktime"`
	EndTime       string `form:"endTime" binding:"required,clocktime,timeafter=StartTime"`
	ExcludeParent string `form:"excludeParent" binding:"omitempty,uuid"`
}

// RoomAvailabilityResponse is a room and the meetings already booked in the slot
type RoomAvailabilityResponse struct {
	RoomResponse
	MeetingTitles []string `json:"meetingTitles"`
}
