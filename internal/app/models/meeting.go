package models

// Meeting is a weekly slot of a course instance or non-class event.
// StartTime and EndTime are "HH:MM" strings.
type Meeting struct {
	ID               string  `json:"id" db:"id"`
	Day              Day     `json:"day" db:"day"`
	StartTime        string  `json:"startTime" db:"start_time"`
	EndTime          string  `json:"endTime" db:"end_time"`
	RoomID           *string `json:"roomId" db:"room_id"`
	CourseInstanceID *string `json:"courseInstanceId" db:"course_instance_id"`
	NonClassEventID  *string `json:"nonClassEventId" db:"non_class_event_id"`

	Room *Room `json:"room,omitempty"`
}

// MeetingParentKind tells which kind of record owns a list of meetings
type MeetingParentKind string

// Meeting parent kinds
const (
	MeetingParentCourseInstance MeetingParentKind = "COURSE_INSTANCE"
	MeetingParentNonClassEvent  MeetingParentKind = "NON_CLASS_EVENT"
)

// RoomBooking is a meeting occupying a room, with the title of what booked it
type RoomBooking struct {
	MeetingID string `db:"meeting_id"`
	RoomID    string `db:"room_id"`
	ParentID  string `db:"parent_id"`
	Title     string `db:"title"`
}

// ScheduledMeeting is a course meeting flattened for the weekly schedule view
type ScheduledMeeting struct {
	ID        string `db:"id"`
	Day       Day    `db:"day"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	Campus    string `db:"campus"`
	Building  string `db:"building"`
	Room      string `db:"room"`
	Area      string `db:"area"`
	Prefix    string `db:"prefix"`
	Number    string `db:"number"`
}
