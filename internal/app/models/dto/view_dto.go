package dto

// ViewColumns are the course table columns a saved view may select
var ViewColumns = []string{
	"area", "catalogNumber", "title", "sameAs", "isUndergraduate", "isSEAS",
	"termPattern", "notes", "private",
	"fallOffered", "fallInstructors", "fallMeetings", "fallEnrollment",
	"springOffered", "springInstructors", "springMeetings", "springEnrollment",
}

// ViewRequest saves a column selection under a name
type ViewRequest struct {
	Name    string   `json:"name" binding:"required,min=1" example:"Enrollment only"`
	Columns []string `json:"columns" binding:"required,dive,viewcolumn"`
}

// ViewResponse is a saved view
type ViewResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}
