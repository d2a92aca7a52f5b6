package dto

// MetadataResponse carries the lookup values the client needs on start up
type MetadataResponse struct {
	CurrentAcademicYear int      `json:"currentAcademicYear" example:"2021"`
	Areas               []string `json:"areas"`
	Semesters           []string `json:"semesters" example:"SPRING 2020,FALL 2020"`
	CatalogPrefixes     []string `json:"catalogPrefixes"`
}

// UserResponse is the authenticated user
type UserResponse struct {
	EPPN      string   `json:"eppn"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	FullName  string   `json:"fullName"`
	Groups    []string `json:"groups"`
}

// ClientLogRequest is a log line forwarded by the browser client
type ClientLogRequest struct {
	Level   string                 `json:"level" binding:"required,oneof=debug info warn error" example:"error"`
	Message string                 `json:"message" binding:"required" example:"Failed to load courses"`
	Context map[string]interface{} `json:"context"`
}

// ReportQuery selects the academic years of the course report
type ReportQuery struct {
	StartYear int `form:"startYear" binding:"omitempty,min=1900,max=2999"`
	EndYear   int `form:"endYear" binding:"omitempty,min=1900,max=2999"`
}
