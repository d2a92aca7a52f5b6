package dto

// CourseResponse is a catalog entry with its area
type CourseResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title" example:"Introduction to Computer Science"`
	Prefix          string   `json:"prefix" example:"CS"`
	Number          string   `json:"number" example:"050"`
	CatalogNumber   string   `json:"catalogNumber" example:"CS 050"`
	IsUndergraduate bool     `json:"isUndergraduate"`
	Notes           string   `json:"notes"`
	Private         bool     `json:"private"`
	SameAs          string   `json:"sameAs"`
	IsSEAS          string   `json:"isSEAS" example:"Y" enums:"Y,N,EPS"`
	TermPattern     *string  `json:"termPattern" example:"BOTH" enums:"FALL,SPRING,BOTH"`
	Area            AreaData `json:"area"`
}

// CourseRequest is the body of course creation and update. Area is an area
// name; unknown names create a new area.
type CourseRequest struct {
	Area            string `json:"area" binding:"required,notblank" example:"CS"`
	Prefix          string `json:"prefix" binding:"required,notblank" example:"CS"`
	Number          string `json:"number" binding:"required,notblank" example:"050"`
	Title           string `json:"title" binding:"required,notblank" example:"Introduction to Computer Science"`
	IsUndergraduate bool   `json:"isUndergraduate"`
	Notes           string `json:"notes"`
	Private         bool   `json:"private"`
	SameAs          string `json:"sameAs"`
	IsSEAS          string `json:"isSEAS" binding:"required,oneof=Y N EPS" example:"Y"`
	TermPattern     string `json:"termPattern" binding:"omitempty,oneof=FALL SPRING BOTH" example:"BOTH"`
}
