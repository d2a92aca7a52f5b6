package models

// Campus groups buildings
type Campus struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Building belongs to a campus
type Building struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	CampusID string `json:"campusId" db:"campus_id"`
}

// Room is a bookable space, flattened with its building and campus names
type Room struct {
	ID         string `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Capacity   int    `json:"capacity" db:"capacity"`
	BuildingID string `json:"buildingId" db:"building_id"`
	Building   string `json:"building" db:"building_name"`
	Campus     string `json:"campus" db:"campus_name"`
}

// DisplayName renders "Building Room"
func (r *Room) DisplayName() string {
	if r.Building == "" {
		return r.Name
	}
	return r.Building + " " + r.Name
}
