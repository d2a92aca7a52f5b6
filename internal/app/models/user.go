package models

import "time"

// User is the authenticated person behind a session. Users are never stored
// in Postgres; they live in the session store only.
type User struct {
	EPPN      string   `json:"eppn"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Groups    []string `json:"groups"`
}

// FullName joins the first and last name
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// IsMember reports whether the user belongs to group
func (u *User) IsMember(group string) bool {
	for _, g := range u.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// View is a saved column selection of the course table, owned by one user
type View struct {
	ID        string    `json:"id" db:"id"`
	EPPN      string    `json:"eppn" db:"eppn"`
	Name      string    `json:"name" db:"name"`
	Columns   []string  `json:"columns" db:"columns"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
