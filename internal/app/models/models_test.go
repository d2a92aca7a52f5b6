package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Malan, David", DisplayName("David", "Malan"))
	assert.Equal(t, "Malan", DisplayName("", "Malan"))
	assert.Equal(t, "David", DisplayName(" David ", ""))
	assert.Equal(t, "", DisplayName("", ""))
}

func TestSemesterOrdering(t *testing.T) {
	fall19 := &Semester{Term: TermFall, CalendarYear: 2019}
	spring20 := &Semester{Term: TermSpring, CalendarYear: 2020}
	fall20 := &Semester{Term: TermFall, CalendarYear: 2020}

	assert.True(t, fall19.Before(spring20))
	assert.True(t, spring20.Before(fall20))
	assert.False(t, fall20.Before(spring20))

	assert.Equal(t, 2020, fall19.AcademicYear())
	assert.Equal(t, 2020, spring20.AcademicYear())
	assert.Equal(t, "FALL 2019", fall19.Label())
}

func TestDayOrder(t *testing.T) {
	assert.Equal(t, 1, DayMonday.Order())
	assert.Equal(t, 7, DaySunday.Order())
	assert.Greater(t, Day("XYZ").Order(), DaySunday.Order())
}

func TestCourseCatalogNumber(t *testing.T) {
	c := &Course{Prefix: "CS", Number: "050"}
	assert.Equal(t, "CS 050", c.CatalogNumber())
}

func TestUserMembership(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Lovelace", Groups: []string{"staff", "admin"}}
	assert.True(t, u.IsMember("admin"))
	assert.False(t, u.IsMember("root"))
	assert.Equal(t, "Ada Lovelace", u.FullName())
}
