// Package academic holds the calendar rules shared by the planner: how terms map
// onto academic years and how year filters coming from clients are normalized.
//
// An academic year Y runs from FALL of calendar year Y-1 through SPRING of Y.
package academic

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Term names as stored in the database
const (
	Fall   = "FALL"
	Spring = "SPRING"
)

// academic years roll over at the start of July
const rolloverMonth = time.July

// CurrentAcademicYear returns the academic year that contains now.
func CurrentAcademicYear(now time.Time) int {
	if now.Month() >= rolloverMonth {
		return now.Year() + 1
	}
	return now.Year()
}

// AcademicYear converts a term and calendar year into an academic year.
func AcademicYear(term string, calendarYear int) int {
	if term == Fall {
		return calendarYear + 1
	}
	return calendarYear
}

// CalendarYear converts a term and academic year into a calendar year.
func CalendarYear(term string, academicYear int) int {
	if term == Fall {
		return academicYear - 1
	}
	return academicYear
}

// TermOrder sorts SPRING before FALL within a calendar year.
func TermOrder(term string) int {
	switch term {
	case Spring:
		return 1
	case Fall:
		return 2
	default:
		return 3
	}
}

// SemesterLabel renders a semester as "FALL 2019".
func SemesterLabel(term string, calendarYear int) string {
	return term + " " + strconv.Itoa(calendarYear)
}

// ParseYearList turns a comma separated list of four-digit years into a sorted,
// de-duplicated slice containing only entries present in valid. An empty raw
// value selects every valid year.
func ParseYearList(raw string, valid []int) []int {
	known := make(map[int]bool, len(valid))
	for _, y := range valid {
		known[y] = true
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		all := make([]int, 0, len(known))
		for y := range known {
			all = append(all, y)
		}
		sort.Ints(all)
		return all
	}

	seen := make(map[int]bool)
	years := []int{}
	for _, part := range strings.Split(raw, ",") {
		year, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || !known[year] || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// YearRange returns count consecutive years starting at start.
func YearRange(start, count int) []int {
	if count <= 0 {
		return []int{}
	}
	years := make([]int, count)
	for i := range years {
		years[i] = start + i
	}
	return years
}
