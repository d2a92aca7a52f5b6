package models

// Term represents a semester term
type Term string

// Term constants
const (
	TermFall   Term = "FALL"
	TermSpring Term = "SPRING"
)

// Valid reports whether t is a known term
func (t Term) Valid() bool {
	return t == TermFall || t == TermSpring
}

// Day is a weekday on which a meeting takes place
type Day string

// Day constants
const (
	DayMonday    Day = "MON"
	DayTuesday   Day = "TUE"
	DayWednesday Day = "WED"
	DayThursday  Day = "THU"
	DayFriday    Day = "FRI"
	DaySaturday  Day = "SAT"
	DaySunday    Day = "SUN"
)

// Days lists the weekdays in calendar order
var Days = []Day{DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday, DaySunday}

// Order returns the position of d within the week, starting at 1 for Monday.
// Unknown days sort last.
func (d Day) Order() int {
	for i, day := range Days {
		if day == d {
			return i + 1
		}
	}
	return len(Days) + 1
}

// Offered records whether a course instance is offered in a semester
type Offered string

// Offered constants. The blank value means not yet decided.
const (
	OfferedYes     Offered = "Y"
	OfferedNo      Offered = "N"
	OfferedRetired Offered = "RETIRED"
	OfferedBlank   Offered = ""
)

// IsSEAS marks whether a course belongs to the school
type IsSEAS string

// IsSEAS constants
const (
	IsSEASYes IsSEAS = "Y"
	IsSEASNo  IsSEAS = "N"
	IsSEASEPS IsSEAS = "EPS"
)

// TermPattern is the semesters in which a course is usually taught
type TermPattern string

// TermPattern constants
const (
	TermPatternFall   TermPattern = "FALL"
	TermPatternSpring TermPattern = "SPRING"
	TermPatternBoth   TermPattern = "BOTH"
)

// FacultyCategory classifies faculty appointments
type FacultyCategory string

// FacultyCategory constants
const (
	FacultyCategoryLadder        FacultyCategory = "LADDER"
	FacultyCategoryNonLadder     FacultyCategory = "NON_LADDER"
	FacultyCategoryNonSEASLadder FacultyCategory = "NON_SEAS_LADDER"
)

// AbsenceType describes a faculty member's status in a semester
type AbsenceType string

// AbsenceType constants
const (
	AbsenceSabbatical           AbsenceType = "SABBATICAL"
	AbsenceSabbaticalEligible   AbsenceType = "SABBATICAL_ELIGIBLE"
	AbsenceSabbaticalIneligible AbsenceType = "SABBATICAL_INELIGIBLE"
	AbsenceTeachingRelief       AbsenceType = "TEACHING_RELIEF"
	AbsenceResearchLeave        AbsenceType = "RESEARCH_LEAVE"
	AbsenceParentalLeave        AbsenceType = "PARENTAL_LEAVE"
	AbsenceNoLongerActive       AbsenceType = "NO_LONGER_ACTIVE"
	AbsencePresent              AbsenceType = "PRESENT"
)
