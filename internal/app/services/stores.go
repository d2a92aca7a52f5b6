package services

import (
	"context"
	"time"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/repositories"
)

// The store interfaces below are the slices of the repositories each service
// depends on. The repositories package satisfies all of them.

// AreaStore reads areas
type AreaStore interface {
	ListAreas(ctx context.Context) ([]models.Area, error)
	GetAreaByID(ctx context.Context, id string) (*models.Area, error)
}

// SemesterStore reads semesters
type SemesterStore interface {
	ListSemesters(ctx context.Context) ([]models.Semester, error)
}

// CourseStore reads and writes courses
type CourseStore interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course, areaName string) (*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course, areaName string) (*models.Course, error)
	ListCatalogPrefixes(ctx context.Context) ([]string, error)
}

// CourseInstanceStore reads and writes course instances and their instructors
type CourseInstanceStore interface {
	ListInstancesBySemesters(ctx context.Context, semesterIDs []string) ([]*models.CourseInstance, error)
	GetInstanceByID(ctx context.Context, id string) (*models.CourseInstance, error)
	UpdateInstance(ctx context.Context, instance *models.CourseInstance) error
	ListInstructors(ctx context.Context, instanceIDs []string) ([]models.InstructorAssignment, error)
	ReplaceInstructors(ctx context.Context, instanceID string, facultyIDs []string) error
}

// FacultyStore reads and writes faculty
type FacultyStore interface {
	ListFaculty(ctx context.Context) ([]*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id string) (*models.Faculty, error)
	CountExisting(ctx context.Context, ids []string) (int, error)
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	UpdateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	ListTeaching(ctx context.Context, semesterIDs []string) ([]repositories.TeachingAssignment, error)
}

// AbsenceStore reads and writes absences
type AbsenceStore interface {
	ListAbsencesBySemesters(ctx context.Context, semesterIDs []string) ([]models.Absence, error)
	UpdateAbsenceType(ctx context.Context, id string, absenceType models.AbsenceType) (*models.Absence, error)
}

// LocationStore reads rooms and their bookings
type LocationStore interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	CountRooms(ctx context.Context, ids []string) (int, error)
	ListBookings(ctx context.Context, filter repositories.BookingFilter) ([]models.RoomBooking, error)
}

// MeetingStore reads and writes meetings
type MeetingStore interface {
	FindParentKind(ctx context.Context, id string) (models.MeetingParentKind, error)
	ListMeetings(ctx context.Context, kind models.MeetingParentKind, parentIDs []string) ([]*models.Meeting, error)
	ReplaceMeetings(ctx context.Context, kind models.MeetingParentKind, parentID string, meetings []*models.Meeting) ([]*models.Meeting, error)
	ListScheduledMeetings(ctx context.Context, term models.Term, calendarYear int) ([]models.ScheduledMeeting, error)
}

// NonClassStore reads and writes non-class parents and events
type NonClassStore interface {
	ListParents(ctx context.Context) ([]*models.NonClassParent, error)
	ListEventsBySemesters(ctx context.Context, semesterIDs []string) ([]*models.NonClassEvent, error)
	CreateParent(ctx context.Context, parent *models.NonClassParent) (*models.NonClassParent, error)
}

// ViewStore reads and writes saved views
type ViewStore interface {
	ListViews(ctx context.Context, eppn string) ([]models.View, error)
	CreateView(ctx context.Context, view *models.View) error
	DeleteView(ctx context.Context, id, eppn string) error
}

// Clock returns the current time; services take one so tests can pin the date
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

var (
	_ AreaStore           = (*repositories.AreaRepository)(nil)
	_ SemesterStore       = (*repositories.SemesterRepository)(nil)
	_ CourseStore         = (*repositories.CourseRepository)(nil)
	_ CourseInstanceStore = (*repositories.CourseInstanceRepository)(nil)
	_ FacultyStore        = (*repositories.FacultyRepository)(nil)
	_ AbsenceStore        = (*repositories.AbsenceRepository)(nil)
	_ LocationStore       = (*repositories.LocationRepository)(nil)
	_ MeetingStore        = (*repositories.MeetingRepository)(nil)
	_ NonClassStore       = (*repositories.NonClassRepository)(nil)
	_ ViewStore           = (*repositories.ViewRepository)(nil)
)
