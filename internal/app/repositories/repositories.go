package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/seas-computing/course-planner/internal/db"
)

// psql is the statement builder shared by every repository
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	AreaRepository           *AreaRepository
	SemesterRepository       *SemesterRepository
	CourseRepository         *CourseRepository
	CourseInstanceRepository *CourseInstanceRepository
	FacultyRepository        *FacultyRepository
	AbsenceRepository        *AbsenceRepository
	LocationRepository       *LocationRepository
	MeetingRepository        *MeetingRepository
	NonClassRepository       *NonClassRepository
	ViewRepository           *ViewRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		AreaRepository:           NewAreaRepository(database),
		SemesterRepository:       NewSemesterRepository(database),
		CourseRepository:         NewCourseRepository(database),
		CourseInstanceRepository: NewCourseInstanceRepository(database),
		FacultyRepository:        NewFacultyRepository(database),
		AbsenceRepository:        NewAbsenceRepository(database),
		LocationRepository:       NewLocationRepository(database),
		MeetingRepository:        NewMeetingRepository(database),
		NonClassRepository:       NewNonClassRepository(database),
		ViewRepository:           NewViewRepository(database),
	}
}
