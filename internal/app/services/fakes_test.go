package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/repositories"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
)

// memoryStore is an in-memory stand-in for every repository
type memoryStore struct {
	areas       []models.Area
	semesters   []models.Semester
	courses     []*models.Course
	instances   []*models.CourseInstance
	assignments []models.InstructorAssignment
	faculty     []*models.Faculty
	absences    []models.Absence
	rooms       []models.Room
	bookings    []models.RoomBooking
	meetings    []*models.Meeting
	scheduled   []models.ScheduledMeeting
	parents     []*models.NonClassParent
	events      []*models.NonClassEvent
	views       []models.View

	lastBookingFilter repositories.BookingFilter
	err               error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{}
}

func fixedClock(year int, month time.Month) Clock {
	return func() time.Time {
		return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func (m *memoryStore) addArea(name string) models.Area {
	a := models.Area{ID: uuid.NewString(), Name: name}
	m.areas = append(m.areas, a)
	return a
}

func (m *memoryStore) addSemester(term models.Term, year int) models.Semester {
	s := models.Semester{ID: uuid.NewString(), Term: term, CalendarYear: year}
	m.semesters = append(m.semesters, s)
	return s
}

func (m *memoryStore) addCourse(area models.Area, prefix, number, title string) *models.Course {
	c := &models.Course{
		ID: uuid.NewString(), Title: title, Prefix: prefix, Number: number,
		IsSEAS: models.IsSEASYes, AreaID: area.ID, Area: &models.Area{ID: area.ID, Name: area.Name},
	}
	m.courses = append(m.courses, c)
	for i := range m.semesters {
		sem := m.semesters[i]
		m.instances = append(m.instances, &models.CourseInstance{
			ID: uuid.NewString(), CourseID: c.ID, SemesterID: sem.ID, Semester: &sem,
		})
	}
	return c
}

func (m *memoryStore) addFaculty(area models.Area, first, last string) *models.Faculty {
	f := &models.Faculty{
		ID: uuid.NewString(), HUID: uuid.NewString()[:8], FirstName: first, LastName: last,
		Category: models.FacultyCategoryLadder, AreaID: &area.ID, Area: &models.Area{ID: area.ID, Name: area.Name},
	}
	m.faculty = append(m.faculty, f)
	for _, s := range m.semesters {
		m.absences = append(m.absences, models.Absence{
			ID: uuid.NewString(), FacultyID: f.ID, SemesterID: s.ID, Type: models.AbsencePresent,
		})
	}
	return f
}

func (m *memoryStore) instanceOf(courseID, semesterID string) *models.CourseInstance {
	for _, ci := range m.instances {
		if ci.CourseID == courseID && ci.SemesterID == semesterID {
			return ci
		}
	}
	return nil
}

func (m *memoryStore) facultyByID(id string) *models.Faculty {
	for _, f := range m.faculty {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// AreaStore

func (m *memoryStore) ListAreas(context.Context) ([]models.Area, error) {
	return m.areas, m.err
}

func (m *memoryStore) GetAreaByID(_ context.Context, id string) (*models.Area, error) {
	for i := range m.areas {
		if m.areas[i].ID == id {
			a := m.areas[i]
			return &a, nil
		}
	}
	return nil, apperrors.ErrAreaNotFound
}

// SemesterStore

func (m *memoryStore) ListSemesters(context.Context) ([]models.Semester, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Semester, len(m.semesters))
	copy(out, m.semesters)
	return out, nil
}

// CourseStore

func (m *memoryStore) ListCourses(context.Context) ([]*models.Course, error) {
	return m.courses, m.err
}

func (m *memoryStore) GetCourseByID(_ context.Context, id string) (*models.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (m *memoryStore) CreateCourse(_ context.Context, course *models.Course, areaName string) (*models.Course, error) {
	for _, c := range m.courses {
		if c.Prefix == course.Prefix && c.Number == course.Number {
			return nil, apperrors.ErrCourseAlreadyExists
		}
	}
	var area *models.Area
	for i := range m.areas {
		if m.areas[i].Name == areaName {
			area = &m.areas[i]
		}
	}
	if area == nil {
		a := m.addArea(areaName)
		area = &a
	}
	course.ID = uuid.NewString()
	course.AreaID = area.ID
	course.Area = &models.Area{ID: area.ID, Name: area.Name}
	m.courses = append(m.courses, course)
	for i := range m.semesters {
		sem := m.semesters[i]
		m.instances = append(m.instances, &models.CourseInstance{ID: uuid.NewString(), CourseID: course.ID, SemesterID: sem.ID, Semester: &sem})
	}
	return course, nil
}

func (m *memoryStore) UpdateCourse(_ context.Context, course *models.Course, areaName string) (*models.Course, error) {
	for i, c := range m.courses {
		if c.ID == course.ID {
			course.Area = &models.Area{ID: course.AreaID, Name: areaName}
			m.courses[i] = course
			return course, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (m *memoryStore) ListCatalogPrefixes(context.Context) ([]string, error) {
	prefixes := []string{}
	for _, c := range m.courses {
		if !contains(prefixes, c.Prefix) {
			prefixes = append(prefixes, c.Prefix)
		}
	}
	sort.Strings(prefixes)
	return prefixes, m.err
}

// CourseInstanceStore

func (m *memoryStore) ListInstancesBySemesters(_ context.Context, semesterIDs []string) ([]*models.CourseInstance, error) {
	out := []*models.CourseInstance{}
	for _, ci := range m.instances {
		if contains(semesterIDs, ci.SemesterID) {
			out = append(out, ci)
		}
	}
	return out, m.err
}

func (m *memoryStore) GetInstanceByID(_ context.Context, id string) (*models.CourseInstance, error) {
	for _, ci := range m.instances {
		if ci.ID == id {
			cp := *ci
			return &cp, nil
		}
	}
	return nil, apperrors.ErrCourseInstanceNotFound
}

func (m *memoryStore) UpdateInstance(_ context.Context, instance *models.CourseInstance) error {
	for i, ci := range m.instances {
		if ci.ID == instance.ID {
			m.instances[i] = instance
			return nil
		}
	}
	return apperrors.ErrCourseInstanceNotFound
}

func (m *memoryStore) ListInstructors(_ context.Context, instanceIDs []string) ([]models.InstructorAssignment, error) {
	out := []models.InstructorAssignment{}
	for _, a := range m.assignments {
		if contains(instanceIDs, a.CourseInstanceID) {
			out = append(out, a)
		}
	}
	return out, m.err
}

func (m *memoryStore) ReplaceInstructors(_ context.Context, instanceID string, facultyIDs []string) error {
	kept := []models.InstructorAssignment{}
	for _, a := range m.assignments {
		if a.CourseInstanceID != instanceID {
			kept = append(kept, a)
		}
	}
	for i, id := range facultyIDs {
		f := m.facultyByID(id)
		kept = append(kept, models.InstructorAssignment{
			CourseInstanceID: instanceID, FacultyID: id,
			FirstName: f.FirstName, LastName: f.LastName, InstructorOrder: i,
		})
	}
	m.assignments = kept
	return nil
}

// FacultyStore

func (m *memoryStore) ListFaculty(context.Context) ([]*models.Faculty, error) {
	return m.faculty, m.err
}

func (m *memoryStore) GetFacultyByID(_ context.Context, id string) (*models.Faculty, error) {
	if f := m.facultyByID(id); f != nil {
		cp := *f
		return &cp, nil
	}
	return nil, apperrors.ErrFacultyNotFound
}

func (m *memoryStore) CountExisting(_ context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if m.facultyByID(id) != nil {
			n++
		}
	}
	return n, m.err
}

func (m *memoryStore) CreateFaculty(_ context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	for _, f := range m.faculty {
		if f.HUID == faculty.HUID {
			return nil, apperrors.ErrFacultyAlreadyExists
		}
	}
	faculty.ID = uuid.NewString()
	m.faculty = append(m.faculty, faculty)
	for _, s := range m.semesters {
		m.absences = append(m.absences, models.Absence{
			ID: uuid.NewString(), FacultyID: faculty.ID, SemesterID: s.ID, Type: models.AbsencePresent,
		})
	}
	return faculty, nil
}

func (m *memoryStore) UpdateFaculty(_ context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	for i, f := range m.faculty {
		if f.ID == faculty.ID {
			m.faculty[i] = faculty
			return faculty, nil
		}
	}
	return nil, apperrors.ErrFacultyNotFound
}

func (m *memoryStore) ListTeaching(_ context.Context, semesterIDs []string) ([]repositories.TeachingAssignment, error) {
	out := []repositories.TeachingAssignment{}
	for _, a := range m.assignments {
		for _, ci := range m.instances {
			if ci.ID != a.CourseInstanceID || !contains(semesterIDs, ci.SemesterID) {
				continue
			}
			for _, c := range m.courses {
				if c.ID == ci.CourseID {
					out = append(out, repositories.TeachingAssignment{
						FacultyID: a.FacultyID, SemesterID: ci.SemesterID,
						CourseInstanceID: ci.ID, Prefix: c.Prefix, Number: c.Number,
					})
				}
			}
		}
	}
	return out, m.err
}

// AbsenceStore

func (m *memoryStore) ListAbsencesBySemesters(_ context.Context, semesterIDs []string) ([]models.Absence, error) {
	out := []models.Absence{}
	for _, a := range m.absences {
		if contains(semesterIDs, a.SemesterID) {
			out = append(out, a)
		}
	}
	return out, m.err
}

func (m *memoryStore) UpdateAbsenceType(_ context.Context, id string, absenceType models.AbsenceType) (*models.Absence, error) {
	for i := range m.absences {
		if m.absences[i].ID == id {
			m.absences[i].Type = absenceType
			a := m.absences[i]
			return &a, nil
		}
	}
	return nil, apperrors.ErrAbsenceNotFound
}

// LocationStore

func (m *memoryStore) ListRooms(context.Context) ([]models.Room, error) {
	return m.rooms, m.err
}

func (m *memoryStore) CountRooms(_ context.Context, ids []string) (int, error) {
	n := 0
	for _, r := range m.rooms {
		if contains(ids, r.ID) {
			n++
		}
	}
	return n, m.err
}

func (m *memoryStore) ListBookings(_ context.Context, filter repositories.BookingFilter) ([]models.RoomBooking, error) {
	m.lastBookingFilter = filter
	out := []models.RoomBooking{}
	for _, b := range m.bookings {
		if b.ParentID != filter.ExcludeParent {
			out = append(out, b)
		}
	}
	return out, m.err
}

// MeetingStore

func (m *memoryStore) FindParentKind(_ context.Context, id string) (models.MeetingParentKind, error) {
	for _, ci := range m.instances {
		if ci.ID == id {
			return models.MeetingParentCourseInstance, nil
		}
	}
	for _, e := range m.events {
		if e.ID == id {
			return models.MeetingParentNonClassEvent, nil
		}
	}
	return "", apperrors.ErrMeetingParentNotFound
}

func meetingParent(mt *models.Meeting, kind models.MeetingParentKind) string {
	switch {
	case kind == models.MeetingParentCourseInstance && mt.CourseInstanceID != nil:
		return *mt.CourseInstanceID
	case kind == models.MeetingParentNonClassEvent && mt.NonClassEventID != nil:
		return *mt.NonClassEventID
	}
	return ""
}

func (m *memoryStore) ListMeetings(_ context.Context, kind models.MeetingParentKind, parentIDs []string) ([]*models.Meeting, error) {
	out := []*models.Meeting{}
	for _, mt := range m.meetings {
		if contains(parentIDs, meetingParent(mt, kind)) {
			out = append(out, mt)
		}
	}
	return out, m.err
}

func (m *memoryStore) ReplaceMeetings(_ context.Context, kind models.MeetingParentKind, parentID string, meetings []*models.Meeting) ([]*models.Meeting, error) {
	kept := []*models.Meeting{}
	for _, mt := range m.meetings {
		if meetingParent(mt, kind) != parentID {
			kept = append(kept, mt)
		}
	}
	for _, mt := range meetings {
		if mt.ID == "" {
			mt.ID = uuid.NewString()
		}
		id := parentID
		if kind == models.MeetingParentCourseInstance {
			mt.CourseInstanceID = &id
		} else {
			mt.NonClassEventID = &id
		}
		if mt.RoomID != nil {
			for i := range m.rooms {
				if m.rooms[i].ID == *mt.RoomID {
					r := m.rooms[i]
					mt.Room = &r
				}
			}
		}
		kept = append(kept, mt)
	}
	m.meetings = kept
	return meetings, nil
}

func (m *memoryStore) ListScheduledMeetings(_ context.Context, term models.Term, calendarYear int) ([]models.ScheduledMeeting, error) {
	return m.scheduled, m.err
}

// NonClassStore

func (m *memoryStore) ListParents(context.Context) ([]*models.NonClassParent, error) {
	return m.parents, m.err
}

func (m *memoryStore) ListEventsBySemesters(_ context.Context, semesterIDs []string) ([]*models.NonClassEvent, error) {
	out := []*models.NonClassEvent{}
	for _, e := range m.events {
		if contains(semesterIDs, e.SemesterID) {
			out = append(out, e)
		}
	}
	return out, m.err
}

func (m *memoryStore) CreateParent(_ context.Context, parent *models.NonClassParent) (*models.NonClassParent, error) {
	if parent.CourseID != nil {
		if _, err := m.GetCourseByID(context.Background(), *parent.CourseID); err != nil {
			return nil, err
		}
	}
	parent.ID = uuid.NewString()
	m.parents = append(m.parents, parent)
	for _, s := range m.semesters {
		m.events = append(m.events, &models.NonClassEvent{
			ID: uuid.NewString(), NonClassParentID: parent.ID, SemesterID: s.ID, Private: true,
		})
	}
	return parent, nil
}

// ViewStore

func (m *memoryStore) ListViews(_ context.Context, eppn string) ([]models.View, error) {
	out := []models.View{}
	for _, v := range m.views {
		if v.EPPN == eppn {
			out = append(out, v)
		}
	}
	return out, m.err
}

func (m *memoryStore) CreateView(_ context.Context, view *models.View) error {
	if m.err != nil {
		return m.err
	}
	view.ID = uuid.NewString()
	view.CreatedAt = time.Now()
	m.views = append(m.views, *view)
	return nil
}

func (m *memoryStore) DeleteView(_ context.Context, id, eppn string) error {
	for i, v := range m.views {
		if v.ID == id && v.EPPN == eppn {
			m.views = append(m.views[:i], m.views[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrViewNotFound
}

var (
	_ AreaStore           = (*memoryStore)(nil)
	_ SemesterStore       = (*memoryStore)(nil)
	_ CourseStore         = (*memoryStore)(nil)
	_ CourseInstanceStore = (*memoryStore)(nil)
	_ FacultyStore        = (*memoryStore)(nil)
	_ AbsenceStore        = (*memoryStore)(nil)
	_ LocationStore       = (*memoryStore)(nil)
	_ MeetingStore        = (*memoryStore)(nil)
	_ NonClassStore       = (*memoryStore)(nil)
	_ ViewStore           = (*memoryStore)(nil)
)
