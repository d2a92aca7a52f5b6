package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/academic"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
)

// Bounds of the multi-year plan span
const (
	DefaultPlanYears = 4
	MaxPlanYears     = 10
)

// CourseInstanceService defines the interface for per-semester course operations
type CourseInstanceService interface {
	ListByAcademicYears(ctx context.Context, rawYears string) ([][]dto.CourseInstanceResponse, error)
	MultiYearPlan(ctx context.Context, numYears int) ([]dto.MultiYearPlanResponse, error)
	UpdateInstance(ctx context.Context, id string, req *dto.UpdateCourseInstanceRequest) (*dto.InstanceBlock, error)
	ReplaceInstructors(ctx context.Context, id string, facultyIDs []string) ([]dto.InstructorData, error)
}

// courseInstanceServiceImpl implements CourseInstanceService
type courseInstanceServiceImpl struct {
	semesters SemesterStore
	courses   CourseStore
	instances CourseInstanceStore
	faculty   FacultyStore
	meetings  MeetingStore
	clock     Clock
}

// NewCourseInstanceService creates a new CourseInstanceService
func NewCourseInstanceService(
	semesters SemesterStore,
	courses CourseStore,
	instances CourseInstanceStore,
	faculty FacultyStore,
	meetings MeetingStore,
	clock Clock,
) CourseInstanceService {
	return &courseInstanceServiceImpl{
		semesters: semesters,
		courses:   courses,
		instances: instances,
		faculty:   faculty,
		meetings:  meetings,
		clock:     clock,
	}
}

// semestersOfYears keeps the semesters that fall in one of years, oldest first
func semestersOfYears(semesters []models.Semester, years []int) []models.Semester {
	wanted := map[int]bool{}
	for _, y := range years {
		wanted[y] = true
	}
	result := []models.Semester{}
	for _, s := range semesters {
		if wanted[s.AcademicYear()] {
			result = append(result, s)
		}
	}
	sortSemesters(result)
	return result
}

func semesterIDs(semesters []models.Semester) []string {
	ids := make([]string, len(semesters))
	for i := range semesters {
		ids[i] = semesters[i].ID
	}
	return ids
}

// instanceKey identifies the instance of a course in a semester
type instanceKey struct {
	courseID   string
	semesterID string
}

// courseYearData is everything loaded to render course instances
type courseYearData struct {
	courses     []*models.Course
	instances   map[instanceKey]*models.CourseInstance
	instructors map[string][]dto.InstructorData
	meetings    map[string][]dto.MeetingResponse
}

// load fetches the courses and their instances in semesters together with
// ordered instructors. Meetings are only loaded when withMeetings is set.
func (s *courseInstanceServiceImpl) load(ctx context.Context, semesters []models.Semester, withMeetings bool) (*courseYearData, error) {
	data := &courseYearData{
		instances:   map[instanceKey]*models.CourseInstance{},
		instructors: map[string][]dto.InstructorData{},
		meetings:    map[string][]dto.MeetingResponse{},
	}

	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting courses: %w", err)
	}
	data.courses = courses

	if len(semesters) == 0 {
		return data, nil
	}

	instances, err := s.instances.ListInstancesBySemesters(ctx, semesterIDs(semesters))
	if err != nil {
		return nil, fmt.Errorf("error getting course instances: %w", err)
	}
	instanceIDs := make([]string, 0, len(instances))
	for _, ci := range instances {
		data.instances[instanceKey{ci.CourseID, ci.SemesterID}] = ci
		instanceIDs = append(instanceIDs, ci.ID)
	}
	if len(instanceIDs) == 0 {
		return data, nil
	}

	assignments, err := s.instances.ListInstructors(ctx, instanceIDs)
	if err != nil {
		return nil, fmt.Errorf("error getting instructors: %w", err)
	}
	data.instructors = groupInstructors(assignments)

	if withMeetings {
		if data.meetings, err = s.instanceMeetings(ctx, instanceIDs); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// instanceMeetings maps course instance ids to their meetings
func (s *courseInstanceServiceImpl) instanceMeetings(ctx context.Context, instanceIDs []string) (map[string][]dto.MeetingResponse, error) {
	meetings, err := s.meetings.ListMeetings(ctx, models.MeetingParentCourseInstance, instanceIDs)
	if err != nil {
		return nil, fmt.Errorf("error getting meetings: %w", err)
	}
	grouped := map[string][]dto.MeetingResponse{}
	for _, m := range meetings {
		if m.CourseInstanceID == nil {
			continue
		}
		grouped[*m.CourseInstanceID] = append(grouped[*m.CourseInstanceID], toMeetingResponse(m))
	}
	return grouped, nil
}

// groupInstructors maps instance ids to their instructors in instructor order
func groupInstructors(assignments []models.InstructorAssignment) map[string][]dto.InstructorData {
	sorted := make([]models.InstructorAssignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].InstructorOrder < sorted[j].InstructorOrder
	})

	grouped := map[string][]dto.InstructorData{}
	for _, a := range sorted {
		grouped[a.CourseInstanceID] = append(grouped[a.CourseInstanceID], dto.InstructorData{
			ID:              a.FacultyID,
			DisplayName:     models.DisplayName(a.FirstName, a.LastName),
			InstructorOrder: a.InstructorOrder,
		})
	}
	return grouped
}

func (d *courseYearData) block(ci *models.CourseInstance, calendarYear int) dto.InstanceBlock {
	block := dto.InstanceBlock{
		CalendarYear: calendarYear,
		Instructors:  []dto.InstructorData{},
		Meetings:     []dto.MeetingResponse{},
	}
	if ci == nil {
		return block
	}
	block.ID = ci.ID
	block.Offered = string(ci.Offered)
	block.PreEnrollment = ci.PreEnrollment
	block.StudyCardEnrollment = ci.StudyCardEnrollment
	block.ActualEnrollment = ci.ActualEnrollment
	if list, ok := d.instructors[ci.ID]; ok {
		block.Instructors = list
	}
	if list, ok := d.meetings[ci.ID]; ok {
		block.Meetings = list
	}
	return block
}

// ListByAcademicYears returns, per requested academic year, every course with
// its fall and spring instances. rawYears is a comma separated year list;
// years without semesters are dropped and an empty list selects all years.
func (s *courseInstanceServiceImpl) ListByAcademicYears(ctx context.Context, rawYears string) ([][]dto.CourseInstanceResponse, error) {
	semesters, err := s.semesters.ListSemesters(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting semesters: %w", err)
	}
	years := academic.ParseYearList(rawYears, academicYears(semesters))
	selected := semestersOfYears(semesters, years)

	data, err := s.load(ctx, selected, true)
	if err != nil {
		return nil, err
	}

	// term and calendar year to semester id
	semesterByTerm := map[string]string{}
	for _, sem := range selected {
		semesterByTerm[sem.Label()] = sem.ID
	}

	result := make([][]dto.CourseInstanceResponse, 0, len(years))
	for _, year := range years {
		fallYear := academic.CalendarYear(academic.Fall, year)
		springYear := academic.CalendarYear(academic.Spring, year)
		fallID := semesterByTerm[academic.SemesterLabel(academic.Fall, fallYear)]
		springID := semesterByTerm[academic.SemesterLabel(academic.Spring, springYear)]

		list := []dto.CourseInstanceResponse{}
		for _, c := range data.courses {
			fall := data.instances[instanceKey{c.ID, fallID}]
			spring := data.instances[instanceKey{c.ID, springID}]
			if fall == nil && spring == nil {
				continue
			}
			resp := toCourseResponse(c)
			list = append(list, dto.CourseInstanceResponse{
				ID:              c.ID,
				AcademicYear:    year,
				Title:           c.Title,
				CatalogNumber:   c.CatalogNumber(),
				Area:            resp.Area.Name,
				IsUndergraduate: c.IsUndergraduate,
				IsSEAS:          string(c.IsSEAS),
				SameAs:          c.SameAs,
				Notes:           c.Notes,
				TermPattern:     resp.TermPattern,
				Private:         c.Private,
				Fall:            data.block(fall, fallYear),
				Spring:          data.block(spring, springYear),
			})
		}
		result = append(result, list)
	}
	return result, nil
}

// MultiYearPlan lists, for every course, its semesters over numYears academic
// years starting at the current one, each with the ordered faculty teaching it.
func (s *courseInstanceServiceImpl) MultiYearPlan(ctx context.Context, numYears int) ([]dto.MultiYearPlanResponse, error) {
	if numYears < 1 || numYears > MaxPlanYears {
		return nil, apperrors.NewValidationError("numYears",
			fmt.Sprintf("numYears must be a positive integer no greater than %d", MaxPlanYears))
	}

	semesters, err := s.semesters.ListSemesters(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting semesters: %w", err)
	}
	start := academic.CurrentAcademicYear(s.clock.now())
	selected := semestersOfYears(semesters, academic.YearRange(start, numYears))

	data, err := s.load(ctx, selected, false)
	if err != nil {
		return nil, err
	}

	result := make([]dto.MultiYearPlanResponse, 0, len(data.courses))
	for _, c := range data.courses {
		plan := dto.MultiYearPlanResponse{
			ID:            c.ID,
			CatalogNumber: c.CatalogNumber(),
			Title:         c.Title,
			Semesters:     []dto.MultiYearPlanSemester{},
		}
		if c.Area != nil {
			plan.Area = c.Area.Name
		}
		for _, sem := range selected {
			entry := dto.MultiYearPlanSemester{
				ID:           sem.ID,
				AcademicYear: sem.AcademicYear(),
				CalendarYear: sem.CalendarYear,
				Term:         string(sem.Term),
				Instance:     dto.MultiYearPlanInstance{Faculty: []dto.InstructorData{}},
			}
			if ci := data.instances[instanceKey{c.ID, sem.ID}]; ci != nil {
				entry.Instance.ID = ci.ID
				if list, ok := data.instructors[ci.ID]; ok {
					entry.Instance.Faculty = list
				}
			}
			plan.Semesters = append(plan.Semesters, entry)
		}
		result = append(result, plan)
	}
	return result, nil
}

// UpdateInstance stores the offered status and enrollment figures of an instance
func (s *courseInstanceServiceImpl) UpdateInstance(ctx context.Context, id string, req *dto.UpdateCourseInstanceRequest) (*dto.InstanceBlock, error) {
	ci, err := s.instances.GetInstanceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting course instance: %w", err)
	}

	ci.Offered = models.Offered(req.Offered)
	ci.PreEnrollment = req.PreEnrollment
	ci.StudyCardEnrollment = req.StudyCardEnrollment
	ci.ActualEnrollment = req.ActualEnrollment
	if err := s.instances.UpdateInstance(ctx, ci); err != nil {
		return nil, fmt.Errorf("error updating course instance: %w", err)
	}

	assignments, err := s.instances.ListInstructors(ctx, []string{ci.ID})
	if err != nil {
		return nil, fmt.Errorf("error getting instructors: %w", err)
	}
	meetings, err := s.instanceMeetings(ctx, []string{ci.ID})
	if err != nil {
		return nil, err
	}
	data := &courseYearData{instructors: groupInstructors(assignments), meetings: meetings}
	calendarYear := 0
	if ci.Semester != nil {
		calendarYear = ci.Semester.CalendarYear
	}
	block := data.block(ci, calendarYear)
	return &block, nil
}

// ReplaceInstructors sets the ordered instructor list of an instance. Every
// id must belong to an existing faculty member and appear only once.
func (s *courseInstanceServiceImpl) ReplaceInstructors(ctx context.Context, id string, facultyIDs []string) ([]dto.InstructorData, error) {
	normalized := make([]string, 0, len(facultyIDs))
	seen := map[string]bool{}
	for _, raw := range facultyIDs {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("instructors", "Every instructor must be an existing faculty member")
		}
		fid := parsed.String()
		if seen[fid] {
			return nil, apperrors.NewValidationError("instructors", "Instructors may only be listed once")
		}
		seen[fid] = true
		normalized = append(normalized, fid)
	}
	facultyIDs = normalized

	if _, err := s.instances.GetInstanceByID(ctx, id); err != nil {
		return nil, fmt.Errorf("error getting course instance: %w", err)
	}

	if len(facultyIDs) > 0 {
		count, err := s.faculty.CountExisting(ctx, facultyIDs)
		if err != nil {
			return nil, fmt.Errorf("error checking faculty: %w", err)
		}
		if count != len(facultyIDs) {
			return nil, apperrors.NewValidationError("instructors", "One or more instructors do not exist")
		}
	}

	if err := s.instances.ReplaceInstructors(ctx, id, facultyIDs); err != nil {
		return nil, fmt.Errorf("error replacing instructors: %w", err)
	}

	assignments, err := s.instances.ListInstructors(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("error getting instructors: %w", err)
	}
	list := groupInstructors(assignments)[id]
	if list == nil {
		list = []dto.InstructorData{}
	}
	return list, nil
}
