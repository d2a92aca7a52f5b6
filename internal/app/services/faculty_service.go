package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/academic"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
)

// FacultyService defines the interface for faculty operations
type FacultyService interface {
	ListFaculty(ctx context.Context) ([]dto.FacultyResponse, error)
	CreateFaculty(ctx context.Context, req *dto.FacultyRequest) (*dto.FacultyResponse, error)
	UpdateFaculty(ctx context.Context, id string, req *dto.FacultyRequest) (*dto.FacultyResponse, error)
	ListInstructors(ctx context.Context) ([]dto.InstructorResponse, error)
	Schedule(ctx context.Context, rawYears string) (map[int][]dto.FacultyScheduleResponse, error)
	UpdateAbsence(ctx context.Context, id string, req *dto.AbsenceRequest) (*dto.AbsenceResponse, error)
}

// facultyServiceImpl implements FacultyService
type facultyServiceImpl struct {
	faculty   FacultyStore
	absences  AbsenceStore
	areas     AreaStore
	semesters SemesterStore
	clock     Clock
}

// NewFacultyService creates a new FacultyService
func NewFacultyService(
	faculty FacultyStore,
	absences AbsenceStore,
	areas AreaStore,
	semesters SemesterStore,
	clock Clock,
) FacultyService {
	return &facultyServiceImpl{
		faculty:   faculty,
		absences:  absences,
		areas:     areas,
		semesters: semesters,
		clock:     clock,
	}
}

func toFacultyResponse(f *models.Faculty) dto.FacultyResponse {
	resp := dto.FacultyResponse{
		ID:        f.ID,
		HUID:      f.HUID,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Category:  string(f.Category),
		JointWith: f.JointWith,
		Notes:     f.Notes,
	}
	if f.Area != nil {
		resp.Area = &dto.AreaData{ID: f.Area.ID, Name: f.Area.Name}
	} else if f.AreaID != nil {
		resp.Area = &dto.AreaData{ID: *f.AreaID}
	}
	return resp
}

// applyFacultyRequest validates the parts of req the binding rules cannot
// express and copies it onto f
func (s *facultyServiceImpl) applyFacultyRequest(ctx context.Context, f *models.Faculty, req *dto.FacultyRequest) error {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" && lastName == "" {
		return apperrors.NewValidationError("lastName", "Faculty must have a first name or a last name")
	}

	area, err := s.areas.GetAreaByID(ctx, req.Area)
	if err != nil {
		return fmt.Errorf("error getting area: %w", err)
	}

	f.HUID = strings.TrimSpace(req.HUID)
	f.FirstName = firstName
	f.LastName = lastName
	f.Category = models.FacultyCategory(req.Category)
	f.AreaID = &area.ID
	f.Area = area
	f.JointWith = req.JointWith
	f.Notes = req.Notes
	return nil
}

// ListFaculty returns every faculty member with their area
func (s *facultyServiceImpl) ListFaculty(ctx context.Context) ([]dto.FacultyResponse, error) {
	faculty, err := s.faculty.ListFaculty(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting faculty: %w", err)
	}

	result := make([]dto.FacultyResponse, 0, len(faculty))
	for _, f := range faculty {
		result = append(result, toFacultyResponse(f))
	}
	return result, nil
}

// CreateFaculty adds a faculty member, present in every existing semester
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, req *dto.FacultyRequest) (*dto.FacultyResponse, error) {
	f := &models.Faculty{}
	if err := s.applyFacultyRequest(ctx, f, req); err != nil {
		return nil, err
	}

	created, err := s.faculty.CreateFaculty(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error creating faculty: %w", err)
	}
	if created.Area == nil {
		created.Area = f.Area
	}
	resp := toFacultyResponse(created)
	return &resp, nil
}

// UpdateFaculty replaces the editable fields of a faculty member
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, id string, req *dto.FacultyRequest) (*dto.FacultyResponse, error) {
	f, err := s.faculty.GetFacultyByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting faculty: %w", err)
	}
	if err := s.applyFacultyRequest(ctx, f, req); err != nil {
		return nil, err
	}

	updated, err := s.faculty.UpdateFaculty(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}
	resp := toFacultyResponse(updated)
	return &resp, nil
}

// ListInstructors returns every faculty member by display name
func (s *facultyServiceImpl) ListInstructors(ctx context.Context) ([]dto.InstructorResponse, error) {
	faculty, err := s.faculty.ListFaculty(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting faculty: %w", err)
	}

	result := make([]dto.InstructorResponse, 0, len(faculty))
	for _, f := range faculty {
		result = append(result, dto.InstructorResponse{ID: f.ID, DisplayName: f.DisplayName()})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return strings.ToLower(result[i].DisplayName) < strings.ToLower(result[j].DisplayName)
	})
	return result, nil
}

// Schedule returns, for each requested academic year, every faculty member
// with their absence and courses in the fall and spring. An empty rawYears
// selects the current academic year.
func (s *facultyServiceImpl) Schedule(ctx context.Context, rawYears string) (map[int][]dto.FacultyScheduleResponse, error) {
	semesters, err := s.semesters.ListSemesters(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting semesters: %w", err)
	}

	var years []int
	if strings.TrimSpace(rawYears) == "" {
		years = []int{academic.CurrentAcademicYear(s.clock.now())}
	} else {
		years = academic.ParseYearList(rawYears, academicYears(semesters))
	}
	selected := semestersOfYears(semesters, years)

	faculty, err := s.faculty.ListFaculty(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting faculty: %w", err)
	}

	absences := map[string]models.Absence{}
	courses := map[string][]dto.ScheduleCourse{}
	if len(selected) > 0 {
		ids := semesterIDs(selected)
		list, err := s.absences.ListAbsencesBySemesters(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("error getting absences: %w", err)
		}
		for _, a := range list {
			absences[a.FacultyID+"/"+a.SemesterID] = a
		}

		teaching, err := s.faculty.ListTeaching(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("error getting teaching assignments: %w", err)
		}
		for _, t := range teaching {
			key := t.FacultyID + "/" + t.SemesterID
			courses[key] = append(courses[key], dto.ScheduleCourse{
				ID:            t.CourseInstanceID,
				CatalogNumber: t.Prefix + " " + t.Number,
			})
		}
	}

	semesterByLabel := map[string]string{}
	for _, sem := range selected {
		semesterByLabel[sem.Label()] = sem.ID
	}

	block := func(facultyID, term string, calendarYear int) dto.FacultySemesterBlock {
		b := dto.FacultySemesterBlock{
			Term:         term,
			CalendarYear: calendarYear,
			Courses:      []dto.ScheduleCourse{},
		}
		semesterID, ok := semesterByLabel[academic.SemesterLabel(term, calendarYear)]
		if !ok {
			return b
		}
		key := facultyID + "/" + semesterID
		if a, ok := absences[key]; ok {
			b.Absence = &dto.AbsenceData{ID: a.ID, Type: string(a.Type)}
		}
		if list, ok := courses[key]; ok {
			b.Courses = list
		}
		return b
	}

	result := make(map[int][]dto.FacultyScheduleResponse, len(years))
	for _, year := range years {
		list := make([]dto.FacultyScheduleResponse, 0, len(faculty))
		for _, f := range faculty {
			entry := dto.FacultyScheduleResponse{
				ID:           f.ID,
				FirstName:    f.FirstName,
				LastName:     f.LastName,
				Category:     string(f.Category),
				JointWith:    f.JointWith,
				AcademicYear: year,
				Fall:         block(f.ID, academic.Fall, academic.CalendarYear(academic.Fall, year)),
				Spring:       block(f.ID, academic.Spring, academic.CalendarYear(academic.Spring, year)),
			}
			if f.Area != nil {
				entry.Area = f.Area.Name
			}
			list = append(list, entry)
		}
		result[year] = list
	}
	return result, nil
}

// UpdateAbsence changes the type of an absence
func (s *facultyServiceImpl) UpdateAbsence(ctx context.Context, id string, req *dto.AbsenceRequest) (*dto.AbsenceResponse, error) {
	absence, err := s.absences.UpdateAbsenceType(ctx, id, models.AbsenceType(req.Type))
	if err != nil {
		return nil, fmt.Errorf("error updating absence: %w", err)
	}
	return &dto.AbsenceResponse{
		ID:        absence.ID,
		FacultyID: absence.FacultyID,
		Type:      string(absence.Type),
	}, nil
}
