package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/academic"
	"github.com/seas-computing/course-planner/internal/pkg/helpers"
)

// NonClassService defines the interface for non-class event operations
type NonClassService interface {
	ListByAcademicYears(ctx context.Context, rawYears string) (map[int][]dto.NonClassYearResponse, error)
	CreateParent(ctx context.Context, req *dto.NonClassParentRequest) (*dto.NonClassParentResponse, error)
}

// nonClassServiceImpl implements NonClassService
type nonClassServiceImpl struct {
	nonClass  NonClassStore
	areas     AreaStore
	semesters SemesterStore
	meetings  MeetingStore
	clock     Clock
}

// NewNonClassService creates a new NonClassService
func NewNonClassService(
	nonClass NonClassStore,
	areas AreaStore,
	semesters SemesterStore,
	meetings MeetingStore,
	clock Clock,
) NonClassService {
	return &nonClassServiceImpl{
		nonClass:  nonClass,
		areas:     areas,
		semesters: semesters,
		meetings:  meetings,
		clock:     clock,
	}
}

func toNonClassParentResponse(p *models.NonClassParent) dto.NonClassParentResponse {
	resp := dto.NonClassParentResponse{
		ID:           p.ID,
		Title:        p.Title,
		ContactName:  p.ContactName,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		Notes:        p.Notes,
		ExpectedSize: p.ExpectedSize,
		Area:         dto.AreaData{ID: p.AreaID},
		CourseID:     p.CourseID,
	}
	if p.Area != nil {
		resp.Area.Name = p.Area.Name
	}
	return resp
}

// ListByAcademicYears groups every non-class parent by academic year with its
// fall and spring events. An empty rawYears selects the current academic year.
func (s *nonClassServiceImpl) ListByAcademicYears(ctx context.Context, rawYears string) (map[int][]dto.NonClassYearResponse, error) {
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

	parents, err := s.nonClass.ListParents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting non-class parents: %w", err)
	}

	events := map[string]*models.NonClassEvent{}
	meetings := map[string][]dto.MeetingResponse{}
	if len(selected) > 0 {
		list, err := s.nonClass.ListEventsBySemesters(ctx, semesterIDs(selected))
		if err != nil {
			return nil, fmt.Errorf("error getting non-class events: %w", err)
		}
		eventIDs := make([]string, 0, len(list))
		for _, e := range list {
			events[e.NonClassParentID+"/"+e.SemesterID] = e
			eventIDs = append(eventIDs, e.ID)
		}

		if len(eventIDs) > 0 {
			ms, err := s.meetings.ListMeetings(ctx, models.MeetingParentNonClassEvent, eventIDs)
			if err != nil {
				return nil, fmt.Errorf("error getting meetings: %w", err)
			}
			for _, m := range ms {
				if m.NonClassEventID == nil {
					continue
				}
				meetings[*m.NonClassEventID] = append(meetings[*m.NonClassEventID], toMeetingResponse(m))
			}
		}
	}

	semesterByLabel := map[string]string{}
	for _, sem := range selected {
		semesterByLabel[sem.Label()] = sem.ID
	}

	block := func(parentID, term string, calendarYear int) dto.NonClassEventBlock {
		b := dto.NonClassEventBlock{CalendarYear: calendarYear, Meetings: []dto.MeetingResponse{}}
		semesterID, ok := semesterByLabel[academic.SemesterLabel(term, calendarYear)]
		if !ok {
			return b
		}
		if e, ok := events[parentID+"/"+semesterID]; ok {
			b.ID = e.ID
			b.Private = e.Private
			if list, ok := meetings[e.ID]; ok {
				b.Meetings = list
			}
		}
		return b
	}

	result := make(map[int][]dto.NonClassYearResponse, len(years))
	for _, year := range years {
		list := make([]dto.NonClassYearResponse, 0, len(parents))
		for _, p := range parents {
			list = append(list, dto.NonClassYearResponse{
				NonClassParentResponse: toNonClassParentResponse(p),
				AcademicYear:           year,
				Fall:                   block(p.ID, academic.Fall, academic.CalendarYear(academic.Fall, year)),
				Spring:                 block(p.ID, academic.Spring, academic.CalendarYear(academic.Spring, year)),
			})
		}
		result[year] = list
	}
	return result, nil
}

// CreateParent adds a non-class parent with one event per existing semester
func (s *nonClassServiceImpl) CreateParent(ctx context.Context, req *dto.NonClassParentRequest) (*dto.NonClassParentResponse, error) {
	area, err := s.areas.GetAreaByID(ctx, req.Area)
	if err != nil {
		return nil, fmt.Errorf("error getting area: %w", err)
	}

	parent := &models.NonClassParent{
		Title:        strings.TrimSpace(req.Title),
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
		ExpectedSize: req.ExpectedSize,
		AreaID:       area.ID,
		Area:         area,
		CourseID:     helpers.NullIfEmpty(req.CourseID),
	}

	created, err := s.nonClass.CreateParent(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("error creating non-class parent: %w", err)
	}
	if created.Area == nil {
		created.Area = area
	}
	resp := toNonClassParentResponse(created)
	return &resp, nil
}
