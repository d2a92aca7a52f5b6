package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/academic"
)

// SemesterService defines the interface for semester lookups
type SemesterService interface {
	YearList(ctx context.Context) ([]string, error)
	SemesterList(ctx context.Context) ([]string, error)
	Metadata(ctx context.Context) (*dto.MetadataResponse, error)
}

// semesterServiceImpl implements SemesterService
type semesterServiceImpl struct {
	semesters SemesterStore
	areas     AreaStore
	courses   CourseStore
	clock     Clock
}

// NewSemesterService creates a new SemesterService
func NewSemesterService(semesters SemesterStore, areas AreaStore, courses CourseStore, clock Clock) SemesterService {
	return &semesterServiceImpl{
		semesters: semesters,
		areas:     areas,
		courses:   courses,
		clock:     clock,
	}
}

// academicYears returns the distinct academic years of semesters, ascending
func academicYears(semesters []models.Semester) []int {
	seen := map[int]bool{}
	years := []int{}
	for i := range semesters {
		y := semesters[i].AcademicYear()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

func sortSemesters(semesters []models.Semester) {
	sort.SliceStable(semesters, func(i, j int) bool {
		return semesters[i].Before(&semesters[j])
	})
}

// YearList returns every academic year that has a semester
func (s *semesterServiceImpl) YearList(ctx context.Context) ([]string, error) {
	semesters, err := s.semesters.ListSemesters(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting semesters: %w", err)
	}

	years := academicYears(semesters)
	result := make([]string, len(years))
	for i, y := range years {
		result[i] = strconv.Itoa(y)
	}
	return result, nil
}

// SemesterList returns every semester as "TERM YEAR", oldest first
func (s *semesterServiceImpl) SemesterList(ctx context.Context) ([]string, error) {
	semesters, err := s.semesters.ListSemesters(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting semesters: %w", err)
	}

	sortSemesters(semesters)
	result := make([]string, len(semesters))
	for i := range semesters {
		result[i] = semesters[i].Label()
	}
	return result, nil
}

// Metadata collects the lookup lists the client loads on start up
func (s *semesterServiceImpl) Metadata(ctx context.Context) (*dto.MetadataResponse, error) {
	areas, err := s.areas.ListAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting areas: %w", err)
	}
	semesters, err := s.SemesterList(ctx)
	if err != nil {
		return nil, err
	}
	prefixes, err := s.courses.ListCatalogPrefixes(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting catalog prefixes: %w", err)
	}

	areaNames := make([]string, len(areas))
	for i, a := range areas {
		areaNames[i] = a.Name
	}

	return &dto.MetadataResponse{
		CurrentAcademicYear: academic.CurrentAcademicYear(s.clock.now()),
		Areas:               areaNames,
		Semesters:           semesters,
		CatalogPrefixes:     prefixes,
	}, nil
}
