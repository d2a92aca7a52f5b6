package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
)

// CourseService defines the interface for catalog operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, id string, req *dto.CourseRequest) (*dto.CourseResponse, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courses CourseStore
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore) CourseService {
	return &courseServiceImpl{courses: courses}
}

func toCourseResponse(c *models.Course) dto.CourseResponse {
	resp := dto.CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Prefix:          c.Prefix,
		Number:          c.Number,
		CatalogNumber:   c.CatalogNumber(),
		IsUndergraduate: c.IsUndergraduate,
		Notes:           c.Notes,
		Private:         c.Private,
		SameAs:          c.SameAs,
		IsSEAS:          string(c.IsSEAS),
		Area:            dto.AreaData{ID: c.AreaID},
	}
	if c.TermPattern != nil {
		pattern := string(*c.TermPattern)
		resp.TermPattern = &pattern
	}
	if c.Area != nil {
		resp.Area = dto.AreaData{ID: c.Area.ID, Name: c.Area.Name}
	}
	return resp
}

// courseFromRequest copies the request fields onto a course and returns the
// trimmed area name
func courseFromRequest(course *models.Course, req *dto.CourseRequest) string {
	course.Title = strings.TrimSpace(req.Title)
	course.Prefix = strings.TrimSpace(req.Prefix)
	course.Number = strings.TrimSpace(req.Number)
	course.IsUndergraduate = req.IsUndergraduate
	course.Notes = req.Notes
	course.Private = req.Private
	course.SameAs = req.SameAs
	course.IsSEAS = models.IsSEAS(req.IsSEAS)
	course.TermPattern = nil
	if req.TermPattern != "" {
		pattern := models.TermPattern(req.TermPattern)
		course.TermPattern = &pattern
	}
	return strings.TrimSpace(req.Area)
}

// ListCourses returns the whole catalog
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting courses: %w", err)
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		result = append(result, toCourseResponse(c))
	}
	return result, nil
}

// CreateCourse adds a course to the catalog along with a blank instance per semester
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	course := &models.Course{}
	areaName := courseFromRequest(course, req)

	created, err := s.courses.CreateCourse(ctx, course, areaName)
	if err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	resp := toCourseResponse(created)
	return &resp, nil
}

// UpdateCourse replaces the editable fields of a course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courses.GetCourseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	areaName := courseFromRequest(course, req)

	updated, err := s.courses.UpdateCourse(ctx, course, areaName)
	if err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	resp := toCourseResponse(updated)
	return &resp, nil
}
