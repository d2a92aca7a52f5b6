package services

import (
	"context"
	"testing"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseService_CreateCourse(t *testing.T) {
	store := newMemoryStore()
	store.addSemester(models.TermFall, 2020)
	store.addSemester(models.TermSpring, 2021)
	svc := NewCourseService(store)
	ctx := context.Background()

	req := &dto.CourseRequest{
		Area: " CS ", Prefix: "CS", Number: "050", Title: " Intro ",
		IsSEAS: "Y", TermPattern: "BOTH",
	}
	course, err := svc.CreateCourse(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "CS 050", course.CatalogNumber)
	assert.Equal(t, "Intro", course.Title)
	assert.Equal(t, "CS", course.Area.Name)
	require.NotNil(t, course.TermPattern)
	assert.Equal(t, "BOTH", *course.TermPattern)
	assert.Len(t, store.areas, 1, "unknown area names are created")
	assert.Len(t, store.instances, 2, "an instance per semester")

	_, err = svc.CreateCourse(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCourseService_UpdateCourse(t *testing.T) {
	store := newMemoryStore()
	area := store.addArea("CS")
	existing := store.addCourse(area, "CS", "050", "Intro")
	svc := NewCourseService(store)
	ctx := context.Background()

	updated, err := svc.UpdateCourse(ctx, existing.ID, &dto.CourseRequest{
		Area: "CS", Prefix: "CS", Number: "050", Title: "Intro to CS", IsSEAS: "N",
	})
	require.NoError(t, err)
	assert.Equal(t, "Intro to CS", updated.Title)
	assert.Equal(t, "N", updated.IsSEAS)
	assert.Nil(t, updated.TermPattern)

	_, err = svc.UpdateCourse(ctx, "00000000-0000-0000-0000-000000000000", &dto.CourseRequest{})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCourseService_ListCourses(t *testing.T) {
	store := newMemoryStore()
	area := store.addArea("AM")
	store.addCourse(area, "AM", "021", "Calculus")

	courses, err := NewCourseService(store).ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "AM 021", courses[0].CatalogNumber)
	assert.Equal(t, dto.AreaData{ID: area.ID, Name: "AM"}, courses[0].Area)
}
