package services

import (
	"context"
	"testing"
	"time"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFacultyService(store *memoryStore) FacultyService {
	return NewFacultyService(store, store, store, store, fixedClock(2021, time.February))
}

func TestFacultyService_CreateFaculty(t *testing.T) {
	store := newMemoryStore()
	store.addSemester(models.TermFall, 2020)
	store.addSemester(models.TermSpring, 2021)
	area := store.addArea("CS")
	svc := newFacultyService(store)
	ctx := context.Background()

	created, err := svc.CreateFaculty(ctx, &dto.FacultyRequest{
		HUID: "12345678", FirstName: " Grace ", LastName: "Hopper", Category: "LADDER", Area: area.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", created.FirstName)
	require.NotNil(t, created.Area)
	assert.Equal(t, "CS", created.Area.Name)
	require.Len(t, store.absences, 2)
	for _, a := range store.absences {
		assert.Equal(t, models.AbsencePresent, a.Type)
	}

	t.Run("duplicate HUID", func(t *testing.T) {
		_, err := svc.CreateFaculty(ctx, &dto.FacultyRequest{
			HUID: "12345678", LastName: "Other", Category: "LADDER", Area: area.ID,
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown area", func(t *testing.T) {
		_, err := svc.CreateFaculty(ctx, &dto.FacultyRequest{
			HUID: "87654321", LastName: "Other", Category: "LADDER", Area: "9b2f3a55-5a3b-4c63-8d43-8f1f7f0f2b11",
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		msg, ok := apperrors.Message(err)
		require.True(t, ok)
		assert.Equal(t, "The entered Area does not exist", msg)
	})

	t.Run("no name", func(t *testing.T) {
		_, err := svc.CreateFaculty(ctx, &dto.FacultyRequest{
			HUID: "87654321", FirstName: " ", Category: "LADDER", Area: area.ID,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestFacultyService_UpdateFaculty(t *testing.T) {
	store := newMemoryStore()
	area := store.addArea("CS")
	other := store.addArea("AM")
	f := store.addFaculty(area, "Grace", "Hopper")
	svc := newFacultyService(store)

	updated, err := svc.UpdateFaculty(context.Background(), f.ID, &dto.FacultyRequest{
		HUID: f.HUID, LastName: "Hopper", Category: "NON_LADDER", Area: other.ID, JointWith: "AM 021",
	})
	require.NoError(t, err)
	assert.Equal(t, "NON_LADDER", updated.Category)
	assert.Equal(t, "AM", updated.Area.Name)
	assert.Equal(t, "", updated.FirstName)

	_, err = svc.UpdateFaculty(context.Background(), "missing", &dto.FacultyRequest{LastName: "X", Area: area.ID})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestFacultyService_ListInstructors(t *testing.T) {
	store := newMemoryStore()
	area := store.addArea("CS")
	store.addFaculty(area, "Grace", "Hopper")
	store.addFaculty(area, "Ada", "")
	store.addFaculty(area, "", "babbage")

	list, err := newFacultyService(store).ListInstructors(context.Background())
	require.NoError(t, err)
	names := []string{}
	for _, i := range list {
		names = append(names, i.DisplayName)
	}
	assert.Equal(t, []string{"Ada", "babbage", "Hopper, Grace"}, names)
}

func TestFacultyService_Schedule(t *testing.T) {
	store := newMemoryStore()
	fall := store.addSemester(models.TermFall, 2020)
	store.addSemester(models.TermSpring, 2021)
	store.addSemester(models.TermFall, 2021)
	area := store.addArea("CS")
	course := store.addCourse(area, "CS", "050", "Intro")
	f := store.addFaculty(area, "Grace", "Hopper")
	ci := store.instanceOf(course.ID, fall.ID)
	require.NoError(t, store.ReplaceInstructors(context.Background(), ci.ID, []string{f.ID}))
	svc := newFacultyService(store)

	t.Run("current year by default", func(t *testing.T) {
		schedule, err := svc.Schedule(context.Background(), "")
		require.NoError(t, err)
		require.Contains(t, schedule, 2021)
		require.Len(t, schedule[2021], 1)

		entry := schedule[2021][0]
		assert.Equal(t, "CS", entry.Area)
		assert.Equal(t, "FALL", entry.Fall.Term)
		assert.Equal(t, 2020, entry.Fall.CalendarYear)
		require.NotNil(t, entry.Fall.Absence)
		assert.Equal(t, "PRESENT", entry.Fall.Absence.Type)
		require.Len(t, entry.Fall.Courses, 1)
		assert.Equal(t, "CS 050", entry.Fall.Courses[0].CatalogNumber)
		assert.Empty(t, entry.Spring.Courses)
	})

	t.Run("requested years", func(t *testing.T) {
		schedule, err := svc.Schedule(context.Background(), "2022,2021,2030")
		require.NoError(t, err)
		assert.Len(t, schedule, 2)
		entry := schedule[2022][0]
		require.NotNil(t, entry.Fall.Absence)
		assert.Nil(t, entry.Spring.Absence, "SPRING 2022 does not exist")
	})
}

func TestFacultyService_UpdateAbsence(t *testing.T) {
	store := newMemoryStore()
	store.addSemester(models.TermFall, 2020)
	f := store.addFaculty(store.addArea("CS"), "Grace", "Hopper")
	svc := newFacultyService(store)

	resp, err := svc.UpdateAbsence(context.Background(), store.absences[0].ID, &dto.AbsenceRequest{Type: "SABBATICAL"})
	require.NoError(t, err)
	assert.Equal(t, f.ID, resp.FacultyID)
	assert.Equal(t, "SABBATICAL", resp.Type)

	_, err = svc.UpdateAbsence(context.Background(), "missing", &dto.AbsenceRequest{Type: "PRESENT"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
