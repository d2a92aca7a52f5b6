package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type instanceFixture struct {
	store  *memoryStore
	svc    CourseInstanceService
	course *models.Course
	fall   models.Semester
	spring models.Semester
}

func newInstanceFixture(t *testing.T) *instanceFixture {
	t.Helper()
	store := newMemoryStore()
	fx := &instanceFixture{store: store}
	fx.fall = store.addSemester(models.TermFall, 2020)
	fx.spring = store.addSemester(models.TermSpring, 2021)
	store.addSemester(models.TermFall, 2021)
	store.addSemester(models.TermSpring, 2022)
	area := store.addArea("CS")
	fx.course = store.addCourse(area, "CS", "050", "Intro")
	fx.svc = NewCourseInstanceService(store, store, store, store, store, fixedClock(2020, time.October))
	return fx
}

func TestCourseInstanceService_ListByAcademicYears(t *testing.T) {
	fx := newInstanceFixture(t)
	ctx := context.Background()

	malan := fx.store.addFaculty(models.Area{ID: fx.course.AreaID, Name: "CS"}, "David", "Malan")
	yu := fx.store.addFaculty(models.Area{ID: fx.course.AreaID, Name: "CS"}, "Brian", "Yu")
	fallInstance := fx.store.instanceOf(fx.course.ID, fx.fall.ID)
	require.NoError(t, fx.store.ReplaceInstructors(ctx, fallInstance.ID, []string{yu.ID, malan.ID}))
	instanceID := fallInstance.ID
	fx.store.meetings = append(fx.store.meetings, &models.Meeting{
		ID: "m1", Day: models.DayTuesday, StartTime: "10:30", EndTime: "11:45", CourseInstanceID: &instanceID,
	})

	t.Run("selected years", func(t *testing.T) {
		years, err := fx.svc.ListByAcademicYears(ctx, "2021,1999,2021")
		require.NoError(t, err)
		require.Len(t, years, 1)
		require.Len(t, years[0], 1)

		row := years[0][0]
		assert.Equal(t, 2021, row.AcademicYear)
		assert.Equal(t, "CS 050", row.CatalogNumber)
		assert.Equal(t, "CS", row.Area)
		assert.Equal(t, 2020, row.Fall.CalendarYear)
		assert.Equal(t, 2021, row.Spring.CalendarYear)
		assert.Equal(t, fallInstance.ID, row.Fall.ID)

		require.Len(t, row.Fall.Instructors, 2)
		assert.Equal(t, "Yu, Brian", row.Fall.Instructors[0].DisplayName)
		assert.Equal(t, "Malan, David", row.Fall.Instructors[1].DisplayName)
		require.Len(t, row.Fall.Meetings, 1)
		assert.Equal(t, "TUE", row.Fall.Meetings[0].Day)
		assert.Empty(t, row.Spring.Instructors)
		assert.NotNil(t, row.Spring.Meetings)
	})

	t.Run("every year when omitted", func(t *testing.T) {
		years, err := fx.svc.ListByAcademicYears(ctx, "")
		require.NoError(t, err)
		require.Len(t, years, 2)
		assert.Equal(t, 2021, years[0][0].AcademicYear)
		assert.Equal(t, 2022, years[1][0].AcademicYear)
	})

	t.Run("unknown years only", func(t *testing.T) {
		years, err := fx.svc.ListByAcademicYears(ctx, "1990")
		require.NoError(t, err)
		assert.Empty(t, years)
	})
}

func TestCourseInstanceService_MultiYearPlan(t *testing.T) {
	fx := newInstanceFixture(t)
	ctx := context.Background()

	plans, err := fx.svc.MultiYearPlan(ctx, DefaultPlanYears)
	require.NoError(t, err)
	require.Len(t, plans, 1)

	plan := plans[0]
	assert.Equal(t, "CS 050", plan.CatalogNumber)
	require.Len(t, plan.Semesters, 4)
	assert.Equal(t, "FALL", plan.Semesters[0].Term)
	assert.Equal(t, 2021, plan.Semesters[0].AcademicYear)
	assert.Equal(t, "SPRING", plan.Semesters[1].Term)
	assert.Equal(t, 2022, plan.Semesters[3].AcademicYear)
	assert.NotEmpty(t, plan.Semesters[0].Instance.ID)
	assert.NotNil(t, plan.Semesters[0].Instance.Faculty)

	one, err := fx.svc.MultiYearPlan(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one[0].Semesters, 2)

	for _, n := range []int{0, -1, MaxPlanYears + 1} {
		_, err := fx.svc.MultiYearPlan(ctx, n)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "numYears=%d", n)
	}
}

func TestCourseInstanceService_UpdateInstance(t *testing.T) {
	fx := newInstanceFixture(t)
	ci := fx.store.instanceOf(fx.course.ID, fx.spring.ID)
	enrollment := 42
	instanceID := ci.ID
	fx.store.meetings = append(fx.store.meetings, &models.Meeting{
		ID: "m1", Day: models.DayMonday, StartTime: "09:00", EndTime: "10:15", CourseInstanceID: &instanceID,
	})

	block, err := fx.svc.UpdateInstance(context.Background(), ci.ID, &dto.UpdateCourseInstanceRequest{
		Offered: "Y", ActualEnrollment: &enrollment,
	})
	require.NoError(t, err)
	assert.Equal(t, "Y", block.Offered)
	assert.Equal(t, 2021, block.CalendarYear)
	require.NotNil(t, block.ActualEnrollment)
	assert.Equal(t, 42, *block.ActualEnrollment)
	assert.Equal(t, models.OfferedYes, fx.store.instanceOf(fx.course.ID, fx.spring.ID).Offered)
	require.Len(t, block.Meetings, 1)
	assert.Equal(t, "m1", block.Meetings[0].ID)
	assert.Equal(t, "09:00", block.Meetings[0].StartTime)

	_, err = fx.svc.UpdateInstance(context.Background(), "missing", &dto.UpdateCourseInstanceRequest{})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCourseInstanceService_ReplaceInstructors(t *testing.T) {
	fx := newInstanceFixture(t)
	ctx := context.Background()
	area := models.Area{ID: fx.course.AreaID, Name: "CS"}
	a := fx.store.addFaculty(area, "Ada", "Lovelace")
	b := fx.store.addFaculty(area, "", "Turing")
	ci := fx.store.instanceOf(fx.course.ID, fx.fall.ID)

	list, err := fx.svc.ReplaceInstructors(ctx, ci.ID, []string{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Turing", list[0].DisplayName)
	assert.Equal(t, 0, list[0].InstructorOrder)
	assert.Equal(t, "Lovelace, Ada", list[1].DisplayName)

	_, err = fx.svc.ReplaceInstructors(ctx, ci.ID, []string{a.ID, a.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = fx.svc.ReplaceInstructors(ctx, ci.ID, []string{a.ID, strings.ToUpper(a.ID)})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	msg, _ := apperrors.Message(err)
	assert.Equal(t, "Instructors may only be listed once", msg)

	upper, err := fx.svc.ReplaceInstructors(ctx, ci.ID, []string{strings.ToUpper(b.ID)})
	require.NoError(t, err)
	require.Len(t, upper, 1)
	assert.Equal(t, b.ID, upper[0].ID)

	_, err = fx.svc.ReplaceInstructors(ctx, ci.ID, []string{a.ID, "9b2f3a55-5a3b-4c63-8d43-8f1f7f0f2b11"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = fx.svc.ReplaceInstructors(ctx, "missing", []string{a.ID})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	cleared, err := fx.svc.ReplaceInstructors(ctx, ci.ID, []string{})
	require.NoError(t, err)
	assert.Empty(t, cleared)
	assert.NotNil(t, cleared)
}
