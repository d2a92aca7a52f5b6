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

func TestMeetingService_ReplaceMeetings(t *testing.T) {
	store := newMemoryStore()
	fall := store.addSemester(models.TermFall, 2020)
	course := store.addCourse(store.addArea("CS"), "CS", "050", "Intro")
	store.rooms = []models.Room{{ID: "6f1c0d2e-3a1b-4c5d-8e9f-0a1b2c3d4e5f", Name: "G115", Building: "Maxwell Dworkin", Campus: "Cambridge", Capacity: 60}}
	ci := store.instanceOf(course.ID, fall.ID)
	svc := NewMeetingService(store, store)
	ctx := context.Background()

	saved, err := svc.ReplaceMeetings(ctx, ci.ID, []dto.MeetingRequest{
		{Day: "MON", StartTime: "10:30", EndTime: "11:45", RoomID: store.rooms[0].ID},
		{Day: "WED", StartTime: "10:30", EndTime: "11:45"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.NotNil(t, saved[0].Room)
	assert.Equal(t, "Maxwell Dworkin", saved[0].Room.Building)
	assert.Nil(t, saved[1].Room)
	assert.Len(t, store.meetings, 2)

	t.Run("replacing drops the old list", func(t *testing.T) {
		saved, err := svc.ReplaceMeetings(ctx, ci.ID, []dto.MeetingRequest{
			{Day: "FRI", StartTime: "09:00", EndTime: "10:00"},
		})
		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.Len(t, store.meetings, 1)
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := svc.ReplaceMeetings(ctx, "missing", nil)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.ReplaceMeetings(ctx, ci.ID, []dto.MeetingRequest{
			{Day: "MON", StartTime: "10:30", EndTime: "11:45", RoomID: "9b2f3a55-5a3b-4c63-8d43-8f1f7f0f2b11"},
		})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		assert.Len(t, store.meetings, 1, "nothing is replaced")
	})
}

func TestMeetingService_RoomAvailability(t *testing.T) {
	store := newMemoryStore()
	store.rooms = []models.Room{{ID: "r1", Name: "G115"}, {ID: "r2", Name: "B164"}}
	store.bookings = []models.RoomBooking{
		{MeetingID: "m1", RoomID: "r1", ParentID: "p1", Title: "CS 050"},
		{MeetingID: "m2", RoomID: "r1", ParentID: "p2", Title: "Reading group"},
	}
	svc := NewMeetingService(store, store)

	query := &dto.RoomAvailabilityQuery{
		CalendarYear: 2020, Term: "FALL", Day: "MON", StartTime: "10:00", EndTime: "11:00", ExcludeParent: "p2",
	}
	rooms, err := svc.RoomAvailability(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, []string{"CS 050"}, rooms[0].MeetingTitles)
	assert.Equal(t, []string{}, rooms[1].MeetingTitles)

	assert.Equal(t, models.TermFall, store.lastBookingFilter.Term)
	assert.Equal(t, models.DayMonday, store.lastBookingFilter.Day)
	assert.Equal(t, "10:00", store.lastBookingFilter.StartTime)

	all, err := svc.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
