package services

import (
	"context"
	"fmt"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/app/repositories"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/seas-computing/course-planner/internal/pkg/helpers"
)

// MeetingService defines the interface for meeting and room operations
type MeetingService interface {
	ReplaceMeetings(ctx context.Context, parentID string, meetings []dto.MeetingRequest) ([]dto.MeetingResponse, error)
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
	RoomAvailability(ctx context.Context, query *dto.RoomAvailabilityQuery) ([]dto.RoomAvailabilityResponse, error)
}

// meetingServiceImpl implements MeetingService
type meetingServiceImpl struct {
	meetings  MeetingStore
	locations LocationStore
}

// NewMeetingService creates a new MeetingService
func NewMeetingService(meetings MeetingStore, locations LocationStore) MeetingService {
	return &meetingServiceImpl{
		meetings:  meetings,
		locations: locations,
	}
}

func toRoomResponse(r *models.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:       r.ID,
		Name:     r.Name,
		Campus:   r.Campus,
		Building: r.Building,
		Capacity: r.Capacity,
	}
}

func toMeetingResponse(m *models.Meeting) dto.MeetingResponse {
	resp := dto.MeetingResponse{
		ID:        m.ID,
		Day:       string(m.Day),
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
	}
	if m.Room != nil {
		room := toRoomResponse(m.Room)
		resp.Room = &room
	}
	return resp
}

// ReplaceMeetings swaps the meeting list of a course instance or non-class
// event for meetings and returns what was saved
func (s *meetingServiceImpl) ReplaceMeetings(ctx context.Context, parentID string, meetings []dto.MeetingRequest) ([]dto.MeetingResponse, error) {
	kind, err := s.meetings.FindParentKind(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("error finding meeting parent: %w", err)
	}

	roomIDs := []string{}
	seenRooms := map[string]bool{}
	toSave := make([]*models.Meeting, 0, len(meetings))
	for _, req := range meetings {
		m := &models.Meeting{
			ID:        req.ID,
			Day:       models.Day(req.Day),
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			RoomID:    helpers.NullIfEmpty(req.RoomID),
		}
		if roomID := helpers.StringValue(m.RoomID); roomID != "" {
			if !seenRooms[roomID] {
				seenRooms[roomID] = true
				roomIDs = append(roomIDs, roomID)
			}
		}
		toSave = append(toSave, m)
	}

	if len(roomIDs) > 0 {
		count, err := s.locations.CountRooms(ctx, roomIDs)
		if err != nil {
			return nil, fmt.Errorf("error checking rooms: %w", err)
		}
		if count != len(roomIDs) {
			return nil, apperrors.ErrRoomNotFound
		}
	}

	saved, err := s.meetings.ReplaceMeetings(ctx, kind, parentID, toSave)
	if err != nil {
		return nil, fmt.Errorf("error saving meetings: %w", err)
	}

	result := make([]dto.MeetingResponse, 0, len(saved))
	for _, m := range saved {
		result = append(result, toMeetingResponse(m))
	}
	return result, nil
}

// ListRooms returns every room
func (s *meetingServiceImpl) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.locations.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting rooms: %w", err)
	}

	result := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, toRoomResponse(&rooms[i]))
	}
	return result, nil
}

// RoomAvailability returns every room with the titles of the meetings that
// overlap the requested slot
func (s *meetingServiceImpl) RoomAvailability(ctx context.Context, query *dto.RoomAvailabilityQuery) ([]dto.RoomAvailabilityResponse, error) {
	rooms, err := s.locations.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting rooms: %w", err)
	}

	bookings, err := s.locations.ListBookings(ctx, repositories.BookingFilter{
		Term:          models.Term(query.Term),
		CalendarYear:  query.CalendarYear,
		Day:           models.Day(query.Day),
		StartTime:     query.StartTime,
		EndTime:       query.EndTime,
		ExcludeParent: query.ExcludeParent,
	})
	if err != nil {
		return nil, fmt.Errorf("error getting room bookings: %w", err)
	}

	titles := map[string][]string{}
	for _, b := range bookings {
		titles[b.RoomID] = append(titles[b.RoomID], b.Title)
	}

	result := make([]dto.RoomAvailabilityResponse, 0, len(rooms))
	for i := range rooms {
		booked := titles[rooms[i].ID]
		if booked == nil {
			booked = []string{}
		}
		result = append(result, dto.RoomAvailabilityResponse{
			RoomResponse:  toRoomResponse(&rooms[i]),
			MeetingTitles: booked,
		})
	}
	return result, nil
}
