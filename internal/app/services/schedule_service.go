package services

import (
	"context"
	"fmt"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/helpers"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// ScheduleService defines the interface for the weekly schedule view
type ScheduleService interface {
	Schedule(ctx context.Context, term models.Term, calendarYear int) ([]dto.ScheduleEntryResponse, error)
}

// scheduleServiceImpl implements ScheduleService
type scheduleServiceImpl struct {
	meetings MeetingStore
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(meetings MeetingStore) ScheduleService {
	return &scheduleServiceImpl{meetings: meetings}
}

// Schedule returns every course meeting of a semester, by weekday then start time
func (s *scheduleServiceImpl) Schedule(ctx context.Context, term models.Term, calendarYear int) ([]dto.ScheduleEntryResponse, error) {
	meetings, err := s.meetings.ListScheduledMeetings(ctx, term, calendarYear)
	if err != nil {
		return nil, fmt.Errorf("error getting scheduled meetings: %w", err)
	}

	result := make([]dto.ScheduleEntryResponse, 0, len(meetings))
	for _, m := range meetings {
		beginHour, beginMinute, err := helpers.SplitClockTime(m.StartTime)
		if err != nil {
			logger.Warn().Err(err).Str("meetingID", m.ID).Msg("Skipping meeting with malformed start time")
			continue
		}
		endHour, endMinute, err := helpers.SplitClockTime(m.EndTime)
		if err != nil {
			logger.Warn().Err(err).Str("meetingID", m.ID).Msg("Skipping meeting with malformed end time")
			continue
		}

		entry := dto.ScheduleEntryResponse{
			ID:      m.ID,
			Begin:   dto.ClockTime{Hour: beginHour, Minute: beginMinute},
			End:     dto.ClockTime{Hour: endHour, Minute: endMinute},
			Weekday: string(m.Day),
			Course: dto.ScheduleCourseData{
				Area:   m.Area,
				Prefix: m.Prefix,
				Number: m.Number,
			},
		}
		if m.Room != "" {
			entry.Location = &dto.ScheduleLocation{
				Campus:   m.Campus,
				Building: m.Building,
				Room:     m.Room,
			}
		}
		result = append(result, entry)
	}
	return result, nil
}
