package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/db"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/seas-computing/course-planner/internal/pkg/dberrors"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// MeetingRepository handles meeting operations
type MeetingRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(database *db.PostgresDB) *MeetingRepository {
	return &MeetingRepository{
		db: database,
		sb: psql,
	}
}

func parentColumn(kind models.MeetingParentKind) string {
	if kind == models.MeetingParentNonClassEvent {
		return "non_class_event_id"
	}
	return "course_instance_id"
}

// FindParentKind reports whether id is a course instance or a non-class event.
func (r *MeetingRepository) FindParentKind(ctx context.Context, id string) (models.MeetingParentKind, error) {
	sql, args, err := r.sb.Select().
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM course_instance WHERE id = ?)", id)).
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM non_class_event WHERE id = ?)", id)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find meeting parent SQL")
		return "", fmt.Errorf("failed to build find meeting parent query: %w", err)
	}

	var isInstance, isEvent bool
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&isInstance, &isEvent); err != nil {
		logger.Error().Err(err).Str("parentID", id).Msg("Error executing find meeting parent query")
		return "", fmt.Errorf("error finding meeting parent: %w", err)
	}

	switch {
	case isInstance:
		return models.MeetingParentCourseInstance, nil
	case isEvent:
		return models.MeetingParentNonClassEvent, nil
	default:
		return "", apperrors.ErrMeetingParentNotFound
	}
}

// ListMeetings returns the meetings of the given parents with their rooms,
// ordered by weekday and start time
func (r *MeetingRepository) ListMeetings(ctx context.Context, kind models.MeetingParentKind, parentIDs []string) ([]*models.Meeting, error) {
	return listMeetings(ctx, r.db.Pool, squirrel.Eq{"m." + parentColumn(kind): parentIDs})
}

func listMeetings(ctx context.Context, q db.Querier, where squirrel.Sqlizer) ([]*models.Meeting, error) {
	sql, args, err := psql.Select(
		"m.id", "m.day", "m.start_time", "m.end_time", "m.room_id",
		"m.course_instance_id", "m.non_class_event_id",
		"r.name", "r.capacity", "r.building_id", "b.name", "c.name",
	).
		From("meeting m").
		LeftJoin("room r ON r.id = m.room_id").
		LeftJoin("building b ON b.id = r.building_id").
		LeftJoin("campus c ON c.id = b.campus_id").
		Where(where).
		OrderBy(dayOrderSQL("m.day"), "m.start_time ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list meetings SQL")
		return nil, fmt.Errorf("failed to build list meetings query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list meetings query")
		return nil, fmt.Errorf("error querying meetings: %w", err)
	}
	defer rows.Close()

	meetings := []*models.Meeting{}
	for rows.Next() {
		m := &models.Meeting{}
		var (
			roomName, buildingID, buildingName, campusName *string
			capacity                                       *int
		)
		if err := rows.Scan(&m.ID, &m.Day, &m.StartTime, &m.EndTime, &m.RoomID,
			&m.CourseInstanceID, &m.NonClassEventID,
			&roomName, &capacity, &buildingID, &buildingName, &campusName); err != nil {
			logger.Error().Err(err).Msg("Error scanning meeting row")
			return nil, fmt.Errorf("error scanning meeting row: %w", err)
		}
		if m.RoomID != nil {
			m.Room = &models.Room{ID: *m.RoomID}
			if roomName != nil {
				m.Room.Name = *roomName
			}
			if capacity != nil {
				m.Room.Capacity = *capacity
			}
			if buildingID != nil {
				m.Room.BuildingID = *buildingID
			}
			if buildingName != nil {
				m.Room.Building = *buildingName
			}
			if campusName != nil {
				m.Room.Campus = *campusName
			}
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating meeting rows")
		return nil, fmt.Errorf("error iterating meeting rows: %w", err)
	}

	return meetings, nil
}

// ReplaceMeetings deletes the parent's meetings and stores meetings in their
// place in one transaction. Meetings keep their id when one is given.
func (r *MeetingRepository) ReplaceMeetings(ctx context.Context, kind models.MeetingParentKind, parentID string, meetings []*models.Meeting) ([]*models.Meeting, error) {
	column := parentColumn(kind)

	var saved []*models.Meeting
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := psql.Delete("meeting").
			Where(squirrel.Eq{column: parentID}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building clear meetings SQL")
			return fmt.Errorf("failed to build clear meetings query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("parentID", parentID).Msg("Error executing clear meetings query")
			return fmt.Errorf("error clearing meetings: %w", err)
		}

		if len(meetings) > 0 {
			insert := psql.Insert("meeting").
				Columns("id", "day", "start_time", "end_time", "room_id", column)
			for _, m := range meetings {
				if m.ID == "" {
					m.ID = uuid.NewString()
				}
				insert = insert.Values(m.ID, m.Day, m.StartTime, m.EndTime, m.RoomID, parentID)
			}

			sql, args, err = insert.ToSql()
			if err != nil {
				logger.Error().Err(err).Msg("Error building insert meetings SQL")
				return fmt.Errorf("failed to build insert meetings query: %w", err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				switch {
				case dberrors.IsForeignKeyError(err):
					return apperrors.ErrRoomNotFound
				case dberrors.IsDuplicateKeyError(err):
					return apperrors.NewValidationError("meetings", "A meeting id may only be used once")
				case dberrors.IsCheckViolation(err):
					return apperrors.NewValidationError("meetings", "Meeting end time must be later than its start time")
				}
				logger.Error().Err(err).Str("parentID", parentID).Msg("Error executing insert meetings query")
				return fmt.Errorf("error inserting meetings: %w", err)
			}
		}

		saved, err = listMeetings(ctx, tx, squirrel.Eq{"m." + column: parentID})
		return err
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// ListScheduledMeetings returns every course meeting of a semester, flattened
// for the weekly schedule
func (r *MeetingRepository) ListScheduledMeetings(ctx context.Context, term models.Term, calendarYear int) ([]models.ScheduledMeeting, error) {
	sql, args, err := r.sb.Select(
		"m.id", "m.day", "m.start_time", "m.end_time",
		"COALESCE(cp.name, '')", "COALESCE(b.name, '')", "COALESCE(r.name, '')",
		"a.name", "c.prefix", "c.number",
	).
		From("meeting m").
		Join("course_instance ci ON ci.id = m.course_instance_id").
		Join("semester s ON s.id = ci.semester_id").
		Join("course c ON c.id = ci.course_id").
		Join("area a ON a.id = c.area_id").
		LeftJoin("room r ON r.id = m.room_id").
		LeftJoin("building b ON b.id = r.building_id").
		LeftJoin("campus cp ON cp.id = b.campus_id").
		Where(squirrel.Eq{"s.term": term, "s.calendar_year": calendarYear}).
		OrderBy(dayOrderSQL("m.day"), "m.start_time ASC", "c.prefix ASC", "c.number ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building schedule SQL")
		return nil, fmt.Errorf("failed to build schedule query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing schedule query")
		return nil, fmt.Errorf("error querying schedule: %w", err)
	}

	meetings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ScheduledMeeting])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting schedule rows")
		return nil, fmt.Errorf("error collecting schedule: %w", err)
	}
	return meetings, nil
}

// dayOrderSQL orders a day column Monday first
func dayOrderSQL(column string) string {
	return "array_position(ARRAY['MON','TUE','WED','THU','FRI','SAT','SUN']::text[], " + column + ")"
}
