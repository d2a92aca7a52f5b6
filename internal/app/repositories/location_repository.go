package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/db"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// LocationRepository handles campus, building and room queries
type LocationRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(database *db.PostgresDB) *LocationRepository {
	return &LocationRepository{
		db: database,
		sb: psql,
	}
}

func (r *LocationRepository) roomQuery() squirrel.SelectBuilder {
	return r.sb.Select("r.id", "r.name", "r.capacity", "r.building_id", "b.name", "c.name").
		From("room r").
		Join("building b ON b.id = r.building_id").
		Join("campus c ON c.id = b.campus_id")
}

// ListRooms returns every room ordered by campus, building and room name
func (r *LocationRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	sql, args, err := r.roomQuery().
		OrderBy("c.name ASC", "b.name ASC", "r.name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list rooms SQL")
		return nil, fmt.Errorf("failed to build list rooms query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list rooms query")
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}

	rooms, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Room])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting room rows")
		return nil, fmt.Errorf("error collecting rooms: %w", err)
	}
	return rooms, nil
}

// CountRooms returns how many of ids are existing rooms
func (r *LocationRepository) CountRooms(ctx context.Context, ids []string) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("room").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count rooms SQL")
		return 0, fmt.Errorf("failed to build count rooms query: %w", err)
	}

	var count int
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count rooms query")
		return 0, fmt.Errorf("error counting rooms: %w", err)
	}
	return count, nil
}

// BookingFilter selects meetings that overlap a slot of one weekday in one semester
type BookingFilter struct {
	Term          models.Term
	CalendarYear  int
	Day           models.Day
	StartTime     string
	EndTime       string
	ExcludeParent string
}

// ListBookings returns every meeting that occupies a room during the filter's
// slot. Two slots overlap when each starts before the other ends.
func (r *LocationRepository) ListBookings(ctx context.Context, filter BookingFilter) ([]models.RoomBooking, error) {
	where := squirrel.And{
		squirrel.NotEq{"m.room_id": nil},
		squirrel.Eq{"m.day": filter.Day},
		squirrel.Lt{"m.start_time": filter.EndTime},
		squirrel.Gt{"m.end_time": filter.StartTime},
		squirrel.Eq{"s.term": filter.Term},
		squirrel.Eq{"s.calendar_year": filter.CalendarYear},
	}
	if filter.ExcludeParent != "" {
		where = append(where, squirrel.Expr(
			"COALESCE(m.course_instance_id, m.non_class_event_id) <> ?", filter.ExcludeParent))
	}

	sql, args, err := r.sb.Select(
		"m.id",
		"m.room_id",
		"COALESCE(m.course_instance_id, m.non_class_event_id)",
		"COALESCE(c.prefix || ' ' || c.number, ncp.title)",
	).
		From("meeting m").
		LeftJoin("course_instance ci ON ci.id = m.course_instance_id").
		LeftJoin("course c ON c.id = ci.course_id").
		LeftJoin("non_class_event nce ON nce.id = m.non_class_event_id").
		LeftJoin("non_class_parent ncp ON ncp.id = nce.non_class_parent_id").
		Join("semester s ON s.id = COALESCE(ci.semester_id, nce.semester_id)").
		Where(where).
		OrderBy("m.start_time ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list bookings SQL")
		return nil, fmt.Errorf("failed to build list bookings query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list bookings query")
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}

	bookings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.RoomBooking])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting booking rows")
		return nil, fmt.Errorf("error collecting bookings: %w", err)
	}
	return bookings, nil
}
