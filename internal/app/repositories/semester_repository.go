package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/db"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// SemesterRepository handles semester database operations
type SemesterRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewSemesterRepository creates a new SemesterRepository
func NewSemesterRepository(database *db.PostgresDB) *SemesterRepository {
	return &SemesterRepository{
		db: database,
		sb: psql,
	}
}

// ListSemesters returns every semester in chronological order
func (r *SemesterRepository) ListSemesters(ctx context.Context) ([]models.Semester, error) {
	return listSemesters(ctx, r.db.Pool)
}

// CreateSemester inserts a semester if the term and year are not there yet.
func (r *SemesterRepository) CreateSemester(ctx context.Context, term models.Term, calendarYear int) error {
	sql, args, err := r.sb.Insert("semester").
		Columns("id", "term", "calendar_year").
		Values(uuid.NewString(), term, calendarYear).
		Suffix("ON CONFLICT (term, calendar_year) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create semester SQL")
		return fmt.Errorf("failed to build create semester query: %w", err)
	}

	if _, err := r.db.Pool.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("term", string(term)).Int("year", calendarYear).Msg("Error executing create semester query")
		return fmt.Errorf("error creating semester: %w", err)
	}
	return nil
}

func listSemesters(ctx context.Context, q db.Querier) ([]models.Semester, error) {
	sql, args, err := psql.Select("id", "term", "calendar_year").
		From("semester").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list semesters SQL")
		return nil, fmt.Errorf("failed to build list semesters query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list semesters query")
		return nil, fmt.Errorf("error querying semesters: %w", err)
	}
	defer rows.Close()

	semesters := []models.Semester{}
	for rows.Next() {
		var s models.Semester
		if err := rows.Scan(&s.ID, &s.Term, &s.CalendarYear); err != nil {
			logger.Error().Err(err).Msg("Error scanning semester row")
			return nil, fmt.Errorf("error scanning semester row: %w", err)
		}
		semesters = append(semesters, s)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating semester rows")
		return nil, fmt.Errorf("error iterating semester rows: %w", err)
	}

	sort.SliceStable(semesters, func(i, j int) bool {
		return semesters[i].Before(&semesters[j])
	})
	return semesters, nil
}
