package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/db"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// AreaRepository handles area database operations
type AreaRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAreaRepository creates a new AreaRepository
func NewAreaRepository(database *db.PostgresDB) *AreaRepository {
	return &AreaRepository{
		db: database,
		sb: psql,
	}
}

// ListAreas returns every area ordered by name
func (r *AreaRepository) ListAreas(ctx context.Context) ([]models.Area, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("area").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list areas SQL")
		return nil, fmt.Errorf("failed to build list areas query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list areas query")
		return nil, fmt.Errorf("error querying areas: %w", err)
	}
	defer rows.Close()

	areas := []models.Area{}
	for rows.Next() {
		var area models.Area
		if err := rows.Scan(&area.ID, &area.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning area row")
			return nil, fmt.Errorf("error scanning area row: %w", err)
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating area rows")
		return nil, fmt.Errorf("error iterating area rows: %w", err)
	}

	return areas, nil
}

// GetAreaByID returns apperrors.ErrAreaNotFound when the id is unknown
func (r *AreaRepository) GetAreaByID(ctx context.Context, id string) (*models.Area, error) {
	return getArea(ctx, r.db.Pool, squirrel.Eq{"id": id})
}

// FindOrCreateArea looks an area up by name and inserts it when missing.
func FindOrCreateArea(ctx context.Context, q db.Querier, name string) (*models.Area, error) {
	area, err := getArea(ctx, q, squirrel.Eq{"name": name})
	if err == nil {
		return area, nil
	}
	if !errors.Is(err, apperrors.ErrAreaNotFound) {
		return nil, err
	}

	// ON CONFLICT covers a concurrent insert of the same name
	sql, args, err := psql.Insert("area").
		Columns("id", "name").
		Values(uuid.NewString(), name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id, name").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create area SQL")
		return nil, fmt.Errorf("failed to build create area query: %w", err)
	}

	created := &models.Area{}
	if err := q.QueryRow(ctx, sql, args...).Scan(&created.ID, &created.Name); err != nil {
		logger.Error().Err(err).Str("area", name).Msg("Error executing create area query")
		return nil, fmt.Errorf("error creating area: %w", err)
	}
	logger.Info().Str("area", name).Msg("Created area")
	return created, nil
}

func getArea(ctx context.Context, q db.Querier, where squirrel.Sqlizer) (*models.Area, error) {
	sql, args, err := psql.Select("id", "name").
		From("area").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get area SQL")
		return nil, fmt.Errorf("failed to build get area query: %w", err)
	}

	area := &models.Area{}
	if err := q.QueryRow(ctx, sql, args...).Scan(&area.ID, &area.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAreaNotFound
		}
		logger.Error().Err(err).Msg("Error scanning area row")
		return nil, fmt.Errorf("error getting area: %w", err)
	}
	return area, nil
}
