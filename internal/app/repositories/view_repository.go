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
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// ViewRepository handles saved course table views
type ViewRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewViewRepository creates a new ViewRepository
func NewViewRepository(database *db.PostgresDB) *ViewRepository {
	return &ViewRepository{
		db: database,
		sb: psql,
	}
}

// ListViews returns the views owned by eppn, oldest first
func (r *ViewRepository) ListViews(ctx context.Context, eppn string) ([]models.View, error) {
	sql, args, err := r.sb.Select("id", "eppn", "name", "columns", "created_at").
		From("saved_view").
		Where(squirrel.Eq{"eppn": eppn}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list views SQL")
		return nil, fmt.Errorf("failed to build list views query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("eppn", eppn).Msg("Error executing list views query")
		return nil, fmt.Errorf("error querying views: %w", err)
	}

	views, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.View])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting view rows")
		return nil, fmt.Errorf("error collecting views: %w", err)
	}
	return views, nil
}

// CreateView stores a new view
func (r *ViewRepository) CreateView(ctx context.Context, view *models.View) error {
	view.ID = uuid.NewString()

	sql, args, err := r.sb.Insert("saved_view").
		Columns("id", "eppn", "name", "columns").
		Values(view.ID, view.EPPN, view.Name, view.Columns).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create view SQL")
		return fmt.Errorf("failed to build create view query: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&view.CreatedAt); err != nil {
		logger.Error().Err(err).Str("eppn", view.EPPN).Msg("Error executing create view query")
		return fmt.Errorf("error creating view: %w", err)
	}
	return nil
}

// DeleteView removes a view owned by eppn; views of other users are reported missing
func (r *ViewRepository) DeleteView(ctx context.Context, id, eppn string) error {
	sql, args, err := r.sb.Delete("saved_view").
		Where(squirrel.Eq{"id": id, "eppn": eppn}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete view SQL")
		return fmt.Errorf("failed to build delete view query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("viewID", id).Msg("Error executing delete view query")
		return fmt.Errorf("error deleting view: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrViewNotFound
	}
	return nil
}
