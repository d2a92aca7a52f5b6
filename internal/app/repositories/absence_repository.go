package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/db"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// AbsenceRepository handles faculty absence operations
type AbsenceRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAbsenceRepository creates a new AbsenceRepository
func NewAbsenceRepository(database *db.PostgresDB) *AbsenceRepository {
	return &AbsenceRepository{
		db: database,
		sb: psql,
	}
}

// ListAbsencesBySemesters returns the absences recorded in the given semesters
func (r *AbsenceRepository) ListAbsencesBySemesters(ctx context.Context, semesterIDs []string) ([]models.Absence, error) {
	sql, args, err := r.sb.Select("id", "faculty_id", "semester_id", "type").
		From("absence").
		Where(squirrel.Eq{"semester_id": semesterIDs}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list absences SQL")
		return nil, fmt.Errorf("failed to build list absences query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list absences query")
		return nil, fmt.Errorf("error querying absences: %w", err)
	}

	absences, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Absence])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting absence rows")
		return nil, fmt.Errorf("error collecting absences: %w", err)
	}
	return absences, nil
}

// UpdateAbsenceType changes the type of an absence and returns the stored row
func (r *AbsenceRepository) UpdateAbsenceType(ctx context.Context, id string, absenceType models.AbsenceType) (*models.Absence, error) {
	sql, args, err := r.sb.Update("absence").
		Set("type", absenceType).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, faculty_id, semester_id, type").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update absence SQL")
		return nil, fmt.Errorf("failed to build update absence query: %w", err)
	}

	absence := &models.Absence{}
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&absence.ID, &absence.FacultyID, &absence.SemesterID, &absence.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAbsenceNotFound
		}
		logger.Error().Err(err).Str("absenceID", id).Msg("Error executing update absence query")
		return nil, fmt.Errorf("error updating absence: %w", err)
	}
	return absence, nil
}
