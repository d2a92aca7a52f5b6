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
	"github.com/seas-computing/course-planner/internal/pkg/dberrors"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// CourseInstanceRepository handles course instance and instructor assignment operations
type CourseInstanceRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseInstanceRepository creates a new CourseInstanceRepository
func NewCourseInstanceRepository(database *db.PostgresDB) *CourseInstanceRepository {
	return &CourseInstanceRepository{
		db: database,
		sb: psql,
	}
}

var instanceColumns = []string{
	"ci.id", "ci.course_id", "ci.semester_id", "ci.offered",
	"ci.pre_enrollment", "ci.study_card_enrollment", "ci.actual_enrollment",
	"s.term", "s.calendar_year",
}

func scanInstance(row pgx.Row) (*models.CourseInstance, error) {
	ci := &models.CourseInstance{Semester: &models.Semester{}}
	err := row.Scan(
		&ci.ID, &ci.CourseID, &ci.SemesterID, &ci.Offered,
		&ci.PreEnrollment, &ci.StudyCardEnrollment, &ci.ActualEnrollment,
		&ci.Semester.Term, &ci.Semester.CalendarYear,
	)
	if err != nil {
		return nil, err
	}
	ci.Semester.ID = ci.SemesterID
	return ci, nil
}

// ListInstancesBySemesters returns the course instances of the given semesters
func (r *CourseInstanceRepository) ListInstancesBySemesters(ctx context.Context, semesterIDs []string) ([]*models.CourseInstance, error) {
	sql, args, err := r.sb.Select(instanceColumns...).
		From("course_instance ci").
		Join("semester s ON s.id = ci.semester_id").
		Where(squirrel.Eq{"ci.semester_id": semesterIDs}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list course instances SQL")
		return nil, fmt.Errorf("failed to build list course instances query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list course instances query")
		return nil, fmt.Errorf("error querying course instances: %w", err)
	}
	defer rows.Close()

	instances := []*models.CourseInstance{}
	for rows.Next() {
		ci, err := scanInstance(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course instance row")
			return nil, fmt.Errorf("error scanning course instance row: %w", err)
		}
		instances = append(instances, ci)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course instance rows")
		return nil, fmt.Errorf("error iterating course instance rows: %w", err)
	}

	return instances, nil
}

// GetInstanceByID retrieves a course instance by ID
func (r *CourseInstanceRepository) GetInstanceByID(ctx context.Context, id string) (*models.CourseInstance, error) {
	sql, args, err := r.sb.Select(instanceColumns...).
		From("course_instance ci").
		Join("semester s ON s.id = ci.semester_id").
		Where(squirrel.Eq{"ci.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course instance SQL")
		return nil, fmt.Errorf("failed to build get course instance query: %w", err)
	}

	ci, err := scanInstance(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseInstanceNotFound
		}
		logger.Error().Err(err).Str("courseInstanceID", id).Msg("Error scanning course instance row")
		return nil, fmt.Errorf("error getting course instance: %w", err)
	}
	return ci, nil
}

// UpdateInstance stores the offered status and enrollment figures of an instance
func (r *CourseInstanceRepository) UpdateInstance(ctx context.Context, instance *models.CourseInstance) error {
	sql, args, err := r.sb.Update("course_instance").
		SetMap(map[string]interface{}{
			"offered":               instance.Offered,
			"pre_enrollment":        instance.PreEnrollment,
			"study_card_enrollment": instance.StudyCardEnrollment,
			"actual_enrollment":     instance.ActualEnrollment,
			"updated_at":            squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": instance.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course instance SQL")
		return fmt.Errorf("failed to build update course instance query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseInstanceID", instance.ID).Msg("Error executing update course instance query")
		return fmt.Errorf("error updating course instance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseInstanceNotFound
	}
	return nil
}

// ListInstructors returns the instructor assignments of the given instances,
// ordered by instance and instructor order
func (r *CourseInstanceRepository) ListInstructors(ctx context.Context, instanceIDs []string) ([]models.InstructorAssignment, error) {
	sql, args, err := r.sb.Select("fci.course_instance_id", "fci.faculty_id", "f.first_name", "f.last_name", "fci.instructor_order").
		From("faculty_course_instance fci").
		Join("faculty f ON f.id = fci.faculty_id").
		Where(squirrel.Eq{"fci.course_instance_id": instanceIDs}).
		OrderBy("fci.course_instance_id", "fci.instructor_order ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list instructors SQL")
		return nil, fmt.Errorf("failed to build list instructors query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list instructors query")
		return nil, fmt.Errorf("error querying instructors: %w", err)
	}

	assignments, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.InstructorAssignment])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting instructor rows")
		return nil, fmt.Errorf("error collecting instructors: %w", err)
	}
	return assignments, nil
}

// ReplaceInstructors swaps the instructor list of an instance for facultyIDs,
// keeping their order, in one transaction.
func (r *CourseInstanceRepository) ReplaceInstructors(ctx context.Context, instanceID string, facultyIDs []string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := psql.Delete("faculty_course_instance").
			Where(squirrel.Eq{"course_instance_id": instanceID}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building clear instructors SQL")
			return fmt.Errorf("failed to build clear instructors query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("courseInstanceID", instanceID).Msg("Error executing clear instructors query")
			return fmt.Errorf("error clearing instructors: %w", err)
		}

		if len(facultyIDs) == 0 {
			return nil
		}

		insert := psql.Insert("faculty_course_instance").
			Columns("faculty_id", "course_instance_id", "instructor_order")
		for order, facultyID := range facultyIDs {
			insert = insert.Values(facultyID, instanceID, order)
		}

		sql, args, err = insert.ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building insert instructors SQL")
			return fmt.Errorf("failed to build insert instructors query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyError(err) {
				return apperrors.NewValidationError("instructors", "Every instructor must be an existing faculty member")
			}
			if dberrors.IsDuplicateKeyError(err) {
				return apperrors.NewValidationError("instructors", "An instructor may only be listed once")
			}
			logger.Error().Err(err).Str("courseInstanceID", instanceID).Msg("Error executing insert instructors query")
			return fmt.Errorf("error inserting instructors: %w", err)
		}
		return nil
	})
}
