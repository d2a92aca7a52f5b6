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
	"github.com/seas-computing/course-planner/internal/pkg/dberrors"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

var facultyColumns = []string{
	"f.id", "f.huid", "f.first_name", "f.last_name", "f.category", "f.area_id",
	"a.name", "f.joint_with", "f.notes",
}

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db *db.PostgresDB
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(database *db.PostgresDB) *FacultyRepository {
	return &FacultyRepository{
		db: database,
		sb: psql,
	}
}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	f := &models.Faculty{}
	var areaName *string
	err := row.Scan(&f.ID, &f.HUID, &f.FirstName, &f.LastName, &f.Category, &f.AreaID,
		&areaName, &f.JointWith, &f.Notes)
	if err != nil {
		return nil, err
	}
	if f.AreaID != nil && areaName != nil {
		f.Area = &models.Area{ID: *f.AreaID, Name: *areaName}
	}
	return f, nil
}

// ListFaculty retrieves all faculty ordered by area, last name and first name
func (r *FacultyRepository) ListFaculty(ctx context.Context) ([]*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculty f").
		LeftJoin("area a ON a.id = f.area_id").
		OrderBy("a.name ASC NULLS LAST", "f.last_name ASC", "f.first_name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list faculty SQL")
		return nil, fmt.Errorf("failed to build list faculty query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list faculty query")
		return nil, fmt.Errorf("error querying faculty: %w", err)
	}
	defer rows.Close()

	faculty := []*models.Faculty{}
	for rows.Next() {
		f, err := scanFaculty(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning faculty row during list")
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculty = append(faculty, f)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating faculty rows")
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}

	return faculty, nil
}

// GetFacultyByID retrieves a faculty member by ID
func (r *FacultyRepository) GetFacultyByID(ctx context.Context, id string) (*models.Faculty, error) {
	return getFaculty(ctx, r.db.Pool, id)
}

func getFaculty(ctx context.Context, q db.Querier, id string) (*models.Faculty, error) {
	sql, args, err := psql.Select(facultyColumns...).
		From("faculty f").
		LeftJoin("area a ON a.id = f.area_id").
		Where(squirrel.Eq{"f.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty by ID SQL")
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	f, err := scanFaculty(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Str("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}
	return f, nil
}

// CountExisting returns how many of ids belong to existing faculty
func (r *FacultyRepository) CountExisting(ctx context.Context, ids []string) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("faculty").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count faculty SQL")
		return 0, fmt.Errorf("failed to build count faculty query: %w", err)
	}

	var count int
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count faculty query")
		return 0, fmt.Errorf("error counting faculty: %w", err)
	}
	return count, nil
}

// CreateFaculty inserts a faculty member and a PRESENT absence for every
// existing semester in one transaction
func (r *FacultyRepository) CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	var created *models.Faculty
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		faculty.ID = uuid.NewString()

		sql, args, err := psql.Insert("faculty").
			Columns("id", "huid", "first_name", "last_name", "category", "area_id", "joint_with", "notes").
			Values(faculty.ID, faculty.HUID, faculty.FirstName, faculty.LastName, faculty.Category,
				faculty.AreaID, faculty.JointWith, faculty.Notes).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create faculty SQL")
			return fmt.Errorf("failed to build create faculty query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			switch {
			case dberrors.IsDuplicateConstraintError(err, "uq_faculty_huid"):
				return apperrors.ErrFacultyAlreadyExists
			case dberrors.IsForeignKeyError(err):
				return apperrors.ErrAreaNotFound
			}
			logger.Error().Err(err).Str("huid", faculty.HUID).Msg("Error executing create faculty query")
			return fmt.Errorf("error creating faculty: %w", err)
		}

		sql, args, err = psql.Insert("absence").
			Columns("id", "faculty_id", "semester_id", "type").
			Select(psql.Select().
				Column("gen_random_uuid()").
				Column("?", faculty.ID).
				Column("s.id").
				Column("?", models.AbsencePresent).
				From("semester s")).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create absences SQL")
			return fmt.Errorf("failed to build create absences query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("facultyID", faculty.ID).Msg("Error executing create absences query")
			return fmt.Errorf("error creating absences: %w", err)
		}

		created, err = getFaculty(ctx, tx, faculty.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateFaculty updates an existing faculty member
func (r *FacultyRepository) UpdateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	sql, args, err := r.sb.Update("faculty").
		SetMap(map[string]interface{}{
			"huid":       faculty.HUID,
			"first_name": faculty.FirstName,
			"last_name":  faculty.LastName,
			"category":   faculty.Category,
			"area_id":    faculty.AreaID,
			"joint_with": faculty.JointWith,
			"notes":      faculty.Notes,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": faculty.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update faculty SQL")
		return nil, fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "uq_faculty_huid"):
			return nil, apperrors.ErrFacultyAlreadyExists
		case dberrors.IsForeignKeyError(err):
			return nil, apperrors.ErrAreaNotFound
		}
		logger.Error().Err(err).Str("facultyID", faculty.ID).Msg("Error executing update faculty query")
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrFacultyNotFound
	}

	return r.GetFacultyByID(ctx, faculty.ID)
}

// TeachingAssignment is a course taught by a faculty member in a semester
type TeachingAssignment struct {
	FacultyID        string
	SemesterID       string
	CourseInstanceID string
	Prefix           string
	Number           string
}

// ListTeaching returns the courses each faculty member teaches in the given semesters
func (r *FacultyRepository) ListTeaching(ctx context.Context, semesterIDs []string) ([]TeachingAssignment, error) {
	sql, args, err := r.sb.Select("fci.faculty_id", "ci.semester_id", "ci.id", "c.prefix", "c.number").
		From("faculty_course_instance fci").
		Join("course_instance ci ON ci.id = fci.course_instance_id").
		Join("course c ON c.id = ci.course_id").
		Where(squirrel.Eq{"ci.semester_id": semesterIDs}).
		OrderBy("c.prefix ASC", "c.number ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list teaching SQL")
		return nil, fmt.Errorf("failed to build list teaching query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list teaching query")
		return nil, fmt.Errorf("error querying teaching assignments: %w", err)
	}

	teaching, err := pgx.CollectRows(rows, pgx.RowToStructByPos[TeachingAssignment])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting teaching rows")
		return nil, fmt.Errorf("error collecting teaching assignments: %w", err)
	}
	return teaching, nil
}
