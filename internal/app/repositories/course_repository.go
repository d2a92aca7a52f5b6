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

const uniqueCourseCatalog = "uq_course_catalog"

var courseColumns = []string{
	"c.id", "c.title", "c.prefix", "c.number", "c.is_undergraduate", "c.notes",
	"c.private", "c.same_as", "c.is_seas", "c.term_pattern", "c.area_id", "a.name",
	"c.created_at", "c.updated_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{
		db: database,
		sb: psql,
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{Area: &models.Area{}}
	err := row.Scan(
		&c.ID, &c.Title, &c.Prefix, &c.Number, &c.IsUndergraduate, &c.Notes,
		&c.Private, &c.SameAs, &c.IsSEAS, &c.TermPattern, &c.AreaID, &c.Area.Name,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Area.ID = c.AreaID
	return c, nil
}

// ListCourses returns every course with its area, ordered by catalog number
func (r *CourseRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("course c").
		Join("area a ON a.id = c.area_id").
		OrderBy("c.prefix ASC", "c.number ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// GetCourseByID retrieves a course by ID
func (r *CourseRepository) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	return getCourse(ctx, r.db.Pool, id)
}

func getCourse(ctx context.Context, q db.Querier, id string) (*models.Course, error) {
	sql, args, err := psql.Select(courseColumns...).
		From("course c").
		Join("area a ON a.id = c.area_id").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return c, nil
}

// CreateCourse inserts a course, creating its area by name when needed, and
// adds a blank instance of it to every existing semester. All of it happens
// in one transaction.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course, areaName string) (*models.Course, error) {
	var created *models.Course
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		area, err := FindOrCreateArea(ctx, tx, areaName)
		if err != nil {
			return err
		}

		course.ID = uuid.NewString()
		course.AreaID = area.ID

		sql, args, err := psql.Insert("course").
			Columns("id", "title", "prefix", "number", "is_undergraduate", "notes",
				"private", "same_as", "is_seas", "term_pattern", "area_id").
			Values(course.ID, course.Title, course.Prefix, course.Number, course.IsUndergraduate, course.Notes,
				course.Private, course.SameAs, course.IsSEAS, course.TermPattern, course.AreaID).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create course SQL")
			return fmt.Errorf("failed to build create course query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsDuplicateConstraintError(err, uniqueCourseCatalog) {
				return apperrors.ErrCourseAlreadyExists
			}
			logger.Error().Err(err).Str("catalogNumber", course.CatalogNumber()).Msg("Error executing create course query")
			return fmt.Errorf("error creating course: %w", err)
		}

		// one blank instance per semester
		sql, args, err = psql.Insert("course_instance").
			Columns("id", "course_id", "semester_id", "offered").
			Select(psql.Select().
				Column("gen_random_uuid()").
				Column("?", course.ID).
				Column("s.id").
				Column("?", models.OfferedBlank).
				From("semester s")).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create course instances SQL")
			return fmt.Errorf("failed to build create course instances query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("courseID", course.ID).Msg("Error executing create course instances query")
			return fmt.Errorf("error creating course instances: %w", err)
		}

		created, err = getCourse(ctx, tx, course.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateCourse updates an existing course, creating its area by name when needed
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course, areaName string) (*models.Course, error) {
	var updated *models.Course
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		area, err := FindOrCreateArea(ctx, tx, areaName)
		if err != nil {
			return err
		}

		sql, args, err := psql.Update("course").
			SetMap(map[string]interface{}{
				"title":            course.Title,
				"prefix":           course.Prefix,
				"number":           course.Number,
				"is_undergraduate": course.IsUndergraduate,
				"notes":            course.Notes,
				"private":          course.Private,
				"same_as":          course.SameAs,
				"is_seas":          course.IsSEAS,
				"term_pattern":     course.TermPattern,
				"area_id":          area.ID,
				"updated_at":       squirrel.Expr("NOW()"),
			}).
			Where(squirrel.Eq{"id": course.ID}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building update course SQL")
			return fmt.Errorf("failed to build update course query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, uniqueCourseCatalog) {
				return apperrors.ErrCourseAlreadyExists
			}
			logger.Error().Err(err).Str("courseID", course.ID).Msg("Error executing update course query")
			return fmt.Errorf("error updating course: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}

		updated, err = getCourse(ctx, tx, course.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ListCatalogPrefixes returns the distinct course prefixes in alphabetical order
func (r *CourseRepository) ListCatalogPrefixes(ctx context.Context) ([]string, error) {
	sql, args, err := r.sb.Select("DISTINCT prefix").
		From("course").
		OrderBy("prefix ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list prefixes SQL")
		return nil, fmt.Errorf("failed to build list prefixes query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list prefixes query")
		return nil, fmt.Errorf("error querying prefixes: %w", err)
	}

	prefixes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting prefix rows")
		return nil, fmt.Errorf("error collecting prefixes: %w", err)
	}
	return prefixes, nil
}
