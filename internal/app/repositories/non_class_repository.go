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

var nonClassParentColumns = []string{
	"p.id", "p.title", "p.contact_name", "p.contact_email", "p.contact_phone",
	"p.notes", "p.expected_size", "p.area_id", "p.course_id", "a.name",
}

// NonClassRepository handles non-class parents and their events
type NonClassRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewNonClassRepository creates a new NonClassRepository
func NewNonClassRepository(database *db.PostgresDB) *NonClassRepository {
	return &NonClassRepository{
		db: database,
		sb: psql,
	}
}

func scanNonClassParent(row pgx.Row) (*models.NonClassParent, error) {
	p := &models.NonClassParent{Area: &models.Area{}}
	err := row.Scan(&p.ID, &p.Title, &p.ContactName, &p.ContactEmail, &p.ContactPhone,
		&p.Notes, &p.ExpectedSize, &p.AreaID, &p.CourseID, &p.Area.Name)
	if err != nil {
		return nil, err
	}
	p.Area.ID = p.AreaID
	return p, nil
}

// ListParents returns every non-class parent with its area, ordered by title
func (r *NonClassRepository) ListParents(ctx context.Context) ([]*models.NonClassParent, error) {
	return listParents(ctx, r.db.Pool, nil)
}

func listParents(ctx context.Context, q db.Querier, where squirrel.Sqlizer) ([]*models.NonClassParent, error) {
	query := psql.Select(nonClassParentColumns...).
		From("non_class_parent p").
		Join("area a ON a.id = p.area_id").
		OrderBy("p.title ASC")
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list non-class parents SQL")
		return nil, fmt.Errorf("failed to build list non-class parents query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list non-class parents query")
		return nil, fmt.Errorf("error querying non-class parents: %w", err)
	}
	defer rows.Close()

	parents := []*models.NonClassParent{}
	for rows.Next() {
		p, err := scanNonClassParent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning non-class parent row")
			return nil, fmt.Errorf("error scanning non-class parent row: %w", err)
		}
		parents = append(parents, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating non-class parent rows")
		return nil, fmt.Errorf("error iterating non-class parent rows: %w", err)
	}
	return parents, nil
}

// ListEventsBySemesters returns the non-class events of the given semesters
func (r *NonClassRepository) ListEventsBySemesters(ctx context.Context, semesterIDs []string) ([]*models.NonClassEvent, error) {
	sql, args, err := r.sb.Select("e.id", "e.non_class_parent_id", "e.semester_id", "e.private", "s.term", "s.calendar_year").
		From("non_class_event e").
		Join("semester s ON s.id = e.semester_id").
		Where(squirrel.Eq{"e.semester_id": semesterIDs}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list non-class events SQL")
		return nil, fmt.Errorf("failed to build list non-class events query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list non-class events query")
		return nil, fmt.Errorf("error querying non-class events: %w", err)
	}
	defer rows.Close()

	events := []*models.NonClassEvent{}
	for rows.Next() {
		e := &models.NonClassEvent{Semester: &models.Semester{}}
		if err := rows.Scan(&e.ID, &e.NonClassParentID, &e.SemesterID, &e.Private,
			&e.Semester.Term, &e.Semester.CalendarYear); err != nil {
			logger.Error().Err(err).Msg("Error scanning non-class event row")
			return nil, fmt.Errorf("error scanning non-class event row: %w", err)
		}
		e.Semester.ID = e.SemesterID
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating non-class event rows")
		return nil, fmt.Errorf("error iterating non-class event rows: %w", err)
	}
	return events, nil
}

// CreateParent inserts a non-class parent and one private event for every
// existing semester in one transaction
func (r *NonClassRepository) CreateParent(ctx context.Context, parent *models.NonClassParent) (*models.NonClassParent, error) {
	var created *models.NonClassParent
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		parent.ID = uuid.NewString()

		sql, args, err := psql.Insert("non_class_parent").
			Columns("id", "title", "contact_name", "contact_email", "contact_phone",
				"notes", "expected_size", "area_id", "course_id").
			Values(parent.ID, parent.Title, parent.ContactName, parent.ContactEmail, parent.ContactPhone,
				parent.Notes, parent.ExpectedSize, parent.AreaID, parent.CourseID).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create non-class parent SQL")
			return fmt.Errorf("failed to build create non-class parent query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyError(err) {
				if dberrors.ConstraintName(err) == "non_class_parent_course_id_fkey" {
					return apperrors.ErrCourseNotFound
				}
				return apperrors.ErrAreaNotFound
			}
			logger.Error().Err(err).Str("title", parent.Title).Msg("Error executing create non-class parent query")
			return fmt.Errorf("error creating non-class parent: %w", err)
		}

		sql, args, err = psql.Insert("non_class_event").
			Columns("id", "non_class_parent_id", "semester_id", "private").
			Select(psql.Select().
				Column("gen_random_uuid()").
				Column("?", parent.ID).
				Column("s.id").
				Column("TRUE").
				From("semester s")).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create non-class events SQL")
			return fmt.Errorf("failed to build create non-class events query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("parentID", parent.ID).Msg("Error executing create non-class events query")
			return fmt.Errorf("error creating non-class events: %w", err)
		}

		parents, err := listParents(ctx, tx, squirrel.Eq{"p.id": parent.ID})
		if err != nil {
			return err
		}
		if len(parents) == 0 {
			return fmt.Errorf("non-class parent %s vanished after insert", parent.ID)
		}
		created = parents[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
