package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appModels "github.com/seas-computing/course-planner/internal/app/models"
	appRepos "github.com/seas-computing/course-planner/internal/app/repositories"
	"github.com/seas-computing/course-planner/internal/db"
	"github.com/seas-computing/course-planner/internal/pkg/academic"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type seedRoom struct {
	campus   string
	building string
	name     string
	capacity int
}

var defaultRooms = []seedRoom{
	{"Cambridge", "Maxwell Dworkin", "G115", 60},
	{"Cambridge", "Maxwell Dworkin", "G125", 40},
	{"Cambridge", "Pierce Hall", "209", 30},
	{"Allston", "Science and Engineering Complex", "1.321", 120},
	{"Allston", "Science and Engineering Complex", "LL2.224", 24},
}

type seedCourse struct {
	area    string
	prefix  string
	number  string
	title   string
	undergr bool
	pattern appModels.TermPattern
}

var defaultCourses = []seedCourse{
	{"CS", "CS", "050", "Introduction to Computer Science", true, appModels.TermPatternFall},
	{"CS", "CS", "124", "Data Structures and Algorithms", true, appModels.TermPatternSpring},
	{"CS", "CS", "226R", "Efficient Algorithms", false, appModels.TermPatternBoth},
	{"AM", "AM", "021A", "Mathematical Methods in the Sciences", true, appModels.TermPatternFall},
	{"EE", "ES", "154", "Electronic Devices and Circuits", true, appModels.TermPatternSpring},
}

var defaultFaculty = []appModels.Faculty{
	{HUID: "10000001", FirstName: "Grace", LastName: "Hopper", Category: appModels.FacultyCategoryLadder},
	{HUID: "10000002", FirstName: "Alan", LastName: "Turing", Category: appModels.FacultyCategoryNonLadder},
	{HUID: "10000003", FirstName: "Ada", LastName: "Lovelace", Category: appModels.FacultyCategoryNonSEASLadder},
}

// CreateDefaultData fills an empty development database with semesters,
// rooms, courses, faculty and a non-class parent. Rows that already exist are
// left untouched so it is safe to run on every start.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(database)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Semesters: the academic years around the current one --- //
	current := academic.CurrentAcademicYear(time.Now())
	for year := current - 1; year <= current+1; year++ {
		fall := academic.CalendarYear(academic.Fall, year)
		spring := academic.CalendarYear(academic.Spring, year)
		if err := repos.SemesterRepository.CreateSemester(ctx, appModels.TermFall, fall); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
		if err := repos.SemesterRepository.CreateSemester(ctx, appModels.TermSpring, spring); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Campuses, buildings and rooms --- //
	for _, room := range defaultRooms {
		if err := createRoom(ctx, database, room); err != nil {
			lgr.Error().Err(err).Str("room", room.building+" "+room.name).Msg("Error creating room")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Courses (areas are created with them) --- //
	var firstCourseID string
	for _, c := range defaultCourses {
		pattern := c.pattern
		course := &appModels.Course{
			Title:           c.title,
			Prefix:          c.prefix,
			Number:          c.number,
			IsUndergraduate: c.undergr,
			IsSEAS:          appModels.IsSEASYes,
			TermPattern:     &pattern,
		}
		created, err := repos.CourseRepository.CreateCourse(ctx, course, c.area)
		switch {
		case errors.Is(err, apperrors.ErrCourseAlreadyExists):
		case err != nil:
			lgr.Error().Err(err).Str("course", course.CatalogNumber()).Msg("Error creating course")
			finalErr = errors.Join(finalErr, err)
		case firstCourseID == "":
			firstCourseID = created.ID
		}
	}

	areas, err := repos.AreaRepository.ListAreas(ctx)
	if err != nil {
		return errors.Join(finalErr, err)
	}
	areaIDs := make(map[string]string, len(areas))
	for _, a := range areas {
		areaIDs[a.Name] = a.ID
	}
	csAreaID, ok := areaIDs["CS"]
	if !ok {
		return errors.Join(finalErr, fmt.Errorf("seed area CS is missing"))
	}

	// --- Faculty (absences are created with them) --- //
	for i := range defaultFaculty {
		f := defaultFaculty[i]
		f.AreaID = &csAreaID
		if _, err := repos.FacultyRepository.CreateFaculty(ctx, &f); err != nil && !errors.Is(err, apperrors.ErrFacultyAlreadyExists) {
			lgr.Error().Err(err).Str("huid", f.HUID).Msg("Error creating faculty")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Non-class parent, only into an empty table --- //
	parents, err := repos.NonClassRepository.ListParents(ctx)
	if err != nil {
		return errors.Join(finalErr, err)
	}
	if len(parents) == 0 {
		size := 12
		parent := &appModels.NonClassParent{
			Title:        "Theory of Computation reading group",
			ContactName:  "Grace Hopper",
			ContactEmail: "hopper@seas.harvard.edu",
			ExpectedSize: &size,
			AreaID:       csAreaID,
		}
		if firstCourseID != "" {
			parent.CourseID = &firstCourseID
		}
		if _, err := repos.NonClassRepository.CreateParent(ctx, parent); err != nil {
			lgr.Error().Err(err).Msg("Error creating non-class parent")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data is in place")
	}
	return finalErr
}

// createRoom inserts the campus, building and room of r, reusing rows that exist
func createRoom(ctx context.Context, database *db.PostgresDB, r seedRoom) error {
	campusID, err := upsertID(ctx, database, "campus", []string{"name"}, []interface{}{r.campus},
		squirrel.Eq{"name": r.campus})
	if err != nil {
		return err
	}
	buildingID, err := upsertID(ctx, database, "building", []string{"name", "campus_id"}, []interface{}{r.building, campusID},
		squirrel.Eq{"name": r.building, "campus_id": campusID})
	if err != nil {
		return err
	}

	sql, args, err := psql.Insert("room").
		Columns("id", "name", "capacity", "building_id").
		Values(uuid.NewString(), r.name, r.capacity, buildingID).
		Suffix("ON CONFLICT (building_id, name) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build seed room query: %w", err)
	}
	if _, err := database.Pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error seeding room: %w", err)
	}
	return nil
}

// upsertID inserts a row unless one matching where exists and returns its id
func upsertID(ctx context.Context, database *db.PostgresDB, table string, columns []string, values []interface{}, where squirrel.Eq) (string, error) {
	insert := psql.Insert(table).
		Columns(append([]string{"id"}, columns...)...).
		Values(append([]interface{}{uuid.NewString()}, values...)...).
		Suffix("ON CONFLICT DO NOTHING")
	sql, args, err := insert.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build seed %s query: %w", table, err)
	}
	if _, err := database.Pool.Exec(ctx, sql, args...); err != nil {
		return "", fmt.Errorf("error seeding %s: %w", table, err)
	}

	sql, args, err = psql.Select("id").From(table).Where(where).ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build seed %s lookup: %w", table, err)
	}
	var id string
	if err := database.Pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("error looking up seeded %s: %w", table, err)
	}
	return id, nil
}
