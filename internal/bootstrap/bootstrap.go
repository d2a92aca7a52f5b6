package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/crewjam/saml/samlsp"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/seas-computing/course-planner/internal/app/controllers"
	appMigrations "github.com/seas-computing/course-planner/internal/app/migrations"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	appRepos "github.com/seas-computing/course-planner/internal/app/repositories"
	appRoutes "github.com/seas-computing/course-planner/internal/app/routes"
	appServices "github.com/seas-computing/course-planner/internal/app/services"
	"github.com/seas-computing/course-planner/internal/config"
	"github.com/seas-computing/course-planner/internal/db"
	appMiddleware "github.com/seas-computing/course-planner/internal/middleware"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
	"github.com/seas-computing/course-planner/internal/pkg/session"
	"github.com/seas-computing/course-planner/internal/pkg/validation"
	"github.com/seas-computing/course-planner/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	SemesterService       appServices.SemesterService
	CourseService         appServices.CourseService
	CourseInstanceService appServices.CourseInstanceService
	FacultyService        appServices.FacultyService
	MeetingService        appServices.MeetingService
	NonClassService       appServices.NonClassService
	ScheduleService       appServices.ScheduleService
	ViewService           appServices.ViewService
	ReportService         appServices.ReportService
	Controllers           appRoutes.Controllers
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Sessions              *session.Store
	Redis                 *redis.Client
	Repos                 *appRepos.Repositories
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, appMigrations.Files())
	applied, err := migrator.Migrate(context.Background())
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// SetupSessions connects to Redis and builds the session store.
func SetupSessions(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*redis.Client, *session.Store, error) {
	rdb, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		return nil, nil, err
	}

	store := session.NewStore(session.NewRedisStore(rdb), session.Options{
		Prefix:     cfg.Redis.Prefix,
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.SessionMaxAge(),
		Secure:     cfg.Session.Secure,
	})
	lgr.Info().Str("addr", cfg.Redis.Addr).Dur("maxAge", cfg.SessionMaxAge()).Msg("Session store ready")
	return rdb, store, nil
}

// setupSAML builds the service provider when logins go through the IdP
func setupSAML(ctx context.Context, cfg *config.Config, store *session.Store) (*samlsp.Middleware, error) {
	if cfg.Auth.Mode != config.AuthModeSAML {
		return nil, nil
	}
	provider := session.NewSAMLProvider(store, cfg.Auth.SAML.GroupsAttribute)
	return session.NewSAMLMiddleware(ctx, session.SAMLOptions{
		RootURL:        cfg.Server.ExternalURL,
		EntityID:       cfg.Auth.SAML.EntityID,
		IDPMetadataURL: cfg.Auth.SAML.IDPMetadataURL,
		CertFile:       cfg.Auth.SAML.CertFile,
		KeyFile:        cfg.Auth.SAML.KeyFile,
	}, provider)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	if err := validation.Setup(dto.ViewColumns); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	deps.Redis, deps.Sessions, err = SetupSessions(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup sessions: %w", err)
	}

	samlMiddleware, err := setupSAML(ctx, cfg, deps.Sessions)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to configure SAML")
		_ = deps.Redis.Close()
		return nil, fmt.Errorf("failed to setup SAML: %w", err)
	}
	if samlMiddleware == nil {
		lgr.Warn().Msg("Development login enabled; every visitor signs in as the development user")
	}

	deps.Repos = appRepos.NewRepositories(database)
	r := deps.Repos

	// A nil clock reads the wall clock
	var clock appServices.Clock

	deps.SemesterService = appServices.NewSemesterService(r.SemesterRepository, r.AreaRepository, r.CourseRepository, clock)
	deps.CourseService = appServices.NewCourseService(r.CourseRepository)
	deps.CourseInstanceService = appServices.NewCourseInstanceService(
		r.SemesterRepository,
		r.CourseRepository,
		r.CourseInstanceRepository,
		r.FacultyRepository,
		r.MeetingRepository,
		clock,
	)
	deps.FacultyService = appServices.NewFacultyService(
		r.FacultyRepository,
		r.AbsenceRepository,
		r.AreaRepository,
		r.SemesterRepository,
		clock,
	)
	deps.MeetingService = appServices.NewMeetingService(r.MeetingRepository, r.LocationRepository)
	deps.NonClassService = appServices.NewNonClassService(
		r.NonClassRepository,
		r.AreaRepository,
		r.SemesterRepository,
		r.MeetingRepository,
		clock,
	)
	deps.ScheduleService = appServices.NewScheduleService(r.MeetingRepository)
	deps.ViewService = appServices.NewViewService(r.ViewRepository)
	deps.ReportService = appServices.NewReportService(
		r.SemesterRepository,
		r.CourseRepository,
		r.CourseInstanceRepository,
		clock,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Sessions)

	deps.Controllers = appRoutes.Controllers{
		Auth: appControllers.NewAuthController(
			deps.Sessions,
			samlMiddleware,
			session.DevUser(cfg.Auth.AdminGroup),
			cfg.Server.ClientURL,
		),
		User:           appControllers.NewUserController(),
		Metadata:       appControllers.NewMetadataController(deps.SemesterService),
		Course:         appControllers.NewCourseController(deps.CourseService),
		CourseInstance: appControllers.NewCourseInstanceController(deps.CourseInstanceService),
		Faculty:        appControllers.NewFacultyController(deps.FacultyService),
		Meeting:        appControllers.NewMeetingController(deps.MeetingService),
		NonClass:       appControllers.NewNonClassController(deps.NonClassService),
		Schedule:       appControllers.NewScheduleController(deps.ScheduleService),
		View:           appControllers.NewViewController(deps.ViewService),
		Report:         appControllers.NewReportController(deps.ReportService),
		Log:            appControllers.NewLogController(),
		Health:         appControllers.NewHealthController(database, session.NewRedisStore(deps.Redis)),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(),
		appMiddleware.CORS(cfg.CORS.AllowedOrigins),
	)

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, cfg.Auth.AdminGroup)

	return router
}
