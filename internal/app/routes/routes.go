package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/controllers"
	"github.com/seas-computing/course-planner/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth           *controllers.AuthController
	User           *controllers.UserController
	Metadata       *controllers.MetadataController
	Course         *controllers.CourseController
	CourseInstance *controllers.CourseInstanceController
	Faculty        *controllers.FacultyController
	Meeting        *controllers.MeetingController
	NonClass       *controllers.NonClassController
	Schedule       *controllers.ScheduleController
	View           *controllers.ViewController
	Report         *controllers.ReportController
	Log            *controllers.LogController
	Health         *controllers.HealthController
}

// SetupRouter configures all application routes. Every /api route needs a
// session; writes and the faculty schedule also need adminGroup.
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	adminGroup string,
) {
	router.GET("/health-check", c.Health.Check)

	// --- Login flow ---
	router.GET("/login", c.Auth.Login)
	router.GET("/logout", c.Auth.Logout)
	if c.Auth.SAMLEnabled() {
		router.Any("/saml/*action", c.Auth.SAML)
	}

	// --- Authenticated Routes Group ---
	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())

	admin := authMiddleware.RequireGroup(adminGroup)

	api.GET("/users/current", c.User.GetCurrentUser)
	api.POST("/log", c.Log.CreateLog)

	api.GET("/metadata", c.Metadata.GetMetadata)
	semesters := api.Group("/semesters")
	{
		semesters.GET("", c.Metadata.GetSemesters)
		semesters.GET("/years", c.Metadata.GetYears)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", c.Course.GetCourses)
		courses.POST("", admin, c.Course.CreateCourse)
		courses.PUT("/:id", admin, c.Course.UpdateCourse)
	}

	instances := api.Group("/course-instances")
	{
		instances.GET("", c.CourseInstance.GetCourseInstances)
		instances.GET("/multi-year-plan", c.CourseInstance.GetMultiYearPlan)
		instances.PUT("/:id", admin, c.CourseInstance.UpdateCourseInstance)
		instances.PUT("/:id/instructors", admin, c.CourseInstance.UpdateInstructors)
	}

	faculty := api.Group("/faculty")
	{
		faculty.GET("", c.Faculty.GetAllFaculty)
		faculty.GET("/instructors", c.Faculty.GetInstructors)
		faculty.GET("/schedule", admin, c.Faculty.GetSchedule)
		faculty.POST("", admin, c.Faculty.CreateFaculty)
		faculty.PUT("/:id", admin, c.Faculty.UpdateFaculty)
		faculty.PUT("/absence/:id", admin, c.Faculty.UpdateAbsence)
	}

	api.PUT("/meetings/:parentId", admin, c.Meeting.ReplaceMeetings)
	rooms := api.Group("/rooms")
	{
		rooms.GET("", c.Meeting.GetRooms)
		rooms.GET("/availability", c.Meeting.GetRoomAvailability)
	}

	nonClass := api.Group("/non-class-events")
	{
		nonClass.GET("", c.NonClass.GetNonClassEvents)
		nonClass.POST("", admin, c.NonClass.CreateNonClassParent)
	}

	api.GET("/schedule", c.Schedule.GetSchedule)

	// Views are per user and need no admin rights
	views := api.Group("/view")
	{
		views.GET("", c.View.GetViews)
		views.POST("", c.View.CreateView)
		views.DELETE("/:id", c.View.DeleteView)
	}

	api.GET("/report/courses", c.Report.GetCoursesReport)
}
