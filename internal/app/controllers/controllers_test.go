package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/middleware"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/seas-computing/course-planner/internal/pkg/session"
	"github.com/seas-computing/course-planner/internal/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	courseID   = "6f9619ff-8b86-d011-b42d-00c04fc964ff"
	instanceID = "0b7c3d5a-2a4e-4c3e-9f7a-1e2d3c4b5a69"
	areaID     = "1b1e2d6a-9a55-4b8a-9c5e-9d3c11b4a0a1"
)

var testUser = &models.User{EPPN: "tester@harvard.edu", FirstName: "Test", LastName: "User", Groups: []string{"admin"}}

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.Setup(dto.ViewColumns); err != nil {
		panic(err)
	}
}

// newRouter builds an engine whose requests carry user, as RequireAuth would set it
func newRouter(user *models.User) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.UserContextKey, user)
		}
		c.Next()
	})
	return router
}

func doJSON(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data member of a success envelope into out
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

type fakeCourseService struct {
	courses []dto.CourseResponse
	created *dto.CourseRequest
	err     error
}

func (f *fakeCourseService) ListCourses(context.Context) ([]dto.CourseResponse, error) {
	return f.courses, f.err
}

func (f *fakeCourseService) CreateCourse(_ context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = req
	return &dto.CourseResponse{ID: courseID, Prefix: req.Prefix, Number: req.Number, CatalogNumber: req.Prefix + " " + req.Number}, nil
}

func (f *fakeCourseService) UpdateCourse(_ context.Context, id string, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CourseResponse{ID: id, Title: req.Title}, nil
}

func TestCourseController(t *testing.T) {
	validCourse := dto.CourseRequest{Area: "CS", Prefix: "CS", Number: "050", Title: "Intro", IsSEAS: "Y"}

	t.Run("list", func(t *testing.T) {
		svc := &fakeCourseService{courses: []dto.CourseResponse{{ID: courseID, CatalogNumber: "CS 050"}}}
		router := newRouter(testUser)
		router.GET("/api/courses", NewCourseController(svc).GetCourses)

		rec := doJSON(router, http.MethodGet, "/api/courses", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var courses []dto.CourseResponse
		decodeData(t, rec, &courses)
		require.Len(t, courses, 1)
		assert.Equal(t, "CS 050", courses[0].CatalogNumber)
	})

	t.Run("create", func(t *testing.T) {
		svc := &fakeCourseService{}
		router := newRouter(testUser)
		router.POST("/api/courses", NewCourseController(svc).CreateCourse)

		rec := doJSON(router, http.MethodPost, "/api/courses", validCourse)
		require.Equal(t, http.StatusCreated, rec.Code)
		var course dto.CourseResponse
		decodeData(t, rec, &course)
		assert.Equal(t, "CS 050", course.CatalogNumber)
		require.NotNil(t, svc.created)
		assert.Equal(t, "CS", svc.created.Area)
	})

	t.Run("create missing title", func(t *testing.T) {
		svc := &fakeCourseService{}
		router := newRouter(testUser)
		router.POST("/api/courses", NewCourseController(svc).CreateCourse)

		body := validCourse
		body.Title = "  "
		rec := doJSON(router, http.MethodPost, "/api/courses", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, rec).Code)
		assert.Nil(t, svc.created)
	})

	t.Run("create duplicate", func(t *testing.T) {
		svc := &fakeCourseService{err: apperrors.ErrCourseAlreadyExists}
		router := newRouter(testUser)
		router.POST("/api/courses", NewCourseController(svc).CreateCourse)

		rec := doJSON(router, http.MethodPost, "/api/courses", validCourse)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("update bad id", func(t *testing.T) {
		router := newRouter(testUser)
		router.PUT("/api/courses/:id", NewCourseController(&fakeCourseService{}).UpdateCourse)

		rec := doJSON(router, http.MethodPut, "/api/courses/42", validCourse)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update missing course", func(t *testing.T) {
		router := newRouter(testUser)
		router.PUT("/api/courses/:id", NewCourseController(&fakeCourseService{err: apperrors.ErrCourseNotFound}).UpdateCourse)

		rec := doJSON(router, http.MethodPut, "/api/courses/"+courseID, validCourse)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Could not find any entity of type Course with the supplied ID", decodeError(t, rec).Message)
	})
}

type fakeInstanceService struct {
	rawYears    string
	numYears    int
	instructors []string
	err         error
}

func (f *fakeInstanceService) ListByAcademicYears(_ context.Context, raw string) ([][]dto.CourseInstanceResponse, error) {
	f.rawYears = raw
	return [][]dto.CourseInstanceResponse{{{ID: courseID, AcademicYear: 2020}}}, f.err
}

func (f *fakeInstanceService) MultiYearPlan(_ context.Context, numYears int) ([]dto.MultiYearPlanResponse, error) {
	f.numYears = numYears
	if numYears > 10 {
		return nil, apperrors.NewValidationError("numYears", "numYears must be between 1 and 10")
	}
	return []dto.MultiYearPlanResponse{}, f.err
}

func (f *fakeInstanceService) UpdateInstance(_ context.Context, id string, req *dto.UpdateCourseInstanceRequest) (*dto.InstanceBlock, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.InstanceBlock{ID: id, Offered: req.Offered, PreEnrollment: req.PreEnrollment}, nil
}

func (f *fakeInstanceService) ReplaceInstructors(_ context.Context, _ string, ids []string) ([]dto.InstructorData, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.instructors = ids
	out := make([]dto.InstructorData, len(ids))
	for i, id := range ids {
		out[i] = dto.InstructorData{ID: id, InstructorOrder: i}
	}
	return out, nil
}

func TestCourseInstanceController(t *testing.T) {
	setup := func(svc *fakeInstanceService) *gin.Engine {
		c := NewCourseInstanceController(svc)
		router := newRouter(testUser)
		router.GET("/api/course-instances", c.GetCourseInstances)
		router.GET("/api/course-instances/multi-year-plan", c.GetMultiYearPlan)
		router.PUT("/api/course-instances/:id", c.UpdateCourseInstance)
		router.PUT("/api/course-instances/:id/instructors", c.UpdateInstructors)
		return router
	}

	t.Run("years are passed through", func(t *testing.T) {
		svc := &fakeInstanceService{}
		rec := doJSON(setup(svc), http.MethodGet, "/api/course-instances?acadYear=2019,2020", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2019,2020", svc.rawYears)
		var years [][]dto.CourseInstanceResponse
		decodeData(t, rec, &years)
		require.Len(t, years, 1)
	})

	t.Run("plan defaults to four years", func(t *testing.T) {
		svc := &fakeInstanceService{}
		rec := doJSON(setup(svc), http.MethodGet, "/api/course-instances/multi-year-plan", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 4, svc.numYears)
	})

	t.Run("plan rejects non numeric years", func(t *testing.T) {
		rec := doJSON(setup(&fakeInstanceService{}), http.MethodGet, "/api/course-instances/multi-year-plan?numYears=many", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("plan rejects too many years", func(t *testing.T) {
		rec := doJSON(setup(&fakeInstanceService{}), http.MethodGet, "/api/course-instances/multi-year-plan?numYears=11", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, rec).Code)
	})

	t.Run("update instance", func(t *testing.T) {
		rec := doJSON(setup(&fakeInstanceService{}), http.MethodPut, "/api/course-instances/"+instanceID,
			`{"offered":"Y","preEnrollment":12}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var block dto.InstanceBlock
		decodeData(t, rec, &block)
		assert.Equal(t, "Y", block.Offered)
		require.NotNil(t, block.PreEnrollment)
		assert.Equal(t, 12, *block.PreEnrollment)
	})

	t.Run("update rejects unknown offered value", func(t *testing.T) {
		rec := doJSON(setup(&fakeInstanceService{}), http.MethodPut, "/api/course-instances/"+instanceID, `{"offered":"MAYBE"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update rejects negative enrollment", func(t *testing.T) {
		rec := doJSON(setup(&fakeInstanceService{}), http.MethodPut, "/api/course-instances/"+instanceID, `{"actualEnrollment":-1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("replace instructors", func(t *testing.T) {
		svc := &fakeInstanceService{}
		ids := []string{areaID, courseID}
		rec := doJSON(setup(svc), http.MethodPut, "/api/course-instances/"+instanceID+"/instructors",
			dto.InstructorListRequest{Instructors: ids})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, ids, svc.instructors)
	})

	t.Run("instructor ids must be uuids", func(t *testing.T) {
		rec := doJSON(setup(&fakeInstanceService{}), http.MethodPut, "/api/course-instances/"+instanceID+"/instructors",
			`{"instructors":["abc"]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing instance", func(t *testing.T) {
		svc := &fakeInstanceService{err: apperrors.ErrCourseInstanceNotFound}
		rec := doJSON(setup(svc), http.MethodPut, "/api/course-instances/"+instanceID+"/instructors",
			dto.InstructorListRequest{Instructors: []string{}})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

type fakeFacultyService struct {
	rawYears string
	err      error
}

func (f *fakeFacultyService) ListFaculty(context.Context) ([]dto.FacultyResponse, error) {
	return []dto.FacultyResponse{{ID: courseID, LastName: "Malan"}}, f.err
}

func (f *fakeFacultyService) CreateFaculty(_ context.Context, req *dto.FacultyRequest) (*dto.FacultyResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.FacultyResponse{ID: courseID, HUID: req.HUID, Category: req.Category}, nil
}

func (f *fakeFacultyService) UpdateFaculty(_ context.Context, id string, req *dto.FacultyRequest) (*dto.FacultyResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.FacultyResponse{ID: id, HUID: req.HUID}, nil
}

func (f *fakeFacultyService) ListInstructors(context.Context) ([]dto.InstructorResponse, error) {
	return []dto.InstructorResponse{{ID: courseID, DisplayName: "Malan, David"}}, f.err
}

func (f *fakeFacultyService) Schedule(_ context.Context, raw string) (map[int][]dto.FacultyScheduleResponse, error) {
	f.rawYears = raw
	return map[int][]dto.FacultyScheduleResponse{2021: {{ID: courseID, AcademicYear: 2021}}}, f.err
}

func (f *fakeFacultyService) UpdateAbsence(_ context.Context, id string, req *dto.AbsenceRequest) (*dto.AbsenceResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AbsenceResponse{ID: id, Type: req.Type}, nil
}

func TestFacultyController(t *testing.T) {
	setup := func(svc *fakeFacultyService) *gin.Engine {
		c := NewFacultyController(svc)
		router := newRouter(testUser)
		router.GET("/api/faculty", c.GetAllFaculty)
		router.POST("/api/faculty", c.CreateFaculty)
		router.PUT("/api/faculty/:id", c.UpdateFaculty)
		router.GET("/api/faculty/schedule", c.GetSchedule)
		router.PUT("/api/faculty/absence/:id", c.UpdateAbsence)
		return router
	}
	valid := dto.FacultyRequest{HUID: "12345678", LastName: "Malan", Category: "LADDER", Area: areaID}

	t.Run("create", func(t *testing.T) {
		rec := doJSON(setup(&fakeFacultyService{}), http.MethodPost, "/api/faculty", valid)
		require.Equal(t, http.StatusCreated, rec.Code)
		var faculty dto.FacultyResponse
		decodeData(t, rec, &faculty)
		assert.Equal(t, "12345678", faculty.HUID)
	})

	t.Run("create reports field messages", func(t *testing.T) {
		body := valid
		body.Category = "VISITING"
		rec := doJSON(setup(&fakeFacultyService{}), http.MethodPost, "/api/faculty", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		detail := decodeError(t, rec)
		assert.Equal(t, "category must be one of: LADDER NON_LADDER NON_SEAS_LADDER", detail.Message)
	})

	t.Run("create with unknown area", func(t *testing.T) {
		rec := doJSON(setup(&fakeFacultyService{err: apperrors.ErrAreaNotFound}), http.MethodPost, "/api/faculty", valid)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "The entered Area does not exist", decodeError(t, rec).Message)
	})

	t.Run("update missing", func(t *testing.T) {
		rec := doJSON(setup(&fakeFacultyService{err: apperrors.ErrFacultyNotFound}), http.MethodPut, "/api/faculty/"+courseID, valid)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("schedule years", func(t *testing.T) {
		svc := &fakeFacultyService{}
		rec := doJSON(setup(svc), http.MethodGet, "/api/faculty/schedule?acadYears=2021", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2021", svc.rawYears)
		var schedule map[string][]dto.FacultyScheduleResponse
		decodeData(t, rec, &schedule)
		assert.Len(t, schedule["2021"], 1)
	})

	t.Run("absence type", func(t *testing.T) {
		rec := doJSON(setup(&fakeFacultyService{}), http.MethodPut, "/api/faculty/absence/"+instanceID, dto.AbsenceRequest{Type: "SABBATICAL"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(setup(&fakeFacultyService{}), http.MethodPut, "/api/faculty/absence/"+instanceID, dto.AbsenceRequest{Type: "VACATION"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type fakeMeetingService struct {
	parentID string
	meetings []dto.MeetingRequest
	query    *dto.RoomAvailabilityQuery
	err      error
}

func (f *fakeMeetingService) ReplaceMeetings(_ context.Context, parentID string, meetings []dto.MeetingRequest) ([]dto.MeetingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.parentID = parentID
	f.meetings = meetings
	return []dto.MeetingResponse{}, nil
}

func (f *fakeMeetingService) ListRooms(context.Context) ([]dto.RoomResponse, error) {
	return []dto.RoomResponse{{ID: areaID, Name: "Maxwell Dworkin G115"}}, f.err
}

func (f *fakeMeetingService) RoomAvailability(_ context.Context, query *dto.RoomAvailabilityQuery) ([]dto.RoomAvailabilityResponse, error) {
	f.query = query
	return []dto.RoomAvailabilityResponse{}, f.err
}

func TestMeetingController(t *testing.T) {
	setup := func(svc *fakeMeetingService) *gin.Engine {
		c := NewMeetingController(svc)
		router := newRouter(testUser)
		router.PUT("/api/meetings/:parentId", c.ReplaceMeetings)
		router.GET("/api/rooms", c.GetRooms)
		router.GET("/api/rooms/availability", c.GetRoomAvailability)
		return router
	}

	t.Run("replace", func(t *testing.T) {
		svc := &fakeMeetingService{}
		body := `{"meetings":[{"day":"MON","startTime":"10:00","endTime":"11:15","roomId":"` + areaID + `"}]}`
		rec := doJSON(setup(svc), http.MethodPut, "/api/meetings/"+instanceID, body)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, instanceID, svc.parentID)
		require.Len(t, svc.meetings, 1)
		assert.Equal(t, "MON", svc.meetings[0].Day)
	})

	t.Run("end before start", func(t *testing.T) {
		svc := &fakeMeetingService{}
		body := `{"meetings":[{"day":"MON","startTime":"11:00","endTime":"10:00"}]}`
		rec := doJSON(setup(svc), http.MethodPut, "/api/meetings/"+instanceID, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.parentID)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc := &fakeMeetingService{err: apperrors.ErrRoomNotFound}
		rec := doJSON(setup(svc), http.MethodPut, "/api/meetings/"+instanceID, `{"meetings":[]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown parent", func(t *testing.T) {
		svc := &fakeMeetingService{err: apperrors.ErrMeetingParentNotFound}
		rec := doJSON(setup(svc), http.MethodPut, "/api/meetings/"+instanceID, `{"meetings":[]}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("availability query", func(t *testing.T) {
		svc := &fakeMeetingService{}
		rec := doJSON(setup(svc), http.MethodGet,
			"/api/rooms/availability?calendarYear=2020&term=FALL&day=TUE&startTime=09:00&endTime=10:30", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.query)
		assert.Equal(t, 2020, svc.query.CalendarYear)
		assert.Equal(t, "TUE", svc.query.Day)
	})

	t.Run("availability needs a term", func(t *testing.T) {
		rec := doJSON(setup(&fakeMeetingService{}), http.MethodGet,
			"/api/rooms/availability?calendarYear=2020&day=TUE&startTime=09:00&endTime=10:30", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type fakeNonClassService struct {
	err error
}

func (f *fakeNonClassService) ListByAcademicYears(context.Context, string) (map[int][]dto.NonClassYearResponse, error) {
	return map[int][]dto.NonClassYearResponse{}, f.err
}

func (f *fakeNonClassService) CreateParent(_ context.Context, req *dto.NonClassParentRequest) (*dto.NonClassParentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.NonClassParentResponse{ID: courseID, Title: req.Title, Area: dto.AreaData{ID: req.Area}}, nil
}

func TestNonClassController(t *testing.T) {
	setup := func(svc *fakeNonClassService) *gin.Engine {
		c := NewNonClassController(svc)
		router := newRouter(testUser)
		router.POST("/api/non-class-events", c.CreateNonClassParent)
		return router
	}

	rec := doJSON(setup(&fakeNonClassService{}), http.MethodPost, "/api/non-class-events",
		dto.NonClassParentRequest{Area: areaID, Title: "Reading group"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(setup(&fakeNonClassService{}), http.MethodPost, "/api/non-class-events",
		dto.NonClassParentRequest{Area: areaID, Title: "Reading group", ContactEmail: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(setup(&fakeNonClassService{err: apperrors.ErrAreaNotFound}), http.MethodPost, "/api/non-class-events",
		dto.NonClassParentRequest{Area: areaID, Title: "Reading group"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "The entered Area does not exist", decodeError(t, rec).Message)

	rec = doJSON(setup(&fakeNonClassService{err: errors.New("boom")}), http.MethodPost, "/api/non-class-events",
		dto.NonClassParentRequest{Area: areaID, Title: "Reading group"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type fakeViewService struct {
	eppn    string
	deleted string
	err     error
}

func (f *fakeViewService) ListViews(_ context.Context, eppn string) ([]dto.ViewResponse, error) {
	f.eppn = eppn
	return []dto.ViewResponse{}, f.err
}

func (f *fakeViewService) CreateView(_ context.Context, eppn string, req *dto.ViewRequest) (*dto.ViewResponse, error) {
	f.eppn = eppn
	return &dto.ViewResponse{ID: areaID, Name: req.Name, Columns: req.Columns}, f.err
}

func (f *fakeViewService) DeleteView(_ context.Context, eppn, id string) error {
	f.eppn = eppn
	f.deleted = id
	return f.err
}

func TestViewController(t *testing.T) {
	setup := func(svc *fakeViewService, user *models.User) *gin.Engine {
		c := NewViewController(svc)
		router := newRouter(user)
		router.GET("/api/view", c.GetViews)
		router.POST("/api/view", c.CreateView)
		router.DELETE("/api/view/:id", c.DeleteView)
		return router
	}

	t.Run("views belong to the session user", func(t *testing.T) {
		svc := &fakeViewService{}
		rec := doJSON(setup(svc, testUser), http.MethodGet, "/api/view", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testUser.EPPN, svc.eppn)
	})

	t.Run("no user", func(t *testing.T) {
		rec := doJSON(setup(&fakeViewService{}, nil), http.MethodGet, "/api/view", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown column", func(t *testing.T) {
		rec := doJSON(setup(&fakeViewService{}, testUser), http.MethodPost, "/api/view",
			dto.ViewRequest{Name: "Mine", Columns: []string{"shoeSize"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create", func(t *testing.T) {
		rec := doJSON(setup(&fakeViewService{}, testUser), http.MethodPost, "/api/view",
			dto.ViewRequest{Name: "Mine", Columns: []string{dto.ViewColumns[0]}})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("delete someone else's view", func(t *testing.T) {
		svc := &fakeViewService{err: apperrors.ErrViewNotFound}
		rec := doJSON(setup(svc, testUser), http.MethodDelete, "/api/view/"+areaID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, areaID, svc.deleted)
	})
}

type fakeScheduleService struct {
	term models.Term
	year int
}

func (f *fakeScheduleService) Schedule(_ context.Context, term models.Term, calendarYear int) ([]dto.ScheduleEntryResponse, error) {
	f.term, f.year = term, calendarYear
	return []dto.ScheduleEntryResponse{}, nil
}

func TestScheduleController(t *testing.T) {
	svc := &fakeScheduleService{}
	router := newRouter(testUser)
	router.GET("/api/schedule", NewScheduleController(svc).GetSchedule)

	rec := doJSON(router, http.MethodGet, "/api/schedule?term=SPRING&calendarYear=2021", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.TermSpring, svc.term)
	assert.Equal(t, 2021, svc.year)

	rec = doJSON(router, http.MethodGet, "/api/schedule?term=SUMMER&calendarYear=2021", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeReportService struct {
	start, end int
	err        error
}

func (f *fakeReportService) WriteCourseReport(_ context.Context, start, end int, w io.Writer) error {
	f.start, f.end = start, end
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("PK"))
	return err
}

func TestReportController(t *testing.T) {
	setup := func(svc *fakeReportService) *gin.Engine {
		router := newRouter(testUser)
		router.GET("/api/report/courses", NewReportController(svc).GetCoursesReport)
		return router
	}

	svc := &fakeReportService{}
	rec := doJSON(setup(svc), http.MethodGet, "/api/report/courses?startYear=2020&endYear=2022", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="courses_2020-2022.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
	assert.Equal(t, 2020, svc.start)
	assert.Equal(t, 2022, svc.end)

	svc = &fakeReportService{err: apperrors.NewValidationError("startYear", "Start year cannot be after end year")}
	rec = doJSON(setup(svc), http.MethodGet, "/api/report/courses?startYear=2023&endYear=2022", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

type fakeSemesterService struct{}

func (fakeSemesterService) YearList(context.Context) ([]string, error) {
	return []string{"2020", "2021"}, nil
}

func (fakeSemesterService) SemesterList(context.Context) ([]string, error) {
	return []string{"SPRING 2020", "FALL 2020"}, nil
}

func (fakeSemesterService) Metadata(context.Context) (*dto.MetadataResponse, error) {
	return &dto.MetadataResponse{CurrentAcademicYear: 2021, Areas: []string{"CS"}}, nil
}

func TestMetadataController(t *testing.T) {
	c := NewMetadataController(fakeSemesterService{})
	router := newRouter(testUser)
	router.GET("/api/metadata", c.GetMetadata)
	router.GET("/api/semesters", c.GetSemesters)

	rec := doJSON(router, http.MethodGet, "/api/metadata", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var metadata dto.MetadataResponse
	decodeData(t, rec, &metadata)
	assert.Equal(t, 2021, metadata.CurrentAcademicYear)

	rec = doJSON(router, http.MethodGet, "/api/semesters", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var semesters []string
	decodeData(t, rec, &semesters)
	assert.Equal(t, []string{"SPRING 2020", "FALL 2020"}, semesters)
}

func TestUserController(t *testing.T) {
	router := newRouter(testUser)
	router.GET("/api/users/current", NewUserController().GetCurrentUser)

	rec := doJSON(router, http.MethodGet, "/api/users/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user dto.UserResponse
	decodeData(t, rec, &user)
	assert.Equal(t, testUser.EPPN, user.EPPN)
	assert.Equal(t, "Test User", user.FullName)
	assert.Equal(t, []string{"admin"}, user.Groups)
}

func TestLogController(t *testing.T) {
	router := newRouter(testUser)
	router.POST("/api/log", NewLogController().CreateLog)

	rec := doJSON(router, http.MethodPost, "/api/log", dto.ClientLogRequest{Level: "error", Message: "Failed to load courses",
		Context: map[string]interface{}{"status": 500}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/log", dto.ClientLogRequest{Level: "trace", Message: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthController(t *testing.T) {
	router := gin.New()
	down := fakePinger{err: errors.New("refused")}
	router.GET("/ok", NewHealthController(fakePinger{}, fakePinger{}).Check)
	router.GET("/db-down", NewHealthController(down, fakePinger{}).Check)
	router.GET("/redis-down", NewHealthController(fakePinger{}, down).Check)

	rec := doJSON(router, http.MethodGet, "/ok", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doJSON(router, http.MethodGet, "/db-down", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(router, http.MethodGet, "/redis-down", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}

type fakeSessions struct {
	user      *models.User
	created   *models.User
	destroyed bool
}

func (f *fakeSessions) Create(_ context.Context, w http.ResponseWriter, user *models.User) (string, error) {
	f.created = user
	http.SetCookie(w, &http.Cookie{Name: "planner.sid", Value: "abc"})
	return "abc", nil
}

func (f *fakeSessions) Load(context.Context, *http.Request) (*models.User, error) {
	if f.user == nil {
		return nil, session.ErrNoSession
	}
	return f.user, nil
}

func (f *fakeSessions) Destroy(context.Context, http.ResponseWriter, *http.Request) error {
	f.destroyed = true
	return nil
}

func TestAuthController_DevMode(t *testing.T) {
	sessions := &fakeSessions{}
	dev := session.DevUser("admin")
	c := NewAuthController(sessions, nil, dev, "http://localhost:3000")
	assert.False(t, c.SAMLEnabled())

	router := gin.New()
	router.GET("/login", c.Login)
	router.GET("/logout", c.Logout)
	router.GET("/saml/*action", c.SAML)

	rec := doJSON(router, http.MethodGet, "/login", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Location"))
	assert.Equal(t, dev, sessions.created)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "planner.sid=abc")

	rec = doJSON(router, http.MethodGet, "/logout", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, sessions.destroyed)

	rec = doJSON(router, http.MethodGet, "/saml/metadata", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthController_SAMLError(t *testing.T) {
	c := NewAuthController(&fakeSessions{}, nil, nil, "")
	rec := httptest.NewRecorder()
	c.samlError(rec, httptest.NewRequest(http.MethodPost, "/saml/acs", nil), errors.New("bad assertion"))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, dto.ErrorCodeUnauthorized, detail.Code)
	assert.Equal(t, "You are not authorized to use this application. Please contact SEAS computing", detail.Message)
}
