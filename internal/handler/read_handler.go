package handler

import (
	"net/http"
	"strconv"
	"time"

	"school-service/internal/middleware"
	"school-service/internal/query"
	"school-service/pkg/logger"
	"school-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReadHandler serves the tenant-scoped read endpoints. Every request is
// pinned to the caller's organization unless the caller is a platform owner,
// who may scope to any tenant explicitly.
type ReadHandler struct {
	query *query.Composer
}

// NewReadHandler creates the read handler on the given composer
func NewReadHandler(q *query.Composer) *ReadHandler {
	return &ReadHandler{query: q}
}

// filterFromRequest builds the query filter from the request's scope
// parameters, with the organization pinned server-side.
func filterFromRequest(c echo.Context) (query.Filter, error) {
	var f query.Filter

	parse := func(name string) (uint, error) {
		raw := c.QueryParam(name)
		if raw == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
		}
		return uint(parsed), nil
	}

	requested, err := parse("organizationId")
	if err != nil {
		return f, err
	}
	f.OrganizationID = middleware.CallerOrganizationID(c, requested)

	if f.SchoolID, err = parse("schoolId"); err != nil {
		return f, err
	}
	if f.CampusID, err = parse("campusId"); err != nil {
		return f, err
	}
	if f.ClassID, err = parse("classId"); err != nil {
		return f, err
	}
	if f.TeacherID, err = parse("teacherId"); err != nil {
		return f, err
	}
	if f.StudentID, err = parse("studentId"); err != nil {
		return f, err
	}
	return f, nil
}

func (h *ReadHandler) respond(c echo.Context, key string, load func(query.Filter) (interface{}, error)) error {
	log := logger.FromContext(c)

	f, err := filterFromRequest(c)
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return c.JSON(httpErr.Code, echo.Map{"error": httpErr.Message})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	rows, err := load(f)
	if err != nil {
		log.Error("Failed to load "+key, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load " + key})
	}
	return c.JSON(http.StatusOK, echo.Map{key: rows})
}

// Students handles GET /students
func (h *ReadHandler) Students(c echo.Context) error {
	return h.respond(c, "students", func(f query.Filter) (interface{}, error) {
		return h.query.Students(f)
	})
}

// Schools handles GET /schools
func (h *ReadHandler) Schools(c echo.Context) error {
	return h.respond(c, "schools", func(f query.Filter) (interface{}, error) {
		return h.query.Schools(f)
	})
}

// Campuses handles GET /campuses
func (h *ReadHandler) Campuses(c echo.Context) error {
	return h.respond(c, "campuses", func(f query.Filter) (interface{}, error) {
		return h.query.Campuses(f)
	})
}

// Classes handles GET /classes
func (h *ReadHandler) Classes(c echo.Context) error {
	return h.respond(c, "classes", func(f query.Filter) (interface{}, error) {
		return h.query.Classes(f)
	})
}

// Subjects handles GET /subjects
func (h *ReadHandler) Subjects(c echo.Context) error {
	return h.respond(c, "subjects", func(f query.Filter) (interface{}, error) {
		return h.query.Subjects(f)
	})
}

// Assignments handles GET /assignments
func (h *ReadHandler) Assignments(c echo.Context) error {
	return h.respond(c, "assignments", func(f query.Filter) (interface{}, error) {
		return h.query.Assignments(f)
	})
}

// Grades handles GET /grades
func (h *ReadHandler) Grades(c echo.Context) error {
	return h.respond(c, "grades", func(f query.Filter) (interface{}, error) {
		return h.query.Grades(f)
	})
}
