package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
)

// ParseIDParam reads a path parameter that must hold a UUID.
func ParseIDParam(c *gin.Context, name string) (string, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewValidationError(name, name+" must be a valid id")
	}
	return id.String(), nil
}

// ParseIntQuery reads an optional integer query parameter, returning def when absent.
func ParseIntQuery(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(name, name+" must be an integer")
	}
	return value, nil
}
