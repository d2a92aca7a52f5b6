package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/validation"
)

// BindErrors turns a binding error into per-field messages. Errors that are
// not rule violations, such as malformed JSON, become a single entry.
func BindErrors(err error) []dto.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, dto.FieldError{Field: fe.Field(), Message: validation.Message(fe)})
		}
		return fields
	}
	return []dto.FieldError{{Message: err.Error()}}
}

// HandleBindError answers 400 for a request that failed binding or validation
func HandleBindError(c *gin.Context, err error) {
	fields := BindErrors(err)
	message := "Invalid request format"
	if len(fields) > 0 && fields[0].Field != "" {
		message = fields[0].Message
	}
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithDetails(fields)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
