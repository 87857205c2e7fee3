package api

import (
	"errors"
	"net/http"
	"warehouse-inventory/orm"

	"github.com/gin-gonic/gin"
)

// ServiceError represents public-facing errors of the inventory API
type ServiceError struct {
	Status  int
	Message string
	Fields  []orm.FieldError
	Inner   error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Inner
}

type errorResponse struct {
	Error     string           `json:"error"`
	Fields    []orm.FieldError `json:"fields,omitempty"`
	RequestID string           `json:"requestId,omitempty"`
}

// wrapServiceError converts internal errors to user-friendly service errors
func wrapServiceError(err error, operation string) *ServiceError {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}

	var validationErr *orm.ValidationError
	if errors.As(err, &validationErr) {
		return &ServiceError{
			Status:  http.StatusBadRequest,
			Message: "Validation failed for " + operation,
			Fields:  validationErr.Fields,
			Inner:   err,
		}
	}

	var badInputErr *orm.BadInputError
	if errors.As(err, &badInputErr) {
		return &ServiceError{
			Status:  http.StatusBadRequest,
			Message: badInputErr.Error(),
			Inner:   err,
		}
	}

	var notFoundErr *orm.NotFoundError
	if errors.As(err, &notFoundErr) {
		return &ServiceError{
			Status:  http.StatusNotFound,
			Message: "Not found for " + operation,
			Inner:   err,
		}
	}

	var conflictErr *orm.ConflictError
	if errors.As(err, &conflictErr) {
		return &ServiceError{
			Status:  http.StatusConflict,
			Message: "Conflict during " + operation,
			Inner:   err,
		}
	}

	// Database and unknown errors
	return &ServiceError{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error during " + operation,
		Inner:   err,
	}
}

func newBindError(err error) *ServiceError {
	return &ServiceError{
		Status:  http.StatusBadRequest,
		Message: "Malformed request: " + err.Error(),
		Inner:   err,
	}
}

func writeError(c *gin.Context, err *ServiceError) {
	c.AbortWithStatusJSON(err.Status, errorResponse{
		Error:     err.Message,
		Fields:    err.Fields,
		RequestID: c.GetString(requestIDKey),
	})
}
