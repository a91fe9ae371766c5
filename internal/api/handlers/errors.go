package handlers

import (
	"context"
	"errors"
	"net/http"

	"portfolio-projection/internal/api/models"
	"portfolio-projection/internal/data"
	"portfolio-projection/internal/export"
	"portfolio-projection/internal/model"
	"portfolio-projection/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps an error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidConfiguration):
		return http.StatusBadRequest, models.CodeInvalidConfiguration
	case errors.Is(err, data.ErrUnknownProfile):
		return http.StatusBadRequest, models.CodeUnknownProfile
	case errors.Is(err, service.ErrLimitExceeded):
		return http.StatusUnprocessableEntity, models.CodeLimitExceeded
	case errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusBadRequest, models.CodeUnsupportedFormat
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, models.CodeSimulationError
	default:
		return http.StatusInternalServerError, models.CodeSimulationError
	}
}

func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    models.CodeInvalidRequest,
			Message: err.Error(),
		},
	})
}

var errInterval = errors.New("interval_ms must be between 0 and 10000")
