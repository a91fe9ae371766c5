package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"portfolio-projection/internal/api/models"
	"portfolio-projection/internal/data"
	"portfolio-projection/internal/export"
	"portfolio-projection/internal/model"
	"portfolio-projection/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: scenarios must be > 0", model.ErrInvalidConfiguration), http.StatusBadRequest, models.CodeInvalidConfiguration},
		{fmt.Errorf("%w: \"yolo\"", data.ErrUnknownProfile), http.StatusBadRequest, models.CodeUnknownProfile},
		{fmt.Errorf("%w: too big", service.ErrLimitExceeded), http.StatusUnprocessableEntity, models.CodeLimitExceeded},
		{fmt.Errorf("%w: docx", export.ErrUnsupportedFormat), http.StatusBadRequest, models.CodeUnsupportedFormat},
		{fmt.Errorf("run ensemble: %w", context.Canceled), http.StatusServiceUnavailable, models.CodeSimulationError},
		{errors.New("boom"), http.StatusInternalServerError, models.CodeSimulationError},
	}
	for _, tt := range tests {
		status, code := statusFor(tt.err)
		if status != tt.status || code != tt.code {
			t.Errorf("statusFor(%v) = %d %s, want %d %s", tt.err, status, code, tt.status, tt.code)
		}
	}
}
