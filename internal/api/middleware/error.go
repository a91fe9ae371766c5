package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"portfolio-projection/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware turns panics into a 500 INTERNAL_ERROR response
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", "path", c.Request.URL.Path, "panic", fmt.Sprint(recovered))
		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    models.CodeInternalError,
				Message: message,
			},
		})
	})
}
