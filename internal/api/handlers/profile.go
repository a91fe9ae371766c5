package handlers

import (
	"net/http"

	"portfolio-projection/internal/api/models"
	"portfolio-projection/internal/model"
	"portfolio-projection/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves risk profile presets
type ProfileHandler struct {
	svc *service.Service
}

func NewProfileHandler(svc *service.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// ListProfiles handles GET /api/v1/profiles
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, models.ProfilesResponse{
		Profiles: h.svc.Profiles(),
		Default:  model.DefaultProfileID,
	})
}
