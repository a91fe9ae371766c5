package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"portfolio-projection/internal/analysis"
	"portfolio-projection/internal/api/models"
	"portfolio-projection/internal/export"
	"portfolio-projection/internal/logging"
	"portfolio-projection/internal/metrics"
	"portfolio-projection/internal/service"

	"github.com/gin-gonic/gin"
)

// SimulationHandler handles projection runs
type SimulationHandler struct {
	svc     *service.Service
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewSimulationHandler creates a new simulation handler. m may be nil.
func NewSimulationHandler(svc *service.Service, m *metrics.Metrics, logger *slog.Logger) *SimulationHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SimulationHandler{svc: svc, metrics: m, logger: logger}
}

// bind decodes the JSON body. An empty body is an all-defaults request.
func bind(c *gin.Context) (models.SimulationRequest, bool) {
	var req models.SimulationRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return req, false
	}
	return req, true
}

func (h *SimulationHandler) simulate(c *gin.Context) (*service.Outcome, bool) {
	req, ok := bind(c)
	if !ok {
		return nil, false
	}
	out, err := h.svc.Simulate(c.Request.Context(), req)
	if err != nil {
		h.logger.Info("simulation rejected", "error", err)
		respondError(c, err)
		return nil, false
	}
	return out, true
}

// RunSimulation handles POST /api/v1/simulations
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	out, ok := h.simulate(c)
	if !ok {
		return
	}
	res := out.Result
	c.JSON(http.StatusOK, models.SimulationResponse{
		Status:        "completed",
		Seed:          res.Seed,
		Scenarios:     res.Scenarios,
		HorizonMonths: out.Config.HorizonMonths,
		Profile:       out.Profile.ID,
		Cached:        out.Cached,
		ElapsedMS:     res.Elapsed.Milliseconds(),
		Series:        res.Series,
		Expected:      res.Expected(),
	})
}

// ExpectedValues handles POST /api/v1/simulations/expected
func (h *SimulationHandler) ExpectedValues(c *gin.Context) {
	out, ok := h.simulate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.ExpectedResponse{
		Seed:           out.Result.Seed,
		Scenarios:      out.Result.Scenarios,
		Profile:        out.Profile.ID,
		ExpectedValues: out.Result.Expected(),
	})
}

// ExportSimulation handles POST /api/v1/simulations/export?format=csv|xlsx|pdf
func (h *SimulationHandler) ExportSimulation(c *gin.Context) {
	var q models.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, err)
		return
	}
	if q.Format == "" {
		q.Format = string(export.FormatCSV)
	}
	format, err := export.ParseFormat(q.Format)
	if err != nil {
		h.metrics.ObserveExport("unknown", metrics.ResultError)
		respondError(c, err)
		return
	}

	out, ok := h.simulate(c)
	if !ok {
		h.metrics.ObserveExport(string(format), metrics.ResultError)
		return
	}

	var buf bytes.Buffer
	err = export.Write(&buf, format, export.Report{
		ProfileID: out.Profile.ID,
		Config:    out.Config,
		Seed:      out.Result.Seed,
		Series:    out.Result.Series,
	})
	if err != nil {
		h.metrics.ObserveExport(string(format), metrics.ResultError)
		h.logger.Error("export failed", "format", format, "error", err)
		respondError(c, err)
		return
	}
	h.metrics.ObserveExport(string(format), metrics.ResultSuccess)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.Filename(out.Result.Seed)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// CompareProfiles handles POST /api/v1/simulations/compare
func (h *SimulationHandler) CompareProfiles(c *gin.Context) {
	req, ok := bind(c)
	if !ok {
		return
	}
	outcomes, err := analysis.CompareProfiles(c.Request.Context(), h.svc, req)
	if err != nil {
		h.logger.Info("comparison rejected", "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CompareResponse{Comparison: outcomes})
}
