package handlers

import (
	"net/http"

	"revenue-model/internal/api/models"
	"revenue-model/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectionHandler runs projections, stored or inline
type ProjectionHandler struct {
	svc *service.Service
}

func NewProjectionHandler(svc *service.Service) *ProjectionHandler {
	return &ProjectionHandler{svc: svc}
}

// GetProjection handles GET /api/v1/scenarios/:id/projection
func (h *ProjectionHandler) GetProjection(c *gin.Context) {
	var q models.ProjectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	settings, err := q.ToSettings()
	if err != nil {
		writeError(c, err)
		return
	}
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}
	rep, err := h.svc.Project(c.Request.Context(), sc.ID, settings)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromReport(sc, settings, rep, q.IncludeRows))
}

// GetRanking handles GET /api/v1/scenarios/:id/ranking
func (h *ProjectionHandler) GetRanking(c *gin.Context) {
	var q models.ProjectionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	settings, err := q.ToSettings()
	if err != nil {
		writeError(c, err)
		return
	}
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}
	ranks, err := h.svc.Rank(c.Request.Context(), sc.ID, settings)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromRankings(ranks))
}

// RunProjection handles POST /api/v1/projection
// Units and prices come from the body; the store is not used.
func (h *ProjectionHandler) RunProjection(c *gin.Context) {
	var req models.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	settings, err := req.Settings.ToSettings()
	if err != nil {
		writeError(c, err)
		return
	}
	units, err := models.ToUnits(req.Units)
	if err != nil {
		writeError(c, err)
		return
	}
	sc := req.Scenario.ToScenario()
	rep, err := h.svc.ProjectUnits(units, sc, settings)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromReport(sc, settings, rep, req.IncludeRows))
}
