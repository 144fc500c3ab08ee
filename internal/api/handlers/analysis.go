package handlers

import (
	"net/http"

	"revenue-model/internal/analysis"
	"revenue-model/internal/api/models"
	"revenue-model/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles comparison, sweep and take-rate requests
type AnalysisHandler struct {
	svc *service.Service
}

func NewAnalysisHandler(svc *service.Service) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// Compare handles POST /api/v1/compare
func (h *AnalysisHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	settings, err := req.Settings.ToSettings()
	if err != nil {
		writeError(c, err)
		return
	}

	variations := make([]analysis.Variation, 0, len(req.Variations))
	for _, v := range req.Variations {
		units, err := models.ToUnits(v.Units)
		if err != nil {
			writeError(c, err)
			return
		}
		variations = append(variations, analysis.Variation{
			Name:     v.Name,
			Scenario: v.Scenario.ToScenario(),
			Units:    units,
		})
	}

	results, err := h.svc.Compare(c.Request.Context(), req.ScenarioID, variations, settings)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.CompareResponse{Comparison: make([]models.ComparisonResult, 0, len(results))}
	for _, r := range results {
		out := models.ComparisonResult{Name: r.Name}
		if r.Err != nil {
			_, detail := ErrorDetail(r.Err)
			out.Error = &detail
		} else {
			summary := models.FromSummary(r.Summary)
			out.Summary = &summary
			out.Years = models.FromYears(r.Years)
		}
		resp.Comparison = append(resp.Comparison, out)
	}
	c.JSON(http.StatusOK, resp)
}

// Sweep handles POST /api/v1/sweep
func (h *AnalysisHandler) Sweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	param, err := analysis.ParseParameter(req.Parameter)
	if err != nil {
		writeError(c, err)
		return
	}
	settings, err := req.Settings.ToSettings()
	if err != nil {
		writeError(c, err)
		return
	}
	points, err := h.svc.Sweep(c.Request.Context(), req.ScenarioID, settings, param, req.Values)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromSweep(param, points))
}

// TakeRate handles POST /api/v1/takerate
func (h *AnalysisHandler) TakeRate(c *gin.Context) {
	var req models.TakeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	split := analysis.DefaultFeeSplit()
	if req.FeeSplit != nil {
		split = analysis.FeeSplit{
			ManagementDAO:       req.FeeSplit.ManagementDAO,
			PerformanceDAO:      req.FeeSplit.PerformanceDAO,
			ManagementOperator:  req.FeeSplit.ManagementOperator,
			PerformanceOperator: req.FeeSplit.PerformanceOperator,
		}
	}
	tr, err := analysis.ComputeTakeRate(analysis.AssetInput{
		Name:           req.Name,
		Balance:        req.Balance,
		Price:          req.Price,
		GrowthAPR:      req.GrowthAPR,
		ManagementFee:  req.ManagementFee,
		PerformanceFee: req.PerformanceFee,
	}, split)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromTakeRate(tr))
}
