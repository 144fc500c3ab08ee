package handlers

import (
	"net/http"

	"revenue-model/internal/api/models"
	"revenue-model/internal/model"
	"revenue-model/internal/service"

	"github.com/gin-gonic/gin"
)

// ScenarioHandler handles scenario and price requests
type ScenarioHandler struct {
	svc *service.Service
}

func NewScenarioHandler(svc *service.Service) *ScenarioHandler {
	return &ScenarioHandler{svc: svc}
}

// ListScenarios handles GET /api/v1/scenarios
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	scs, err := h.svc.ListScenarios(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": models.FromScenarios(scs)})
}

// CreateScenario handles POST /api/v1/scenarios
func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	var req models.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sc, err := h.svc.CreateScenario(c.Request.Context(), model.Scenario{
		Name:     req.Name,
		Active:   req.Active,
		ETHPrice: req.ETHPrice,
		BTCPrice: req.BTCPrice,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.FromScenario(sc))
}

// GetScenario handles GET /api/v1/scenarios/:id
// The id "active" resolves to the active scenario.
func (h *ScenarioHandler) GetScenario(c *gin.Context) {
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromScenario(sc))
}

// UpdatePrices handles PUT /api/v1/scenarios/:id/prices
func (h *ScenarioHandler) UpdatePrices(c *gin.Context) {
	var req models.PricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}
	sc, err = h.svc.UpdatePrices(c.Request.Context(), sc.ID, *req.ETHPrice, *req.BTCPrice)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromScenario(sc))
}

// ApplyAssumptions handles POST /api/v1/scenarios/:id/assumptions
func (h *ScenarioHandler) ApplyAssumptions(c *gin.Context) {
	var req models.AssumptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}

	a := service.Assumptions{MonthlyGrowth: req.MonthlyGrowth}
	if len(req.YieldByCurrency) > 0 {
		a.YieldByCurrency = make(map[model.Currency]float64, len(req.YieldByCurrency))
		for code, v := range req.YieldByCurrency {
			cur, err := model.ParseCurrency(code)
			if err != nil {
				writeError(c, err)
				return
			}
			a.YieldByCurrency[cur] = v
		}
	}

	n, err := h.svc.ApplyAssumptions(c.Request.Context(), sc.ID, a)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AssumptionsResponse{Updated: n})
}

// resolveScenario accepts service.ActiveScenarioID as well as real ids.
func resolveScenario(c *gin.Context, svc *service.Service) (model.Scenario, error) {
	return svc.GetScenario(c.Request.Context(), c.Param("id"))
}
