package handlers

import (
	"net/http"

	"revenue-model/internal/api/models"
	"revenue-model/internal/service"

	"github.com/gin-gonic/gin"
)

// UnitHandler handles unit CRUD requests
type UnitHandler struct {
	svc *service.Service
}

func NewUnitHandler(svc *service.Service) *UnitHandler {
	return &UnitHandler{svc: svc}
}

// ListUnits handles GET /api/v1/scenarios/:id/units
func (h *UnitHandler) ListUnits(c *gin.Context) {
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}
	units, err := h.svc.ListUnits(c.Request.Context(), sc.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": models.FromUnits(units)})
}

// CreateUnit handles POST /api/v1/scenarios/:id/units
func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var req models.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}
	u, err := req.Apply(models.UnitTemplate())
	if err != nil {
		writeError(c, err)
		return
	}
	created, err := h.svc.CreateUnit(c.Request.Context(), sc.ID, u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.FromUnit(created))
}

// GetUnit handles GET /api/v1/units/:id
func (h *UnitHandler) GetUnit(c *gin.Context) {
	u, err := h.svc.GetUnit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromUnit(u))
}

// UpdateUnit handles PUT /api/v1/units/:id
// Only fields present in the body change.
func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	var req models.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cur, err := h.svc.GetUnit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	u, err := req.Apply(cur)
	if err != nil {
		writeError(c, err)
		return
	}
	updated, err := h.svc.UpdateUnit(c.Request.Context(), u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromUnit(updated))
}

// DeleteUnit handles DELETE /api/v1/units/:id
func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	if err := h.svc.DeleteUnit(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CloneUnit handles POST /api/v1/units/:id/clone
func (h *UnitHandler) CloneUnit(c *gin.Context) {
	var req models.CloneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	clones, err := h.svc.CloneUnit(c.Request.Context(), c.Param("id"), req.Count)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"units": models.FromUnits(clones)})
}
