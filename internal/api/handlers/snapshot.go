package handlers

import (
	"net/http"

	"revenue-model/internal/api/models"
	"revenue-model/internal/service"

	"github.com/gin-gonic/gin"
)

// SnapshotHandler handles save/restore of scenario defaults
type SnapshotHandler struct {
	svc *service.Service
}

func NewSnapshotHandler(svc *service.Service) *SnapshotHandler {
	return &SnapshotHandler{svc: svc}
}

// SaveSnapshot handles POST /api/v1/scenarios/:id/snapshots
func (h *SnapshotHandler) SaveSnapshot(c *gin.Context) {
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}
	snap, err := h.svc.SaveDefault(c.Request.Context(), sc.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.FromSnapshot(snap, true))
}

// ListSnapshots handles GET /api/v1/scenarios/:id/snapshots
func (h *SnapshotHandler) ListSnapshots(c *gin.Context) {
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}
	snaps, err := h.svc.ListSnapshots(c.Request.Context(), sc.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]models.SnapshotResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, models.FromSnapshot(s, false))
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": out})
}

// ResetToDefault handles POST /api/v1/scenarios/:id/reset
// Restores the newest snapshot.
func (h *SnapshotHandler) ResetToDefault(c *gin.Context) {
	sc, err := resolveScenario(c, h.svc)
	if err != nil {
		writeError(c, err)
		return
	}
	sc, err = h.svc.ResetToDefault(c.Request.Context(), sc.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromScenario(sc))
}

// RestoreSnapshot handles POST /api/v1/snapshots/:id/restore
func (h *SnapshotHandler) RestoreSnapshot(c *gin.Context) {
	sc, err := h.svc.RestoreSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.FromScenario(sc))
}
