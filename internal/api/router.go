package api

import (
	"net/http"
	"strings"

	"revenue-model/internal/api/handlers"
	"revenue-model/internal/api/middleware"
	"revenue-model/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	CORSOrigins []string
	// StaticDir, when set, is served as a single-page app for every
	// non-API path. Callers check that it exists.
	StaticDir string
}

// NewRouter wires every /api/v1 route onto a gin engine.
func NewRouter(svc *service.Service, log *zap.Logger, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(opts.CORSOrigins))

	scenarios := handlers.NewScenarioHandler(svc)
	units := handlers.NewUnitHandler(svc)
	snapshots := handlers.NewSnapshotHandler(svc)
	projections := handlers.NewProjectionHandler(svc)
	analyses := handlers.NewAnalysisHandler(svc)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/scenarios", scenarios.ListScenarios)
		v1.POST("/scenarios", scenarios.CreateScenario)
		v1.GET("/scenarios/:id", scenarios.GetScenario)
		v1.PUT("/scenarios/:id/prices", scenarios.UpdatePrices)
		v1.POST("/scenarios/:id/assumptions", scenarios.ApplyAssumptions)

		v1.GET("/scenarios/:id/units", units.ListUnits)
		v1.POST("/scenarios/:id/units", units.CreateUnit)
		v1.GET("/units/:id", units.GetUnit)
		v1.PUT("/units/:id", units.UpdateUnit)
		v1.DELETE("/units/:id", units.DeleteUnit)
		v1.POST("/units/:id/clone", units.CloneUnit)

		v1.POST("/scenarios/:id/snapshots", snapshots.SaveSnapshot)
		v1.GET("/scenarios/:id/snapshots", snapshots.ListSnapshots)
		v1.POST("/scenarios/:id/reset", snapshots.ResetToDefault)
		v1.POST("/snapshots/:id/restore", snapshots.RestoreSnapshot)

		v1.GET("/scenarios/:id/projection", projections.GetProjection)
		v1.GET("/scenarios/:id/ranking", projections.GetRanking)
		v1.POST("/projection", projections.RunProjection)

		v1.POST("/compare", analyses.Compare)
		v1.POST("/sweep", analyses.Sweep)
		v1.POST("/takerate", analyses.TakeRate)
	}

	if opts.StaticDir != "" {
		router.Static("/assets", opts.StaticDir+"/assets")
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
				return
			}
			c.File(opts.StaticDir + "/index.html")
		})
	}

	return router
}
