package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aquarian247/aquamind-planning/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.PlannerHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api/v1")
	{
		api.GET("/templates", handler.ListTemplates)
		api.POST("/templates", handler.CreateTemplate)
		api.PUT("/templates/:id", handler.UpdateTemplate)
		api.DELETE("/templates/:id", handler.DeleteTemplate)

		api.GET("/activities", handler.ListActivities)
		api.POST("/activities", handler.CreateActivity)
		api.GET("/activities/kpis", handler.ActivityKPIs)
		api.GET("/activities/grouped", handler.GroupedActivities)
		api.POST("/activities/:id/start", handler.StartActivity)
		api.POST("/activities/:id/complete", handler.CompleteActivity)
		api.POST("/activities/:id/cancel", handler.CancelActivity)
		api.POST("/activities/:id/workflow", handler.SpawnWorkflow)

		api.POST("/batches/:id/materialize", handler.MaterializeBatch)
		api.GET("/variance", handler.VarianceReport)
		api.GET("/fleet/summary", handler.FleetSummary)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
