package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tracklawn/scheduler/internal/events"
	"github.com/tracklawn/scheduler/internal/handlers"
	"github.com/tracklawn/scheduler/internal/logger"
)

const (
	corsMaxAgeHours = 12
)

// NewRouter builds the gin engine with the scheduling routes.
// publisher may be nil when event publishing is disabled.
func NewRouter(service handlers.SchedulerService, publisher *events.Publisher, corsOrigins []string, log logger.Logger) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := router.Group("/api/v1")
	seriesHandler := handlers.NewSeriesHandler(service, publisher, log)
	instanceHandler := handlers.NewInstanceHandler(service, publisher, log)

	// Series endpoints
	series := v1.Group("/series")
	series.POST("", seriesHandler.Create)
	series.GET("", seriesHandler.List)
	series.GET("/:id", seriesHandler.GetByID)
	series.DELETE("/:id", seriesHandler.Archive)
	series.POST("/import", seriesHandler.ImportSeries)

	// Instance endpoints under a series
	series.POST("/:id/instances/generate", seriesHandler.GenerateInstances)
	series.GET("/:id/instances", instanceHandler.List)
	series.PATCH("/:id/instances/:instanceId/status", instanceHandler.UpdateStatus)
	series.POST("/:id/instances/:instanceId/convert", instanceHandler.Convert)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
