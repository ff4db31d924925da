package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alfurqan/prayertrack-backend/internal/config"
	"github.com/alfurqan/prayertrack-backend/internal/handler"
	"github.com/alfurqan/prayertrack-backend/internal/metrics"
	"github.com/alfurqan/prayertrack-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Class      *handler.ClassHandler
	Student    *handler.StudentHandler
	Attendance *handler.AttendanceHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate
// middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes
	// metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint.
	router.GET("/metrics", metrics.Handler())

	// Live-update subscriber stream.
	router.GET("/ws", handlers.WS.Subscribe)

	api := router.Group("/api/v1")
	{
		api.GET("/classes", handlers.Class.ListClasses)
		api.POST("/classes", handlers.Class.UpsertClass)
		api.DELETE("/classes/:id", handlers.Class.DeleteClass)

		api.GET("/students", handlers.Student.ListStudents)
		api.POST("/students", handlers.Student.UpsertStudent)
		api.DELETE("/students/:id", handlers.Student.DeleteStudent)

		api.GET("/attendance", handlers.Attendance.ListAttendance)
		api.GET("/attendance/summary", handlers.Attendance.SummarizeAttendance)
		api.POST("/attendance", handlers.Attendance.UpsertAttendance)
		api.DELETE("/attendance/:id", handlers.Attendance.DeleteAttendance)
	}

	return router
}
