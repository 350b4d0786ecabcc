package router

import (
	"github.com/gin-gonic/gin"

	"concursos/internal/handler"
	"concursos/internal/middleware"
	"concursos/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	examH *handler.ExamHandler,
	positionH *handler.PositionHandler,
	runH *handler.RunHandler,
	exportH *handler.ExportHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Public read-only dataset routes
	v1.GET("/exams", examH.List)
	v1.GET("/exams/:id", examH.GetByID)
	v1.GET("/exams/:id/positions", examH.Positions)
	v1.GET("/positions", positionH.List)
	v1.GET("/stats", statsH.GetStats)
	v1.GET("/export/:format", exportH.Download)

	// Protected operator routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.GET("/exams/:id/bulletin", examH.BulletinURL)
	protected.POST("/exams/:id/reprocess", examH.Reprocess)
	protected.POST("/runs", runH.Trigger)
	protected.GET("/runs", runH.List)
	protected.GET("/runs/:id", runH.GetByID)

	return r
}
