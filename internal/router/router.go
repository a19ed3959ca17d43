package router

import (
	"github.com/gin-gonic/gin"

	"greenlens/internal/domain"
	"greenlens/internal/handler"
	"greenlens/internal/middleware"
	"greenlens/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	documentH *handler.DocumentHandler,
	emissionH *handler.EmissionHandler,
	reportH *handler.ReportHandler,
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
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Document processing routes
	documents := protected.Group("/documents")
	documents.POST("/process", documentH.Process)
	documents.POST("/process-batch", documentH.ProcessBatch)
	documents.GET("", documentH.List)
	documents.GET("/:id", documentH.Get)
	documents.GET("/:id/download", documentH.DownloadURL)
	documents.DELETE("/:id", middleware.RequireRole(string(domain.RoleAdmin)), documentH.Delete)

	// Emission calculation routes
	emissions := protected.Group("/emissions")
	emissions.POST("/calculate", emissionH.Calculate)
	emissions.GET("", emissionH.CalculateStored)

	// Sustainability report routes
	reports := protected.Group("/reports")
	reports.GET("/metrics", reportH.Metrics)
	reports.GET("/export", reportH.Export)
	reports.POST("/email", reportH.Email)

	return r
}
