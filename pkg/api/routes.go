package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterOptions configures SetupRouter.
type RouterOptions struct {
	CORSAllowedOrigin string
	// MetricsHandler is served on /metrics when set.
	MetricsHandler http.Handler
	Logger         *zap.Logger
}

// SetupRouter configures the Gin router with all API routes.
func SetupRouter(handler *APIHandler, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(RequestLogger(logger), gin.Recovery())
	router.Use(CORSMiddleware(opts.CORSAllowedOrigin))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	apiGroup := router.Group("/api")
	{
		// Catalog endpoints
		apiGroup.GET("/packages", handler.GetPackagesHandler)
		apiGroup.GET("/packages/:repoName/:packageName", handler.GetPackageHandler)

		// Install methods endpoints
		apiGroup.GET("/packages/:repoName/:packageName/install-methods", handler.GetInstallMethodsHandler)
		apiGroup.POST("/install-methods", handler.ResolveInstallMethodsHandler)
	}
	return router
}
