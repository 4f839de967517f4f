// Package app provides HTTP handlers for the profile service.
package app

import (
	"github.com/gin-gonic/gin"

	"github.com/cinemahub/profile-service/internal/sdk/middleware"
)

// ----------------------------------------------------------------------------
// Route Registration
// ----------------------------------------------------------------------------

func (a *App) RegisterRoutes() *gin.Engine {
	router := gin.New()

	// Global middleware chain
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	// API v1 route group
	v1 := router.Group("/api/v1")
	{
		// Health check routes (public)
		health := v1.Group("/health")
		{
			health.GET("/readiness", a.HandleReadiness)
			health.GET("/liveness", a.HandleLiveness)
		}

		// Profile routes (protected - requires authentication)
		users := v1.Group("/users")
		users.Use(middleware.Authenticate(a.jwt))
		{
			users.POST("/:user_id/profile", a.HandleCreateProfile)
			users.GET("/:user_id/profile", a.HandleGetProfile)
		}
	}

	return router
}
