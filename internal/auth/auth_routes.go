package auth

import (
	"github.com/prasadp25/protecther-hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts the endpoints that issue tokens.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.1, 5), handler.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(1, 5), handler.Refresh)
	}
}

// RegisterRoutes mounts the endpoints that need an authenticated caller;
// r is expected to carry Authenticate and Authorize.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.RateLimitByIP(2, 5), handler.Me)
		auth.POST("/register", middleware.RateLimitByIP(0.1, 1), handler.Register)
	}
}
