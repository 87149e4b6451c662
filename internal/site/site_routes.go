package site

import (
	"github.com/prasadp25/protecther-hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	sites := r.Group("/sites")
	{
		sites.GET("", middleware.RateLimitByIP(10, 20), h.GetAll)
		sites.POST("", middleware.RateLimitByIP(1, 3), h.Create)
	}
}
