package salarystructure

import (
	"github.com/prasadp25/protecther-hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	structures := r.Group("/salary-structures")
	{
		structures.GET("", middleware.RateLimitByIP(10, 20), h.List)
		structures.GET("/:id", middleware.RateLimitByIP(10, 20), h.GetByID)
		structures.POST("",
			middleware.RateLimitByIP(1, 5),
			middleware.Idempotency(rdb),
			h.Create,
		)
		structures.PUT("/:id", middleware.RateLimitByIP(2, 5), h.Update)
		structures.DELETE("/:id", middleware.RateLimitByIP(1, 3), h.Delete)
	}
}
