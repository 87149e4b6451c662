package employee

import (
	"github.com/prasadp25/protecther-hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	employees := r.Group("/employees")
	{
		employees.GET("", middleware.RateLimitByIP(10, 20), handler.List)
		employees.GET("/options", middleware.RateLimitByIP(10, 30), handler.GetOptions)
		employees.GET("/:id", middleware.RateLimitByIP(10, 20), handler.GetByID)

		employees.POST("",
			middleware.RateLimitByIP(1, 5),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		employees.PUT("/:id", middleware.RateLimitByIP(2, 5), handler.Update)
		employees.PATCH("/:id", middleware.RateLimitByIP(2, 5), handler.Patch)
		employees.DELETE("/:id", middleware.RateLimitByIP(1, 3), handler.Delete)
	}
}
