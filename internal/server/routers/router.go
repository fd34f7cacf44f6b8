package routers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"expmon/internal/server/handlers/alert"
	"expmon/internal/server/handlers/product"
	"expmon/internal/server/handlers/recipe"
	"expmon/internal/server/middlewares"
	"expmon/pkg/logger"
)

// ServiceName 健康检查中的服务名
const ServiceName = "expmon"

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	productHandler *product.ProductHandler,
	recipeHandler *recipe.RecipeHandler,
	alertHandler *alert.AlertHandler,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.Logger(log))
	r.Use(middlewares.Recovery(log))
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", health)

		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.GET("/search", productHandler.Search)
			products.GET("/category/:category", productHandler.ByCategory)
			products.GET("/expiring-in-days/:days", productHandler.ExpiringInDays)
			products.GET("/expiring-tomorrow", productHandler.ExpiringTomorrow)
			products.GET("/expired", productHandler.Expired)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.POST("/suggest", recipeHandler.SuggestForMany)
			recipes.GET("/:productName", recipeHandler.Suggest)
		}

		alerts := v1.Group("/alerts")
		{
			alerts.GET("/history", alertHandler.History)
			alerts.GET("/stats", alertHandler.Stats)
			alerts.POST("/check", alertHandler.Check)
		}
	}

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   ServiceName,
		"message":   "Service is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
