package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fulfillment-service/app/controllers"
)

// SetupAPIRoutes thiết lập API routes cho form vận đơn
func SetupAPIRoutes(router *gin.Engine, fulfillmentController *controllers.FulfillmentController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		fulfillment := v1.Group("/fulfillment")
		{
			sessions := fulfillment.Group("/sessions")
			{
				sessions.POST("", fulfillmentController.OpenSession)
				sessions.GET("/:id", fulfillmentController.GetSession)
				sessions.PATCH("/:id", fulfillmentController.EditField)
				sessions.POST("/:id/submit", fulfillmentController.Submit)
				sessions.DELETE("/:id", fulfillmentController.CloseSession)
			}

			// Thao tác trên vận đơn đã tạo
			fulfillment.POST("/orders/:code/cancel", fulfillmentController.CancelOrder)
		}

		v1.GET("/health", fulfillmentController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, fulfillmentController *controllers.FulfillmentController) {
	router.GET("/health", fulfillmentController.HealthCheck)
	router.GET("/ready", fulfillmentController.HealthCheck)
	router.GET("/live", fulfillmentController.HealthCheck)
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, fulfillmentController *controllers.FulfillmentController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, fulfillmentController)
	SetupAPIRoutes(router, fulfillmentController)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}
