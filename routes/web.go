package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Shipping Fulfillment Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Fulfillment API v1",
				"endpoints": map[string]string{
					"open_session":  "POST /v1/fulfillment/sessions",
					"get_session":   "GET /v1/fulfillment/sessions/:id",
					"edit_field":    "PATCH /v1/fulfillment/sessions/:id",
					"submit":        "POST /v1/fulfillment/sessions/:id/submit",
					"close_session": "DELETE /v1/fulfillment/sessions/:id",
					"cancel_order":  "POST /v1/fulfillment/orders/:code/cancel",
					"health":        "GET /v1/health",
				},
			})
		})

		// Status page
		web.GET("/status", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "running",
				"service": "Shipping Fulfillment",
			})
		})
	}
}
