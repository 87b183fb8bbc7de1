package route

import (
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/gin-gonic/gin"
)

// RegisterCustomerRoutes registers the customer module routes
func RegisterCustomerRoutes(r *gin.RouterGroup, customerController *controller.CustomerController, authMW gin.HandlerFunc) {
	customers := r.Group("/customers")
	customers.Use(authMW)
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/:id", customerController.Get)
		customers.PUT("/:id", customerController.Update)
		customers.DELETE("/:id", customerController.Delete)
		customers.PATCH("/:id/status", customerController.UpdateStatus)
	}
}
