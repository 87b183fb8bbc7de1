package route

import (
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/gin-gonic/gin"
)

// RegisterProductRoutes registers the product module routes
func RegisterProductRoutes(r *gin.RouterGroup, productController *controller.ProductController, authMW gin.HandlerFunc) {
	products := r.Group("/products")
	products.Use(authMW)
	{
		products.POST("", productController.Create)
		products.GET("", productController.List)
		products.GET("/:id", productController.Get)
		products.PUT("/:id", productController.Update)
		products.DELETE("/:id", productController.Delete)
		products.PATCH("/:id/stock", productController.AdjustStock)
		products.GET("/barcode/:barcode", productController.GetByBarcode)
	}
}
