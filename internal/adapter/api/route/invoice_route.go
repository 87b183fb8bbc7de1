package route

import (
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/gin-gonic/gin"
)

// RegisterInvoiceRoutes registers the invoice module routes
func RegisterInvoiceRoutes(r *gin.RouterGroup, invoiceController *controller.InvoiceController, authMW gin.HandlerFunc) {
	invoices := r.Group("/invoices")
	invoices.Use(authMW)
	{
		invoices.POST("", invoiceController.Create)
		invoices.GET("", invoiceController.List)
		invoices.GET("/:id", invoiceController.Get)
	}
}
