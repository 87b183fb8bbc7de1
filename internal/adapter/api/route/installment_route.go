package route

import (
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/gin-gonic/gin"
)

// RegisterInstallmentRoutes registers the installment module routes
func RegisterInstallmentRoutes(r *gin.RouterGroup, installmentController *controller.InstallmentController, authMW gin.HandlerFunc) {
	installments := r.Group("/installments")
	installments.Use(authMW)
	{
		installments.POST("", installmentController.Create)
		installments.GET("", installmentController.List)
		installments.GET("/:id", installmentController.Get)
		installments.POST("/:id/payments", installmentController.RecordPayment)
		installments.GET("/:id/payments", installmentController.ListPlanPayments)
		installments.POST("/:id/cancel", installmentController.Cancel)
	}

	payments := r.Group("/payments")
	payments.Use(authMW)
	{
		payments.GET("", installmentController.ListPayments)
		payments.POST("/reconcile", installmentController.Reconcile)
	}
}
