package route

import (
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/gin-gonic/gin"
)

// RegisterReportRoutes registers the report module routes
func RegisterReportRoutes(r *gin.RouterGroup, reportController *controller.ReportController, authMW gin.HandlerFunc) {
	reports := r.Group("/reports")
	reports.Use(authMW)
	{
		reports.GET("/installments", reportController.InstallmentBook)
	}
}
