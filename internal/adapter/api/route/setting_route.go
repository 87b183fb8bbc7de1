package route

import (
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/gin-gonic/gin"
)

// RegisterSettingRoutes registers the settings module routes
func RegisterSettingRoutes(r *gin.RouterGroup, settingController *controller.SettingController, authMW gin.HandlerFunc) {
	settings := r.Group("/settings")
	settings.Use(authMW)
	{
		settings.GET("", settingController.List)
		settings.GET("/:key", settingController.Get)
		settings.PUT("/:key", settingController.Put)
		settings.DELETE("/:key", settingController.Delete)
	}
}
