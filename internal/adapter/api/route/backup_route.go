package route

import (
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/user"
	"github.com/dukkanlabs/dukkan-erp/pkg/auth"
	"github.com/gin-gonic/gin"
)

// RegisterBackupRoutes registers the backup module routes. Restore rewrites
// the whole dataset, so both routes are admin only.
func RegisterBackupRoutes(r *gin.RouterGroup, backupController *controller.BackupController, authMW gin.HandlerFunc) {
	backups := r.Group("/backup")
	backups.Use(authMW, auth.RequireRole(string(user.RoleAdmin)))
	{
		backups.GET("/export", backupController.Export)
		backups.POST("/import", backupController.Import)
	}
}
