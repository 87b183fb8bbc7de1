package route

import (
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/user"
	"github.com/dukkanlabs/dukkan-erp/pkg/auth"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers authentication and user management routes.
// Login is the only route open without a token.
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController, authMW gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)

		protected := authGroup.Group("")
		protected.Use(authMW)
		{
			protected.GET("/me", authController.Me)
			protected.PUT("/password", authController.ChangePassword)

			admin := protected.Group("")
			admin.Use(auth.RequireRole(string(user.RoleAdmin)))
			{
				admin.POST("/register", authController.Register)
				admin.GET("/users", authController.ListUsers)
				admin.DELETE("/users/:id", authController.DeleteUser)
			}
		}
	}
}
