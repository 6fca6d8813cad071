package user

import (
	"github.com/gin-gonic/gin"

	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// RegisterRoutes attaches user endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	users := router.Group("/users")
	{
		users.GET("/me", middleware.AuthenticateToken(), handler.Me)

		admin := users.Group("", middleware.RequireRoles(types.RoleAdmin)...)
		{
			admin.GET("", handler.List)
			admin.POST("", handler.Create)
			admin.GET("/:userId", handler.GetByID)
			admin.PUT("/:userId", handler.Update)
			admin.DELETE("/:userId", handler.Delete)
		}
	}
}
