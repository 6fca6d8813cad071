package license

import (
	"github.com/gin-gonic/gin"

	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// RegisterRoutes attaches license endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	licenses := router.Group("/licenses")
	{
		licenses.POST("/claim", middleware.AuthenticateToken(), handler.Claim)

		admin := licenses.Group("", middleware.RequireRoles(types.RoleAdmin)...)
		{
			admin.POST("", handler.Generate)
			admin.GET("", handler.List)
			admin.GET("/:key", handler.GetByKey)
			admin.DELETE("/:key", handler.Delete)
			admin.POST("/:key/release", handler.Release)
		}
	}
}
