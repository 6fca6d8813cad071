package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// RegisterRoutes attaches admin dashboard endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	dashboard := router.Group("/dashboard", middleware.RequireRoles(types.RoleAdmin)...)
	{
		dashboard.GET("/overview", handler.GetOverview)
		dashboard.GET("/system-stats", handler.GetSystemStats)
		dashboard.GET("/logs", handler.GetSystemLogs)
		dashboard.POST("/logs/clear", handler.ClearLogs)
	}
}
