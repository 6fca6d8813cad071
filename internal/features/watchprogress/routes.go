package watchprogress

import (
	"github.com/gin-gonic/gin"

	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
)

// RegisterRoutes attaches watch progress endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	progress := router.Group("/watch-progress", middleware.AuthenticateToken())
	{
		progress.GET("", handler.List)
		progress.PUT("", handler.Upsert)
		progress.GET("/:mediaType/:mediaId", handler.Get)
		progress.DELETE("/:mediaType/:mediaId", handler.Delete)
	}
}
