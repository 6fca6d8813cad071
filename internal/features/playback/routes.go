package playback

import (
	"github.com/gin-gonic/gin"

	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
)

// RegisterRoutes attaches playback endpoints to the router. Every route sits
// behind the license gate.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	playback := router.Group("/playback", middleware.AuthenticateToken(), middleware.RequireLicense())
	{
		playback.GET("/:mediaType/:mediaId", handler.Source)
	}
}
