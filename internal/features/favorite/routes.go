package favorite

import (
	"github.com/gin-gonic/gin"

	"github.com/jdverbeke/cinevault-server-go/internal/middleware"
)

// RegisterRoutes attaches favorite endpoints to the router.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	favorites := router.Group("/favorites", middleware.AuthenticateToken())
	{
		favorites.GET("", handler.List)
		favorites.POST("", handler.Add)
		favorites.DELETE("/:mediaType/:mediaId", handler.Remove)
	}
}
