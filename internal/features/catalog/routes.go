package catalog

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches catalog endpoints to the router. Catalog data is
// public: browsing needs no account, only playback is gated.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	catalog := router.Group("/catalog")
	{
		catalog.GET("/trending", handler.Trending)
		catalog.GET("/movies", handler.Movies)
		catalog.GET("/series", handler.Series)
		catalog.GET("/search", handler.Search)
		catalog.GET("/:mediaType/:mediaId", handler.Details)
	}
}
