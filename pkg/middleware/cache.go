package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheControl sets appropriate cache headers based on the request path.
// Catalog responses are shareable and short-lived; everything else under
// /api carries user state and must not be cached.
func CacheControl() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		switch {
		case strings.HasPrefix(path, "/api/catalog"):
			c.Header("Cache-Control", "public, max-age=300")
		case strings.HasPrefix(path, "/api"):
			c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		}

		c.Next()
	}
}
