package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Weighbridge pushes carry a base64 plate snapshot, so the device routes
// get a higher ceiling than the JSON-only controller surfaces.
const WeighbridgeBodyLimit = 8 << 20

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := maxBytes
		if strings.HasPrefix(c.Request.URL.Path, "/api/v1/weighbridge") && limit < WeighbridgeBodyLimit {
			limit = WeighbridgeBodyLimit
		}

		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "REQUEST_TOO_LARGE",
					"message": "Request body exceeds maximum allowed size",
				},
			})
			return
		}

		// Wrap the body with a limited reader for streaming requests
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
