package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// API key header used by weighbridge devices. Devices are not users: they
// authenticate with a shared key and identify themselves by machine number
// in the request body.
const APIKeyHeader = "X-Api-Key"

// APIKeyConfig holds configuration for the API key middleware
type APIKeyConfig struct {
	// Keys are the accepted API keys. Multiple keys allow rotation
	// without a window where devices are locked out.
	Keys []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// APIKeyAuth creates middleware that authenticates weighbridge device
// requests with a static API key. Requests with a missing or unknown key
// are rejected with 401.
func APIKeyAuth(cfg APIKeyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			rejectAPIKey(c, cfg, "Missing API key")
			return
		}

		for _, accepted := range cfg.Keys {
			if accepted != "" && subtle.ConstantTimeCompare([]byte(key), []byte(accepted)) == 1 {
				c.Next()
				return
			}
		}

		rejectAPIKey(c, cfg, "Invalid API key")
	}
}

func rejectAPIKey(c *gin.Context, cfg APIKeyConfig, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("API key authentication failed",
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_API_KEY_INVALID",
			"message": message,
		},
	})
}
