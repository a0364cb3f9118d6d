package middleware

import (
	"net/http"
	"strings"

	"inotecloud/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CORSMiddleware echoes allowed origins. Origins outside the list are still served unless
// cfg.Strict is set, in which case they get 403.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; !ok {
				if cfg.Strict {
					c.AbortWithStatus(http.StatusForbidden)
					return
				}
				log.Debug().Str("origin", origin).Msg("origin not in allow list")
			}
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			strings.Join([]string{"Content-Type", "Authorization", HeaderAuthToken}, ", "))
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Expose-Headers",
			strings.Join([]string{HeaderExpiringSoon, HeaderExpiresIn, HeaderRequestID}, ", "))
		c.Writer.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
