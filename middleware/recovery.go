package middleware

import (
	"net/http"
	"runtime/debug"

	"inotecloud/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("panic", err).
					Str("request_id", c.GetString(ContextRequestID)).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")
				utils.TrackError("panic", c.FullPath())
				c.AbortWithStatusJSON(http.StatusInternalServerError, &utils.Response{
					Status: http.StatusInternalServerError,
					Error:  "Internal Server Error",
				})
			}
		}()
		c.Next()
	}
}
