package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"inotecloud/services"
	"inotecloud/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	// ContextUserID is the gin context key holding the verified user id.
	ContextUserID   = "user_id"
	ContextToken    = "auth_token"
	ContextTokenExp = "token_expires_at"

	HeaderAuthToken    = "auth-token"
	HeaderExpiringSoon = "X-Token-Expiring-Soon"
	HeaderExpiresIn    = "X-Token-Expires-In"

	ErrorTypeNoToken      = "no_token"
	ErrorTypeTokenExpired = "token_expired"
	ErrorTypeInvalidToken = "invalid_token"
)

// TokenFromRequest reads the session token from the auth-token header, falling back to an
// Authorization bearer header.
func TokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(HeaderAuthToken)); token != "" {
		return token
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// AuthMiddleware rejects requests without a valid token with 401 {error, errorType}. A token in
// its last minutes still passes, with the expiry advertised in response headers.
func AuthMiddleware(tokens *services.TokenService, blacklist services.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c.Request)

		verification, err := tokens.Verify(tokenString)
		if err != nil {
			abortWithTokenError(c, err)
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.IsRevoked(c.Request.Context(), tokenString)
			if err != nil {
				log.Warn().Err(err).Msg("token blacklist unavailable")
			}
			if revoked {
				abortWithTokenError(c, services.ErrInvalidToken)
				return
			}
		}

		if verification.ExpiringSoon {
			c.Header(HeaderExpiringSoon, "true")
			c.Header(HeaderExpiresIn, strconv.FormatInt(verification.ExpiresIn, 10))
		}

		c.Set(ContextUserID, verification.UserID)
		c.Set(ContextToken, tokenString)
		c.Set(ContextTokenExp, verification.ExpiresAt)
		c.Next()
	}
}

func abortWithTokenError(c *gin.Context, err error) {
	errorType := ErrorTypeInvalidToken
	message := "Please authenticate using a valid token"
	switch {
	case errors.Is(err, services.ErrNoToken):
		errorType = ErrorTypeNoToken
	case errors.Is(err, services.ErrTokenExpired):
		errorType = ErrorTypeTokenExpired
		message = "Your session has expired. Please log in again."
	}

	utils.TrackAuthAttempt("failure", "token_"+errorType)
	log.Debug().Err(err).Str("error_type", errorType).Str("path", c.FullPath()).Msg("request rejected")

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":     message,
		"errorType": errorType,
	})
}

// UserID returns the id set by AuthMiddleware, or "" outside an authenticated route.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
