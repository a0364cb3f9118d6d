package handler

import (
	"errors"
	"net/http"
	"time"

	"inotecloud/dto"
	"inotecloud/middleware"
	"inotecloud/services"
	"inotecloud/usecase"
	"inotecloud/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func RegistrationHandler(c *gin.Context, authService *usecase.AuthService) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		invalidBody(c)
		return
	}

	result, err := authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.TrackAuthAttempt("failure", "register")
		writeError(c, err)
		return
	}

	utils.TrackAuthAttempt("success", "register")
	log.Info().Str("user_id", result.User.ID.Hex()).Msg("user registered")
	utils.Created(c, gin.H{
		"message":   "User created successfully",
		"user":      dto.ToUserResponse(result.User),
		"authToken": result.Token,
	})
}

func LoginHandler(c *gin.Context, authService *usecase.AuthService) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "login")
		invalidBody(c)
		return
	}

	result, err := authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.TrackAuthAttempt("failure", "login")
		writeError(c, err)
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"authToken": result.AuthToken,
		"name":      result.Name,
	})
}

// GetUserHandler returns the caller's public profile.
func GetUserHandler(c *gin.Context, authService *usecase.AuthService) {
	user, err := authService.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Success(c, dto.ToUserResponse(user))
}

// VerifyTokenHandler answers once AuthMiddleware accepted the token; it does not touch the store.
func VerifyTokenHandler(c *gin.Context) {
	utils.Success(c, gin.H{
		"success": true,
		"message": "Token is valid",
		"userId":  middleware.UserID(c),
	})
}

// LogoutHandler blacklists the presented token for the rest of its lifetime.
func LogoutHandler(c *gin.Context, blacklist services.TokenBlacklist) {
	token := c.GetString(middleware.ContextToken)
	expiresAt, _ := c.Get(middleware.ContextTokenExp)
	until, ok := expiresAt.(time.Time)
	if token == "" || !ok {
		writeError(c, errors.New("logout reached without a verified token"))
		return
	}

	if err := blacklist.Revoke(c.Request.Context(), token, until); err != nil {
		writeError(c, err)
		return
	}
	utils.TrackAuthAttempt("success", "logout")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}
