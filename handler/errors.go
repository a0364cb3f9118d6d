package handler

import (
	"errors"
	"net/http"

	"inotecloud/middleware"
	"inotecloud/usecase"
	"inotecloud/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// writeError maps a service error onto the HTTP error taxonomy. Ownership failures are 401
// here, not 403, and conflicts are 400.
func writeError(c *gin.Context, err error) {
	var appErr *usecase.Error
	if !errors.As(err, &appErr) {
		appErr = &usecase.Error{Kind: usecase.KindInternal, Message: "unexpected failure", Err: err}
	}

	switch {
	case errors.Is(err, usecase.ErrAlreadyLiked):
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message, "alreadyLiked": true})
		return
	case errors.Is(err, usecase.ErrNotLiked):
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message, "notLiked": true})
		return
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.BadRequest(c, appErr.Message)
		return
	}

	switch appErr.Kind {
	case usecase.KindValidation:
		if len(appErr.Fields) > 0 {
			utils.ValidationFailed(c, appErr.Message, appErr.Fields)
			return
		}
		utils.BadRequest(c, appErr.Message)
	case usecase.KindAuthentication, usecase.KindAuthorization:
		utils.Unauthorized(c, appErr.Message)
	case usecase.KindNotFound:
		utils.NotFound(c, appErr.Message)
	case usecase.KindConflict:
		utils.BadRequest(c, appErr.Message)
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.ContextRequestID)).
			Str("path", c.FullPath()).
			Msg("request failed")
		utils.TrackError("internal", c.FullPath())
		utils.InternalError(c, appErr.Error())
	}
}

func invalidBody(c *gin.Context) {
	utils.TrackError("validation", "invalid_body")
	utils.BadRequest(c, "Invalid request body")
}
