package handler

import (
	"inotecloud/dto"
	"inotecloud/middleware"
	"inotecloud/usecase"
	"inotecloud/utils"

	"github.com/gin-gonic/gin"
)

func GetAllMessagesHandler(c *gin.Context, messagesService *usecase.MessagesService) {
	msgs, err := messagesService.GetAllMessages(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Success(c, msgs)
}

func CreateMessageHandler(c *gin.Context, messagesService *usecase.MessagesService) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	msg, err := messagesService.CreateMessage(c.Request.Context(), middleware.UserID(c), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Success(c, msg)
}

func UpdateMessageHandler(c *gin.Context, messagesService *usecase.MessagesService) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	msg, err := messagesService.UpdateMessage(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Success(c, msg)
}

func DeleteMessageHandler(c *gin.Context, messagesService *usecase.MessagesService) {
	msg, err := messagesService.DeleteMessage(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Success(c, gin.H{
		"success": "Message deleted",
		"message": msg,
	})
}

func ReplyMessageHandler(c *gin.Context, messagesService *usecase.MessagesService) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	msg, err := messagesService.AddReply(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Content)
	if err != nil {
		utils.TrackReaction("reply", "rejected")
		writeError(c, err)
		return
	}
	utils.TrackReaction("reply", "applied")
	utils.Success(c, msg)
}

func LikeMessageHandler(c *gin.Context, messagesService *usecase.MessagesService) {
	msg, err := messagesService.LikeMessage(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.TrackReaction("like", "rejected")
		writeError(c, err)
		return
	}
	utils.TrackReaction("like", "applied")
	utils.Success(c, msg)
}

func UnlikeMessageHandler(c *gin.Context, messagesService *usecase.MessagesService) {
	msg, err := messagesService.UnlikeMessage(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.TrackReaction("unlike", "rejected")
		writeError(c, err)
		return
	}
	utils.TrackReaction("unlike", "applied")
	utils.Success(c, msg)
}
