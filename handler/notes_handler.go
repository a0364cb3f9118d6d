package handler

import (
	"inotecloud/dto"
	"inotecloud/middleware"
	"inotecloud/usecase"
	"inotecloud/utils"

	"github.com/gin-gonic/gin"
)

func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	notes, err := notesService.GetUserNotes(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Success(c, notes)
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	note, err := notesService.CreateNote(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Success(c, note)
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	note, err := notesService.UpdateNote(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.ToChanges())
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Success(c, gin.H{"note": note})
}

// DeleteNoteHandler runs without a user on the public route; in strict mode the auth
// middleware runs first and the caller must own the note.
func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	note, err := notesService.DeleteNote(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	utils.Success(c, gin.H{
		"success": "Note deleted successfully",
		"note":    note,
	})
}
