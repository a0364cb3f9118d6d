package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the error envelope used by every failing endpoint.
type Response struct {
	Status  int         `json:"-"`                 // HTTP status code
	Error   string      `json:"error,omitempty"`   // Error message
	Message string      `json:"message,omitempty"` // Optional detail
	Errors  interface{} `json:"errors,omitempty"`  // Field level details
}

// Success responses write the payload as-is; clients of this API expect bare documents.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error responses
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, &Response{
		Status: http.StatusUnauthorized,
		Error:  message,
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, &Response{
		Status: http.StatusBadRequest,
		Error:  message,
	})
}

func ValidationFailed(c *gin.Context, message string, fields interface{}) {
	c.JSON(http.StatusBadRequest, &Response{
		Status: http.StatusBadRequest,
		Error:  message,
		Errors: fields,
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, &Response{
		Status: http.StatusNotFound,
		Error:  message,
	})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, &Response{
		Status:  http.StatusInternalServerError,
		Error:   "Internal Server Error",
		Message: message,
	})
}

func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, &Response{
		Status: http.StatusForbidden,
		Error:  message,
	})
}
