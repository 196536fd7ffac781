package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func successResponse(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string, err error) {
	response := APIResponse{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(statusCode, response)
}

func badRequestResponse(c *gin.Context, message string, err error) {
	errorResponse(c, http.StatusBadRequest, message, err)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message, nil)
}

func conflictResponse(c *gin.Context, message string, err error) {
	errorResponse(c, http.StatusConflict, message, err)
}
