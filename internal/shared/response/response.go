package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/apperr"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Total  int    `json:"total"`
	Search string `json:"search,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// ValidationFailed answers 400 with every field message as details
func ValidationFailed(c *gin.Context, messages []string) {
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please correct the errors below.", messages)
}

// HandleError writes err using the domain mappers.
// Validation errors are expanded; 5xx never exposes the raw error text.
func HandleError(c *gin.Context, err error, toStatus func(error) int, toCode func(error) string) {
	if messages, ok := apperr.AsValidation(err); ok {
		ValidationFailed(c, messages)
		return
	}

	status := toStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		InternalServerError(c, "An unexpected error occurred. Please try again.")
		return
	}

	ErrorResponse(c, status, toCode(err), messageOf(err))
}

func messageOf(err error) string {
	// Sentinel wrapped with context keeps only the sentinel text for clients
	for u := errors.Unwrap(err); u != nil; u = errors.Unwrap(u) {
		err = u
	}
	return err.Error()
}
