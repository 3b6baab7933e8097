package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the failure half of the response envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// RespondWithError writes {success:false, error, code}.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    errorCode,
	})
}

// RespondWithErrorFields writes the failure envelope with extra payload
// fields, e.g. the blocking product count of a category delete.
func RespondWithErrorFields(c *gin.Context, statusCode int, errorCode string, message string, fields gin.H) {
	body := gin.H{
		"success": false,
		"error":   message,
		"code":    errorCode,
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Success writes {success:true, ...payload}.
func Success(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

// InternalError surfaces storage failures with their raw message; there is
// no transient-fault classification, so the caller sees what failed.
func InternalError(c *gin.Context, err error) {
	message := "Internal server error"
	code := InternalServerError
	if err != nil {
		info := ParseError(err, "")
		message = err.Error()
		code = info.Code
	}
	RespondWithError(c, http.StatusInternalServerError, code, message)
}

// ValidationError lists per-field problems.
type ValidationError struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Success: false,
		Error:   "Invalid input",
		Code:    ValidationInvalidInput,
		Fields:  fields,
	})
}
