package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a code and human message derived from an error.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError classifies storage errors from gorm, SQLite and PostgreSQL.
// context names the resource ("category", "product") for messages.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Internal server error"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: alreadyExistsMessage(context)}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrorInfo{Code: ResourceConflict, Message: "Referenced data prevents this change"}
	}

	lower := strings.ToLower(err.Error())
	switch {
	// SQLite: "UNIQUE constraint failed: categories.name"
	// PostgreSQL: "duplicate key value violates unique constraint"
	case strings.Contains(lower, "unique constraint"), strings.Contains(lower, "duplicate key"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: alreadyExistsMessage(context)}
	case strings.Contains(lower, "foreign key constraint"):
		return ErrorInfo{Code: ResourceConflict, Message: "Referenced data prevents this change"}
	case strings.Contains(lower, "not null constraint"), strings.Contains(lower, "violates not-null"):
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	case strings.Contains(lower, "check constraint"):
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Input is not valid"}
	case strings.Contains(lower, "database is locked"),
		strings.Contains(lower, "no such table"),
		strings.Contains(lower, "sql: database is closed"),
		strings.Contains(lower, "connection refused"):
		return ErrorInfo{Code: InternalDatabaseError, Message: err.Error()}
	}

	return ErrorInfo{Code: InternalServerError, Message: err.Error()}
}

func notFoundMessage(context string) string {
	if context == "" {
		return "Requested resource not found"
	}
	return strings.ToUpper(context[:1]) + context[1:] + " not found"
}

func alreadyExistsMessage(context string) string {
	if context == "" {
		return "Resource already exists"
	}
	return strings.ToUpper(context[:1]) + context[1:] + " already exists"
}

// ParseAndRespond classifies err and writes the failure envelope.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	info := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   info.Message,
		Code:    info.Code,
	})
}
