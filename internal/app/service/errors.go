package service

import (
	"errors"
	"fmt"
)

var (
	ErrProductTypeNotFound = errors.New("product type not found")
	ErrSubOptionNotFound   = errors.New("sub-option not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrVariantNotFound     = errors.New("variant not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category already exists")
	ErrNoQuote             = errors.New("no catalog rows to quote from")
)

// ValidationError rejects input before any storage mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// CategoryInUseError blocks deleting a category that products still reference.
type CategoryInUseError struct {
	CategoryID uint
	Count      int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category %d is referenced by %d product(s)", e.CategoryID, e.Count)
}
