// Package errs defines the error taxonomy shared by the catalog and order
// layers. Handlers map these onto HTTP status codes; everything that is not
// one of these types is treated as unexpected.
package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced entity as absent. Wrap it with context via
// NotFoundf so callers can still errors.Is against the sentinel.
var ErrNotFound = errors.New("not found")

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// ValidationError reports malformed or missing input. It is always produced
// before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError is the business-rule failure of order placement. It
// carries the product name so the message matches what customers see.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for " + e.ProductName
}
