// Package error defines domain-specific errors for the Catering Ops application.
package error

import "errors"

// Product domain errors.
var (
	// ErrProductNotFound is returned when a product is not found in the system.
	ErrProductNotFound = errors.New("product not found")

	// ErrSKUExists is returned when attempting to create a product with an existing SKU.
	ErrSKUExists = errors.New("sku already exists")

	// ErrInvalidPrice is returned when the base price is negative.
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrInvalidOptionGroup is returned when an option group definition is inconsistent.
	ErrInvalidOptionGroup = errors.New("invalid option group")

	// ErrInvalidPriceMultiplier is returned when an option multiplier is out of range.
	ErrInvalidPriceMultiplier = errors.New("invalid price multiplier")
)

// ProductErrorCode defines error codes for product errors.
// Format: PRD-XXYYYY where XX is category and YYYY is specific error.
type ProductErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPrice           ProductErrorCode = "PRD-010001"
	ErrCodeInvalidOptionGroup     ProductErrorCode = "PRD-010002"
	ErrCodeInvalidPriceMultiplier ProductErrorCode = "PRD-010003"
	ErrCodeSKUExists              ProductErrorCode = "PRD-010004"
	ErrCodeMissingProductFields   ProductErrorCode = "PRD-010005"

	// Lookup errors (02XXXX)
	ErrCodeProductNotFound ProductErrorCode = "PRD-020001"
)

// ProductError represents a product error with code and message.
type ProductError struct {
	Code    ProductErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProductError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProductError) Unwrap() error {
	return e.Err
}

// NewProductError creates a new ProductError with the given code and message.
func NewProductError(code ProductErrorCode, message string, err error) *ProductError {
	return &ProductError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
