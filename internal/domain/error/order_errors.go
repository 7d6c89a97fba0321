// Package error defines domain-specific errors for the Catering Ops application.
package error

import "errors"

// Order domain errors.
var (
	// ErrOrderNotFound is returned when an order is not found in the system.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyOrder is returned when an order has no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")

	// ErrInvalidQuantity is returned when an item quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrInvalidDeliveryStatus is returned when the delivery status is unknown.
	ErrInvalidDeliveryStatus = errors.New("invalid delivery status")

	// ErrInvalidStatusTransition is returned when a status change is not allowed.
	ErrInvalidStatusTransition = errors.New("delivery status transition not allowed")

	// ErrProductUnavailable is returned when an ordered product is inactive.
	ErrProductUnavailable = errors.New("product is not available")

	// ErrInvalidOptionSelection is returned when selected options break the product's option groups.
	ErrInvalidOptionSelection = errors.New("invalid option selection")

	// ErrOrderNumberTaken is returned when another order already holds the allocated number.
	ErrOrderNumberTaken = errors.New("order number already taken")

	// ErrInvalidDateRange is returned when end date is before start date.
	ErrInvalidDateRange = errors.New("end_date must be after start_date")
)

// OrderErrorCode defines error codes for order errors.
// Format: ORD-XXYYYY where XX is category and YYYY is specific error.
type OrderErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyOrder             OrderErrorCode = "ORD-010001"
	ErrCodeInvalidQuantity        OrderErrorCode = "ORD-010002"
	ErrCodeInvalidDeliveryStatus  OrderErrorCode = "ORD-010003"
	ErrCodeInvalidOptionSelection OrderErrorCode = "ORD-010004"
	ErrCodeProductUnavailable     OrderErrorCode = "ORD-010005"
	ErrCodeInvalidOrderDateRange  OrderErrorCode = "ORD-010006"

	// State errors (02XXXX)
	ErrCodeOrderNotFound           OrderErrorCode = "ORD-020001"
	ErrCodeInvalidStatusTransition OrderErrorCode = "ORD-020002"
	ErrCodeOrderNumberTaken        OrderErrorCode = "ORD-020003"
)

// OrderError represents an order error with code and message.
type OrderError struct {
	Code    OrderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *OrderError) Unwrap() error {
	return e.Err
}

// NewOrderError creates a new OrderError with the given code and message.
func NewOrderError(code OrderErrorCode, message string, err error) *OrderError {
	return &OrderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
