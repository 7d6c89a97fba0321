// Package error defines domain-specific errors for the Catering Ops application.
package error

// RequestErrorCode defines error codes for malformed requests.
// Format: REQ-XXYYYY where XX is category and YYYY is specific error.
type RequestErrorCode string

const (
	// Binding errors (01XXXX)
	ErrCodeInvalidRequestBody RequestErrorCode = "REQ-010001"
	ErrCodeInvalidQueryParams RequestErrorCode = "REQ-010002"
	ErrCodeInvalidPathParam   RequestErrorCode = "REQ-010003"
)
