// Package error defines domain-specific errors for the Catering Ops application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidPeriod is returned when the requested period is not a known period.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidDateFormat is returned when a date is not formatted as YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidExportFormat is returned when the export format is not csv or pdf.
	ErrInvalidExportFormat = errors.New("export format must be csv or pdf")

	// ErrFetchFailed is returned when orders could not be fetched from the order source.
	ErrFetchFailed = errors.New("failed to fetch orders")

	// ErrStaleResponse is returned when a newer selection superseded the request.
	ErrStaleResponse = errors.New("response superseded by a newer selection")

	// ErrSummaryNotCached is returned when no previous summary is available.
	ErrSummaryNotCached = errors.New("no summary available for this period")

	// ErrMissingRecipient is returned when a summary email has no recipient.
	ErrMissingRecipient = errors.New("recipient email is required")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriod       ReportErrorCode = "RPT-010001"
	ErrCodeInvalidDateFormat   ReportErrorCode = "RPT-010002"
	ErrCodeInvalidExportFormat ReportErrorCode = "RPT-010003"
	ErrCodeMissingRecipient    ReportErrorCode = "RPT-010004"

	// Fetch errors (02XXXX)
	ErrCodeFetchFailed   ReportErrorCode = "RPT-020001"
	ErrCodeStaleResponse ReportErrorCode = "RPT-020002"

	// Lookup errors (03XXXX)
	ErrCodeSummaryNotCached ReportErrorCode = "RPT-030001"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewFetchError wraps an order source failure.
// The cause is kept for logging, the message is what the user sees.
func NewFetchError(cause error) *ReportError {
	return &ReportError{
		Code:    ErrCodeFetchFailed,
		Message: "orders could not be loaded, please try again",
		Err:     errors.Join(ErrFetchFailed, cause),
	}
}

// NewStaleResponseError reports that a newer selection superseded the request.
func NewStaleResponseError() *ReportError {
	return &ReportError{
		Code:    ErrCodeStaleResponse,
		Message: "a newer selection superseded this request",
		Err:     ErrStaleResponse,
	}
}
