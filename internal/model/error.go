package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string       `json:"error"`
	Message       string       `json:"message"`
	Fields        []FieldError `json:"fields,omitempty"`
	CorrelationID string       `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)
