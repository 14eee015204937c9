package dto

import "net/http"

// Response represents a standard API response
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned by the API
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodePrintFailed      = "PRINT_FAILED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// MessageRequestTooLarge is shown when a submission exceeds http.max_body_size
const MessageRequestTooLarge = "The label request is too large."

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.RequestID = requestID
	return resp
}

// GetHTTPStatus maps an error code to its HTTP status
func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodePrintFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
