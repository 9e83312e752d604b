package models

// APIErrorResponse represents a standard error response format.
type APIErrorResponse struct {
	StatusCode int    `json:"status_code"`          // HTTP status code
	ErrorCode  string `json:"error_code,omitempty"` // Application-specific error code
	Message    string `json:"message"`              // User-friendly error message
}

// Error codes returned to clients. They describe what the client did, never
// why the server refused an outbound fetch.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeConfirmRequired = "confirmation_required"
	ErrCodeInvalidScope    = "invalid_scope"
	ErrCodeDownloadFailed  = "download_failed"
	ErrCodeInvalidFile     = "invalid_file"
	ErrCodeStorageFailed   = "storage_failed"
)
