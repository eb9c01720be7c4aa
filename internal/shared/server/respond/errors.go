package respond

import (
	"github.com/gin-gonic/gin"

	"placement-backend/internal/shared/telemetry"
)

// Error codes shared by handlers.
const (
	CodeValidation    = "validation_error"
	CodeNotFound      = "not_found"
	CodeCatalogEmpty  = "catalog_empty"
	CodeUnsupported   = "unsupported_file"
	CodePayloadTooBig = "payload_too_large"
	CodeInternal      = "internal"
	CodeStoreFailure  = "store_failure"
	CodeRateLimited   = "rate_limited"
)

// requestIDKey mirrors middleware.RequestIDKey; middleware imports respond.
const requestIDKey = "requestId"

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString(requestIDKey),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
