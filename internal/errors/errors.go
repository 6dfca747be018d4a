package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"

	"document-ops-server/internal/models"
)

// JSON-RPC Error Codes (as per JSON-RPC 2.0 Specification)
const (
	CodeParseError     = -32700 // Invalid JSON was received by the server.
	CodeInvalidRequest = -32600 // The JSON sent is not a valid Request object.
	CodeMethodNotFound = -32601 // The method does not exist / is not available.
	CodeInvalidParams  = -32602 // Invalid method parameter(s).
	CodeInternalError  = -32603 // Internal JSON-RPC error.
)

// Fatal error kinds. These abort a tool call before any save is reached and
// surface as a failure envelope; adapters and the service wrap them so callers
// can classify with errors.Is. Per-descriptor problems (out-of-range indices,
// unknown operation types) are not errors at all: the interpreter skips them
// with a warning.
var (
	// ErrNotFound indicates a source path that does not exist.
	ErrNotFound = stdErrors.New("file not found")
	// ErrIO indicates a directory or file read/write failure.
	ErrIO = stdErrors.New("i/o failure")
	// ErrMalformedInput indicates an unparseable source document or content.
	ErrMalformedInput = stdErrors.New("malformed input")
)

// NotFound wraps ErrNotFound with the offending path.
func NotFound(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

// IO wraps ErrIO with context about the failed operation.
func IO(operation string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrIO, operation, err)
}

// MalformedInput wraps ErrMalformedInput with context about what failed to
// parse.
func MalformedInput(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedInput, what, err)
}

// Classify names the taxonomy kind of a fatal error, for log lines.
func Classify(err error) string {
	switch {
	case stdErrors.Is(err, ErrNotFound):
		return "file_not_found"
	case stdErrors.Is(err, ErrMalformedInput):
		return "malformed_input"
	default:
		return "io_failure"
	}
}

// NewErrorDetail creates a new ErrorDetail.
func NewErrorDetail(code int, message string, data interface{}) *models.ErrorDetail {
	return &models.ErrorDetail{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewParseError creates an ErrorDetail for JSON parsing errors.
func NewParseError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeParseError, "Parse error", map[string]string{"details": details})
}

// NewInvalidRequestError creates an ErrorDetail for invalid JSON-RPC Request
// objects.
func NewInvalidRequestError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInvalidRequest, "Invalid Request", map[string]string{"details": details})
}

// NewMethodNotFoundError creates an ErrorDetail when a JSON-RPC method is not
// found.
func NewMethodNotFoundError(methodName string) *models.ErrorDetail {
	return NewErrorDetail(CodeMethodNotFound, "Method not found", map[string]string{"method": methodName})
}

// NewInvalidParamsError creates an ErrorDetail for invalid method parameters.
func NewInvalidParamsError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInvalidParams, "Invalid params", map[string]string{"details": details})
}

// NewInternalError creates an ErrorDetail for unexpected server errors.
func NewInternalError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInternalError, "Internal error", map[string]string{"details": details})
}

// ToErrorResponse converts an ErrorDetail to an HTTP models.ErrorResponse.
func ToErrorResponse(errDetail *models.ErrorDetail) *models.ErrorResponse {
	if errDetail == nil {
		return nil
	}
	return &models.ErrorResponse{Error: *errDetail}
}

// ToJSONRPCError converts an ErrorDetail to a models.JSONRPCError, mapping the
// detail data to the structured JSON-RPC error data where possible.
func ToJSONRPCError(errDetail *models.ErrorDetail) *models.JSONRPCError {
	if errDetail == nil {
		return nil
	}
	rpcErr := &models.JSONRPCError{
		Code:    errDetail.Code,
		Message: errDetail.Message,
	}
	if errDetail.Data == nil {
		return rpcErr
	}
	data := &models.JSONRPCErrorData{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	switch m := errDetail.Data.(type) {
	case map[string]string:
		data.Filepath = m["filepath"]
		data.Operation = m["operation"]
		data.Details = m["details"]
	case map[string]interface{}:
		if v, ok := m["filepath"].(string); ok {
			data.Filepath = v
		}
		if v, ok := m["operation"].(string); ok {
			data.Operation = v
		}
		if v, ok := m["details"].(string); ok {
			data.Details = v
		}
	default:
		data.Details = fmt.Sprintf("%v", errDetail.Data)
	}
	rpcErr.Data = data
	return rpcErr
}

// MapErrorToHTTPStatus maps a protocol-level error code to an HTTP status
// code. Tool failures never pass through here: they travel inside the result
// envelope with a 200 status.
func MapErrorToHTTPStatus(errorCode int) int {
	switch errorCode {
	case CodeParseError, CodeInvalidRequest, CodeInvalidParams:
		return http.StatusBadRequest
	case CodeMethodNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
