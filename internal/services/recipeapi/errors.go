// File: internal/services/recipeapi/errors.go
package recipeapi

import "fmt"

// MsgConnectFailed is what transport-level failures surface as; the UI
// shows it verbatim instead of a raw network error.
const MsgConnectFailed = "Failed to connect to server"

type ErrorType string

const (
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeBackend    ErrorType = "BACKEND"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// APIError is any failure talking to the generation backend. Message is
// safe to show to the user.
type APIError struct {
	Type       ErrorType
	Operation  string
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recipe API %s error in %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("recipe API %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *APIError) Unwrap() error { return e.Cause }

func newNetworkError(operation string, cause error) *APIError {
	return &APIError{Type: ErrTypeNetwork, Operation: operation, Message: MsgConnectFailed, Cause: cause}
}

func newBackendError(operation string, statusCode int, message string) *APIError {
	if message == "" {
		message = "Request failed"
	}
	return &APIError{Type: ErrTypeBackend, Operation: operation, StatusCode: statusCode, Message: message}
}
