package mailman

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Standard client errors, matched with errors.Is
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrUnsupported        = errors.New("operation not supported by server")
	ErrConflict           = errors.New("resource conflict")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrHandshake          = errors.New("unexpected handshake response")
)

// APIError is returned for every non-2xx response of the REST API
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// Unwrap exposes the sentinel error matching the status code
func (e *APIError) Unwrap() error {
	return e.kind
}

// statusKind maps HTTP status codes onto the sentinel errors
func statusKind(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return ErrUnsupported
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidInput
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusInternalServerError:
		return ErrServiceUnavailable
	default:
		return nil
	}
}

// IsUnsupported reports whether the server lacks the requested resource or method.
// Older Mailman cores answer 404 for resources added in later API revisions.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported) || errors.Is(err, ErrNotFound)
}
