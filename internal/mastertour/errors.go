package mastertour

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed Master Tour API call.
type ErrorKind int

const (
	// KindAPI is any non-success remote response not covered by a more
	// specific kind. The original status code and server message are kept.
	KindAPI ErrorKind = iota

	// KindPermission means the remote policy denied write access to the
	// tour, regardless of HTTP status.
	KindPermission

	// KindAuth means the credentials or the request signature were rejected.
	KindAuth

	// KindNotFound means the remote resource does not exist.
	KindNotFound

	// KindTransport means the request never produced an HTTP response
	// (network failure, timeout). StatusCode is 0 for this kind.
	KindTransport
)

// String returns a short label for the kind, used in logs and metrics.
func (k ErrorKind) String() string {
	switch k {
	case KindPermission:
		return "permission"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	default:
		return "api"
	}
}

// permissionFragment is the literal substring the API includes in its message
// when a write is denied by tour permissions. Classification matches on it
// ahead of every status-code rule; if Eventric ever rewords the message,
// affected responses degrade to [KindAPI].
const permissionFragment = "do not have the required tour permission"

// APIError is the classified form of every failed Master Tour call.
//
// Message is human-actionable and safe to show to the MCP host; ServerMessage
// preserves the raw remote text for diagnostics. StatusCode is the HTTP
// status, or 0 for transport failures.
type APIError struct {
	Kind          ErrorKind
	StatusCode    int
	Message       string
	ServerMessage string

	// Err is the underlying cause for transport failures, nil otherwise.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("mastertour: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("mastertour: %s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error { return e.Err }

// classify maps an HTTP status and the API's message string onto an APIError.
// The permission substring wins over every status rule because the API has
// been observed returning it with assorted statuses.
func classify(status int, serverMsg string) *APIError {
	switch {
	case strings.Contains(serverMsg, permissionFragment):
		return &APIError{
			Kind:          KindPermission,
			StatusCode:    status,
			Message:       "write access denied: your Master Tour account needs edit permission (level 148 or higher) on this tour",
			ServerMessage: serverMsg,
		}
	case status == http.StatusUnauthorized, strings.Contains(serverMsg, "OAuth"):
		return &APIError{
			Kind:          KindAuth,
			StatusCode:    status,
			Message:       "authentication failed: check MASTERTOUR_KEY and MASTERTOUR_SECRET",
			ServerMessage: serverMsg,
		}
	case status == http.StatusNotFound:
		return &APIError{
			Kind:          KindNotFound,
			StatusCode:    status,
			Message:       "the requested resource was not found",
			ServerMessage: serverMsg,
		}
	default:
		msg := serverMsg
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{
			Kind:          KindAPI,
			StatusCode:    status,
			Message:       fmt.Sprintf("Master Tour API error: %s", msg),
			ServerMessage: serverMsg,
		}
	}
}

// transportError wraps a failure that happened below the HTTP layer.
func transportError(err error) *APIError {
	return &APIError{
		Kind:    KindTransport,
		Message: "could not reach the Master Tour API: " + err.Error(),
		Err:     err,
	}
}

// IsNotFound reports whether err is a classified not-found failure.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsPermission reports whether err is a classified permission failure.
func IsPermission(err error) bool { return hasKind(err, KindPermission) }

// IsAuth reports whether err is a classified authentication failure.
func IsAuth(err error) bool { return hasKind(err, KindAuth) }

func hasKind(err error, k ErrorKind) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == k
}
