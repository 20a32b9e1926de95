package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// StatusError mirrors a non-2xx upstream response
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

// TransportError wraps a failure to reach the upstream at all
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an upstream 404. Read operations
// translate these to empty-result successes.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// IsTransport reports whether err is a transport-level failure
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// ErrorStatus returns the HTTP status to mirror for err: the upstream's own
// status for rejections, 500 for transport and unknown failures.
func ErrorStatus(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}

// ErrorMessage returns the client-facing message for err
func ErrorMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	if IsTransport(err) {
		return "Upstream service unavailable"
	}
	return "Internal server error"
}

// bestEffortMessage extracts a human-readable message from an upstream error
// body: a JSON message/error field first, then the raw text, then a generic
// "HTTP <status>: <statusText>" when the body is unusable.
func bestEffortMessage(status int, body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}

	text := strings.TrimSpace(string(body))
	if text != "" && utf8.ValidString(text) {
		return text
	}
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}
