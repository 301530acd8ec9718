package client

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// StatusError is returned when the server answers with a non-2xx status.
// Its message is "<code> <statusText>" so callers can prefix it with
// "Error: " and match the UI contract verbatim.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Text)
}

// ErrNoAdminKey is returned when an admin endpoint is called without a key.
var ErrNoAdminKey = errors.New("admin API key not configured (set QFW_ADMIN_KEY or admin.api_key in config)")

// newStatusError builds a StatusError from a response status line.
// It prefers the server's own status text ("500 Internal Server Error")
// and falls back to the stdlib text for bare numeric statuses.
func newStatusError(code int, status string) *StatusError {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return &StatusError{Code: code, Text: text}
}
