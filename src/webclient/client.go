package webclient

import (
	"net/http"
	"time"
)

// NewDefault returns an HTTP client with sane timeouts. Callers issue a
// single attempt per request; failed verifications are surfaced to the
// user rather than retried.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
