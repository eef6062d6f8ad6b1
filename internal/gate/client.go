package gate

import (
	"net/http"
	"time"
)

// NewHTTPClient creates the default HTTP client used by the gate. The
// cookie jar is shared with the auth service so the session cookie set at
// login travels with every request.
func NewHTTPClient(jar http.CookieJar, timeout time.Duration) *http.Client {
	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}
}
