package espn

import (
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
)

// ErrTransient marks failures that say something about upstream health:
// transport errors, timeouts, 429 and 5xx.
var ErrTransient = crerr.New("espn transient failure")

// FetchError is returned for any failed upstream request.
type FetchError struct {
	Status  int
	Timeout bool
	URL     string
	Body    string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Timeout:
		return "ESPN API error: timeout"
	case e.Status > 0:
		return fmt.Sprintf("ESPN API error: %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("ESPN API error: %v", e.Err)
	default:
		return "ESPN API error: request failed"
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets callers match transient failures with errors.Is(err, ErrTransient).
func (e *FetchError) Is(target error) bool {
	return target == ErrTransient && e.transient()
}

func (e *FetchError) transient() bool {
	return e.Timeout || e.Status == 0 || isRetryableStatus(e.Status)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	const limit = 240
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
