package domain

import "fmt"

// UpstreamStatusError is returned when the flare API answers with a non-2xx
// status.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("donki API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("donki API error: status %d: %s", e.StatusCode, e.Body)
}
