package generation

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingAPIKey indicates that the provider was configured without
// credentials. It is never retried and always maps to HTTP 500.
var ErrMissingAPIKey = errors.New("missing DASHSCOPE_API_KEY")

// ValidationError reports a missing or malformed request field. No upstream
// call is made when one is returned.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "Missing required field: " + e.Field
}

// UpstreamError reports a failure attributed to the provider: a non-2xx
// response, a business error code in a 2xx body, a provider-reported task
// failure, or a 2xx body that lacks the expected artifact. StatusCode is the
// HTTP status the handler should surface to the caller.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// TimeoutError reports that an asynchronous provider task did not reach a
// terminal state within the local poll budget. It is distinct from a
// provider-reported failure so callers and logs can tell "the provider never
// finished" apart from "the provider rejected the job".
type TimeoutError struct {
	TaskID   string
	Attempts int
	Interval time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generation task %s did not finish after %d polls over %s", e.TaskID, e.Attempts, time.Duration(e.Attempts)*e.Interval)
}
