package webhook

import "errors"

// ErrInvalidURL is reported without touching the network.
var ErrInvalidURL = errors.New("invalid webhook url")

// Result is the outcome of one dispatch. Failures are carried in Err and
// never returned as a Go error, so call sites choose to log or surface them.
type Result struct {
	OK         bool  `json:"ok"`
	StatusCode int   `json:"status_code,omitempty"`
	Err        error `json:"-"`
}

