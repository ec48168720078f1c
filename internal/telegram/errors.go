package telegram

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidParseMode indicates a parse mode outside the set the Bot API accepts.
var ErrInvalidParseMode = errors.New("telegram: invalid parse mode")

// NetworkError indicates the HTTP request never produced a Bot API response:
// DNS failure, connection refused, timeout.
type NetworkError struct {
	Method string
	Err    error
}

// Error reports the failure without echoing the request URL, which embeds
// the bot token.
func (e *NetworkError) Error() string {
	cause := e.Err
	var uerr *url.Error
	if errors.As(cause, &uerr) {
		cause = uerr.Err
	}
	return fmt.Sprintf("telegram: %s request failed: %v", e.Method, cause)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error { return e.Err }
