package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrUnavailable   = errors.New("llm unavailable")
	ErrRateLimited   = errors.New("llm rate limited")
	ErrInvalidOutput = errors.New("llm output invalid")
	ErrTruncated     = errors.New("llm output truncated")
)

// Kind classifies a provider failure.
type Kind int

const (
	KindUnavailable Kind = iota
	KindRateLimited
	KindInvalidOutput
	KindTruncated
)

func (k Kind) sentinel() error {
	switch k {
	case KindRateLimited:
		return ErrRateLimited
	case KindInvalidOutput:
		return ErrInvalidOutput
	case KindTruncated:
		return ErrTruncated
	default:
		return ErrUnavailable
	}
}

// Error is returned by every provider in this package.
type Error struct {
	Kind     Kind
	Provider string

	// Status is the HTTP status of the failed call, or 0.
	Status int

	// RetryAfter is the wait the vendor asked for on a rate limit.
	RetryAfter time.Duration

	// Content is the raw output for invalid and truncated responses.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(", retry after %s", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool { return target == e.Kind.sentinel() }

// KindOf returns the kind of a provider error, or false when err did not
// come from a provider.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// statusError classifies a failed HTTP call. 429 is a rate limit,
// everything else makes the provider unavailable.
func statusError(provider string, status int, header http.Header, err error) *Error {
	e := &Error{Kind: KindUnavailable, Provider: provider, Status: status, Err: err}
	if status == http.StatusTooManyRequests {
		e.Kind = KindRateLimited
		e.RetryAfter = parseRetryAfter(header)
	}
	return e
}

func unavailable(provider string, err error) *Error {
	return &Error{Kind: KindUnavailable, Provider: provider, Err: err}
}

func invalidOutput(provider string, content json.RawMessage, err error) *Error {
	return &Error{Kind: KindInvalidOutput, Provider: provider, Content: content, Err: err}
}

// parseRetryAfter reads a Retry-After header given in seconds. HTTP dates
// are ignored.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
