package customerrors

import (
	"errors"
	"fmt"
)

var (
	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrNoData           = errors.New("no data")
	ErrHoldingExists    = errors.New("holding already in portfolio")
	ErrHoldingNotFound  = errors.New("holding not found in portfolio")
	ErrMissingAPIKey    = errors.New("llm api key is not configured")
	ErrInvalidStatement = errors.New("invalid statement type")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrUnknownAnalyst   = errors.New("unknown analyst")
	ErrCikNotFound      = errors.New("no SEC CIK for symbol")
	ErrInvalidRequest   = errors.New("invalid request")
)

// UpstreamError is a failed call to a third-party provider. Status is the
// provider's HTTP status, or 0 when the request never got a response.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s request failed with status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func Upstream(provider string, status int, err error) error {
	if err == nil {
		err = errors.New("unexpected response")
	}
	return &UpstreamError{Provider: provider, Status: status, Err: err}
}

// IsUpstream reports whether err came from a provider rather than from this
// service's own validation.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// DetailError attaches a caller-facing message to a sentinel so handlers
// can answer with the message while still matching the sentinel.
type DetailError struct {
	Detail string
	Err    error
}

func (e *DetailError) Error() string {
	return e.Detail
}

func (e *DetailError) Unwrap() error {
	return e.Err
}

func WithDetail(err error, format string, args ...any) error {
	return &DetailError{Detail: fmt.Sprintf(format, args...), Err: err}
}
