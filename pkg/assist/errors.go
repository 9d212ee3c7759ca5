package assist

import "errors"

var (
	// ErrEmptyInput is returned when the free text is empty or whitespace.
	ErrEmptyInput = errors.New("assist input is empty")
	// ErrInFlight is returned when an extraction is already running.
	ErrInFlight = errors.New("assist request already in flight")
	// ErrServiceFailure wraps transport, auth and quota failures of the completion service.
	ErrServiceFailure = errors.New("completion service failed")
	// ErrMalformedResponse is returned when the service answered but the
	// answer does not match the expected shape.
	ErrMalformedResponse = errors.New("malformed AI response")
	// ErrMissingAPIKey is returned when the assist configuration has no key.
	ErrMissingAPIKey = errors.New("missing API key: set " + EnvAPIKey)
)
