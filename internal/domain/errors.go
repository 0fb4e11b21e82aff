package domain

import "errors"

var (
	// ErrMetricsUnavailable marks a font metrics backend that cannot measure
	// anything, not even with the packaged fallback face.
	ErrMetricsUnavailable = errors.New("font metrics unavailable")
	ErrInvalidPayload     = errors.New("invalid payload")
)
