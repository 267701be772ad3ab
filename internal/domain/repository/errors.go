package repository

import "errors"

var (
	// ErrNotFound is returned when the streaming service has no data for the
	// requested ID.
	ErrNotFound = errors.New("resource not found")

	// ErrUpstreamUnavailable is returned when the streaming service cannot be
	// reached or answers with a server error.
	ErrUpstreamUnavailable = errors.New("streaming service unavailable")
)
