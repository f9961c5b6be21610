package model

import "errors"

var (
	// ErrStoreUnavailable wraps any network or remote failure from the
	// document store. It propagates verbatim to the interface layer; no
	// operation retries behind it.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrInvalidAmount is returned when a monetary form field cannot be
	// parsed as a non-negative number. It is raised before any store call,
	// so nothing is written.
	ErrInvalidAmount = errors.New("invalid amount")
)
