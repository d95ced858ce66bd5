package entity

import "errors"

// Standard domain errors
var (
	// ErrUpstream means the model provider call itself failed (network, auth, quota).
	ErrUpstream = errors.New("model provider request failed")

	// ErrBadFormat means the provider replied but the response is missing the
	// required title/content markers.
	ErrBadFormat = errors.New("generated response is missing required markers")

	// ErrNotFound is returned by stores for unknown record ids.
	ErrNotFound = errors.New("the requested record was not found")

	ErrInvalidRequest = errors.New("invalid request parameters")
)
