package domain

import "errors"

// ErrNotFound is returned when a requested town slug does not match any
// currently listed town. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when upstream ticketing data cannot be fetched
// and no cached snapshot exists to fall back on.
// Handlers should map this to HTTP 503.
var ErrUnavailable = errors.New("ticketing data unavailable")
