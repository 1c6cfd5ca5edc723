package storage

import "errors"

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when the persistence layer is not present
// in the current process (the store has no database handle).
var ErrUnavailable = errors.New("storage unavailable")
