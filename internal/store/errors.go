package store

import (
	"errors"
	"fmt"
)

// ErrNotFoundLocal marks a referenced trip, day, or spot that is absent from
// the local state. Handlers map it to 404.
var ErrNotFoundLocal = errors.New("not found in local state")

// ErrNoBackup reports a restore attempt for a day that has no saved order.
var ErrNoBackup = errors.New("no saved spot order for day")

// errStaleResult marks an async completion superseded by a newer local edit.
// It is discarded silently and never surfaces to callers.
var errStaleResult = errors.New("stale result")

func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, ErrNotFoundLocal)
}
