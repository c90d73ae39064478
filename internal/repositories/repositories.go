package repositories

import "errors"

// ErrNotFound reports that no row matched an id/ownership predicate. Callers
// that implement fallback-on-failure use it to tell a closed conditional
// update apart from an unexpected persistence fault.
var ErrNotFound = errors.New("record not found")
