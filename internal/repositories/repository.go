package repositories

import "errors"

// ErrNotFound is returned when a queried row does not exist. Services map it
// to their NotFoundError so handlers never see pgx internals.
var ErrNotFound = errors.New("record not found")
