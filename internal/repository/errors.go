package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint
// (e.g. registering an email that is already taken).
var ErrDuplicate = errors.New("duplicate")
