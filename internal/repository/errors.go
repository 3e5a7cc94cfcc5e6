// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConsistency reports that a statement touched a different
// number of rows than a schema invariant allows, which handlers must
// surface as an internal fault rather than an ordinary miss, while
// IsConstraintViolation classifies the key-violation errors the store
// raises when an insert references a missing row or collides with an
// existing one.
package repository

import (
	"errors"
	"strings"
)

// ErrConsistency is returned when an operation observes a state that a
// database constraint should have made impossible, such as a delete by
// unique key affecting more than one row. It always indicates a bug or
// corrupted data, never bad input, and must not be downgraded to a
// not-found response.
var ErrConsistency = errors.New("consistency violation")

// ErrEntryNotFound is returned when a watchlist entry lookup or delete
// matches no row. Handlers should translate this into an HTTP 404.
var ErrEntryNotFound = errors.New("watchlist entry not found")

// Neither driver exposes a portable error type for key violations, so
// the classifiers below go by the driver's message text: MySQL error
// numbers 1062 (duplicate) and 1452 (missing parent row), and the
// SQLite constraint wording used by the test store.

// IsUniqueViolation reports whether err is a unique-key violation, an
// insert colliding with an existing row.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") ||
		strings.Contains(msg, "unique constraint")
}

// IsForeignKeyViolation reports whether err is a foreign-key violation,
// an insert referencing a missing parent row.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1452") ||
		strings.Contains(msg, "foreign key constraint")
}

// IsConstraintViolation reports whether err is either kind of key
// violation, for callers where only one kind can occur.
func IsConstraintViolation(err error) bool {
	return IsUniqueViolation(err) || IsForeignKeyViolation(err)
}
