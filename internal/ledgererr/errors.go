// Package ledgererr defines the error kinds returned by the ledger core.
//
// Callers match kinds with errors.Is. Every constructor keeps the kind in the
// chain so that wrapping with more context never loses it.
package ledgererr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a transaction, account or category does not exist
	// or is not visible to the calling user.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when an entity exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalid is returned for inputs the ledger refuses to post, such as a
	// non-positive amount or an inverted date range.
	ErrInvalid = errors.New("invalid")
	// ErrStorage wraps failures of the underlying persistence layer.
	ErrStorage = errors.New("storage failure")
)

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

func Forbidden(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrForbidden)
}

func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// Storage tags err as a storage failure. Errors that already carry a ledger
// kind are returned unchanged, as is nil.
func Storage(err error) error {
	if err == nil || IsKind(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// IsKind reports whether err carries one of the ledger error kinds.
func IsKind(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalid) ||
		errors.Is(err, ErrStorage)
}
