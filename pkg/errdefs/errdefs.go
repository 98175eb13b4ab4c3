// Package errdefs defines the error kinds shared by the ideabook core.
//
// Core operations never panic. They return errors that wrap one of the
// sentinels below so callers can branch with errors.Is.
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned when an idea or category name collides
	// with an existing one.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrAlreadyExists is the category flavour of ErrDuplicateName.
	ErrAlreadyExists = fmt.Errorf("%w: already exists", ErrDuplicateName)

	// ErrNotFound is returned alongside a default object when a record is
	// missing from storage.
	ErrNotFound = errors.New("not found")

	// ErrIO wraps filesystem read, write and delete failures.
	ErrIO = errors.New("io error")

	// ErrMalformedDate is returned when a stored timestamp could not be
	// parsed and the current time was substituted.
	ErrMalformedDate = errors.New("malformed date")

	// ErrInvalidArgument is returned before any I/O when a required field is
	// missing or does not satisfy the naming rules.
	ErrInvalidArgument = errors.New("invalid argument")
)

// IO wraps err as an ErrIO for the given operation and path.
func IO(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// Invalid builds an ErrInvalidArgument with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound builds an ErrNotFound for the named record.
func NotFound(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
}

func IsDuplicate(err error) bool     { return errors.Is(err, ErrDuplicateName) }
func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsIO(err error) bool            { return errors.Is(err, ErrIO) }
func IsMalformedDate(err error) bool { return errors.Is(err, ErrMalformedDate) }
func IsInvalid(err error) bool       { return errors.Is(err, ErrInvalidArgument) }
