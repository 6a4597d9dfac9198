package library

import "errors"

// Sentinel errors returned by catalog, directory, and ledger operations.
// Call sites wrap them with the offending identifier; match with errors.Is.
var (
	// ErrDuplicateID is returned when adding a book or user whose
	// identifier is already taken.
	ErrDuplicateID = errors.New("identifier already exists")

	// ErrNotFound is returned when an operation references an unknown
	// book or user.
	ErrNotFound = errors.New("not found")

	// ErrInUse is returned when removal is blocked by an active checkout.
	ErrInUse = errors.New("in use by an active checkout")

	// ErrNotAvailable is returned when borrowing a book that is already
	// checked out.
	ErrNotAvailable = errors.New("book not available")

	// ErrNotBorrowed is returned when returning a book that has no
	// active checkout.
	ErrNotBorrowed = errors.New("book not borrowed")
)
