package library

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// LendingLedger is the authoritative set of active checkouts. At most one
// active record exists per book; a user may hold any number.
type LendingLedger struct {
	byBook map[int64]*CheckoutRecord
	byUser map[int64]map[int64]struct{} // userID -> set of bookIDs
}

// NewLendingLedger returns an empty ledger.
func NewLendingLedger() *LendingLedger {
	return &LendingLedger{
		byBook: make(map[int64]*CheckoutRecord),
		byUser: make(map[int64]map[int64]struct{}),
	}
}

// Checkout records a borrow at the given time. It fails with
// ErrNotAvailable if the book already has an active record. Existence of
// the book and user is the caller's responsibility.
func (l *LendingLedger) Checkout(userID, bookID int64, at time.Time) error {
	if _, ok := l.byBook[bookID]; ok {
		return fmt.Errorf("book %d: %w", bookID, ErrNotAvailable)
	}
	l.byBook[bookID] = &CheckoutRecord{UserID: userID, BookID: bookID, BorrowedAt: at}
	if l.byUser[userID] == nil {
		l.byUser[userID] = make(map[int64]struct{})
	}
	l.byUser[userID][bookID] = struct{}{}
	return nil
}

// Return destroys the book's active record and yields it. It fails with
// ErrNotBorrowed if no record exists.
func (l *LendingLedger) Return(bookID int64) (*CheckoutRecord, error) {
	rec, ok := l.byBook[bookID]
	if !ok {
		return nil, fmt.Errorf("book %d: %w", bookID, ErrNotBorrowed)
	}
	delete(l.byBook, bookID)
	delete(l.byUser[rec.UserID], bookID)
	if len(l.byUser[rec.UserID]) == 0 {
		delete(l.byUser, rec.UserID)
	}
	return rec, nil
}

// Active returns the book's active record, if any.
func (l *LendingLedger) Active(bookID int64) (*CheckoutRecord, bool) {
	rec, ok := l.byBook[bookID]
	return rec, ok
}

// ActiveByUser returns the user's active records ordered by book
// identifier.
func (l *LendingLedger) ActiveByUser(userID int64) []*CheckoutRecord {
	var recs []*CheckoutRecord
	for bookID := range l.byUser[userID] {
		recs = append(recs, l.byBook[bookID])
	}
	slices.SortFunc(recs, func(a, b *CheckoutRecord) int { return cmp.Compare(a.BookID, b.BookID) })
	return recs
}

// Len returns the number of active checkouts.
func (l *LendingLedger) Len() int { return len(l.byBook) }

// all returns every active record ordered by book identifier. Only the
// Store uses it.
func (l *LendingLedger) all() []*CheckoutRecord {
	recs := make([]*CheckoutRecord, 0, len(l.byBook))
	for _, rec := range l.byBook {
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b *CheckoutRecord) int { return cmp.Compare(a.BookID, b.BookID) })
	return recs
}
