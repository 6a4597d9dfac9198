package library

import (
	"fmt"
	"iter"
	"time"
)

// Library ties the catalog, user directory, and lending ledger together
// and enforces the invariants that span them: a book's availability flag
// is false exactly while the ledger holds an active record for it, and
// neither a borrowed book nor a user with active loans can be removed.
//
// The core is single-caller and sequential; a server wrapping it must
// serialize mutating operations itself.
type Library struct {
	catalog *Catalog
	users   *UserDirectory
	ledger  *LendingLedger

	now func() time.Time // injectable for tests
}

// New returns an empty library.
func New() *Library {
	return &Library{
		catalog: NewCatalog(),
		users:   NewUserDirectory(),
		ledger:  NewLendingLedger(),
		now:     time.Now,
	}
}

// ------------------ Books ------------------

// AddBook adds a book to the catalog and its search indexes.
func (l *Library) AddBook(b Book) error { return l.catalog.Add(b) }

// RemoveBook removes a book. It fails with ErrInUse while the book is
// checked out, leaving catalog and ledger unchanged.
func (l *Library) RemoveBook(id int64) error { return l.catalog.Remove(id) }

// GetBook fetches a single book.
func (l *Library) GetBook(id int64) (*Book, error) { return l.catalog.Get(id) }

// FindByTitle returns books whose title starts with prefix, ordered by
// identifier.
func (l *Library) FindByTitle(prefix string) iter.Seq[*Book] {
	return l.catalog.FindByTitle(prefix)
}

// FindByAuthor returns books whose author starts with prefix, ordered by
// identifier.
func (l *Library) FindByAuthor(prefix string) iter.Seq[*Book] {
	return l.catalog.FindByAuthor(prefix)
}

// ListSorted returns all books ordered by the chosen attribute with a
// stable identifier tie-break.
func (l *Library) ListSorted(key SortKey) ([]*Book, error) { return l.catalog.ListSorted(key) }

// ------------------ Users ------------------

// AddUser registers a user; the token is bcrypt-hashed before storage.
func (l *Library) AddUser(id int64, name, token string) error {
	return l.users.Add(id, name, token)
}

// RemoveUser deletes a user. It fails with ErrInUse while the user holds
// active checkouts.
func (l *Library) RemoveUser(id int64) error {
	if _, err := l.users.Get(id); err != nil {
		return err
	}
	if len(l.ledger.ActiveByUser(id)) > 0 {
		return fmt.Errorf("user %d: %w", id, ErrInUse)
	}
	return l.users.Remove(id)
}

// Authenticate checks a user's token. A wrong token is (false, nil); an
// unknown identifier is ErrNotFound.
func (l *Library) Authenticate(id int64, token string) (bool, error) {
	return l.users.Authenticate(id, token)
}

// GetUser fetches a single user.
func (l *Library) GetUser(id int64) (*User, error) { return l.users.Get(id) }

// Users returns all users ordered by identifier.
func (l *Library) Users() []*User { return l.users.All() }

// ------------------ Circulation ------------------

// Borrow checks the book out to the user, recording the current time.
// Unknown book or user is ErrNotFound; an already-borrowed book is
// ErrNotAvailable. A failed borrow leaves all state unchanged.
func (l *Library) Borrow(userID, bookID int64) error {
	book, err := l.catalog.Get(bookID)
	if err != nil {
		return err
	}
	if _, err := l.users.Get(userID); err != nil {
		return err
	}
	if err := l.ledger.Checkout(userID, bookID, l.now()); err != nil {
		return err
	}
	book.Available = false
	return nil
}

// Return ends the book's active checkout and makes it available again.
// It fails with ErrNotBorrowed if no checkout is active.
func (l *Library) Return(bookID int64) error {
	book, err := l.catalog.Get(bookID)
	if err != nil {
		return err
	}
	if _, err := l.ledger.Return(bookID); err != nil {
		return err
	}
	book.Available = true
	return nil
}

// ActiveCheckout returns the book's active record, if any.
func (l *Library) ActiveCheckout(bookID int64) (*CheckoutRecord, bool) {
	return l.ledger.Active(bookID)
}

// Checkouts returns every active record ordered by book identifier.
func (l *Library) Checkouts() []*CheckoutRecord { return l.ledger.all() }

// BorrowedBy returns the books the user currently holds, ordered by
// identifier. An unknown user is ErrNotFound.
func (l *Library) BorrowedBy(userID int64) ([]*Book, error) {
	if _, err := l.users.Get(userID); err != nil {
		return nil, err
	}
	var books []*Book
	for _, rec := range l.ledger.ActiveByUser(userID) {
		b, err := l.catalog.Get(rec.BookID)
		if err != nil {
			continue
		}
		books = append(books, b)
	}
	return books, nil
}

// Stats reports current holdings.
func (l *Library) Stats() Stats {
	borrowed := l.ledger.Len()
	return Stats{
		Books:     l.catalog.Len(),
		Available: l.catalog.Len() - borrowed,
		Borrowed:  borrowed,
		Users:     l.users.Len(),
	}
}
