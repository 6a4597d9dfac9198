package library

import "time"

// Book represents a title in the catalog. Available is maintained by the
// Library facade: it is false exactly while an active checkout references
// the book.
type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year,omitempty"`
	Available bool   `json:"available"`
}

// User represents a registered borrower.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	TokenHash []byte `json:"-"` // Don't serialize credential hash
}

// CheckoutRecord links a borrowed book to its borrower. A record is
// immutable while active; returning the book destroys it.
type CheckoutRecord struct {
	UserID     int64     `json:"user_id"`
	BookID     int64     `json:"book_id"`
	BorrowedAt time.Time `json:"borrowed_at"`
}

// Stats summarizes the library's current holdings.
type Stats struct {
	Books     int `json:"books"`
	Available int `json:"available"`
	Borrowed  int `json:"borrowed"`
	Users     int `json:"users"`
}
