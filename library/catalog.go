package library

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
)

// SortKey selects the attribute ListSorted orders by.
type SortKey string

const (
	SortByID     SortKey = "id"
	SortByTitle  SortKey = "title"
	SortByAuthor SortKey = "author"
)

// Catalog is the authoritative set of Book records, keyed by identifier,
// with secondary ordered indexes over title and author for prefix search.
// Every mutation keeps both indexes consistent with catalog membership.
type Catalog struct {
	books   map[int64]*Book
	titles  *SearchIndex
	authors *SearchIndex
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		books:   make(map[int64]*Book),
		titles:  NewSearchIndex(),
		authors: NewSearchIndex(),
	}
}

// Add registers the book. It fails with ErrDuplicateID if the identifier
// is already taken. The book starts available.
func (c *Catalog) Add(b Book) error {
	if _, ok := c.books[b.ID]; ok {
		return fmt.Errorf("book %d: %w", b.ID, ErrDuplicateID)
	}
	b.Available = true
	c.books[b.ID] = &b
	c.titles.Insert(b.Title, b.ID)
	c.authors.Insert(b.Author, b.ID)
	return nil
}

// Remove deletes the book. It fails with ErrNotFound if the identifier is
// unknown, or ErrInUse while the book is checked out.
func (c *Catalog) Remove(id int64) error {
	b, ok := c.books[id]
	if !ok {
		return fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	if !b.Available {
		return fmt.Errorf("book %d: %w", id, ErrInUse)
	}
	delete(c.books, id)
	c.titles.Delete(b.Title, id)
	c.authors.Delete(b.Author, id)
	return nil
}

// Get fetches a single book.
func (c *Catalog) Get(id int64) (*Book, error) {
	b, ok := c.books[id]
	if !ok {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return b, nil
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int { return len(c.books) }

// FindByTitle returns the books whose title starts with prefix, ordered by
// identifier. The sequence is lazy and restartable: each range over it
// re-reads the current catalog state.
func (c *Catalog) FindByTitle(prefix string) iter.Seq[*Book] {
	return c.findByPrefix(c.titles, prefix)
}

// FindByAuthor is FindByTitle over the author index.
func (c *Catalog) FindByAuthor(prefix string) iter.Seq[*Book] {
	return c.findByPrefix(c.authors, prefix)
}

func (c *Catalog) findByPrefix(ix *SearchIndex, prefix string) iter.Seq[*Book] {
	return func(yield func(*Book) bool) {
		ids := ix.LookupPrefix(prefix)
		slices.Sort(ids)
		for _, id := range ids {
			b, ok := c.books[id]
			if !ok {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

// ListSorted returns all books ordered by the chosen attribute, with
// identifier as a stable tie-break. The sort is comparison-based,
// O(n log n) worst case.
func (c *Catalog) ListSorted(key SortKey) ([]*Book, error) {
	books := make([]*Book, 0, len(c.books))
	for _, b := range c.books {
		books = append(books, b)
	}
	switch key {
	case SortByID:
		slices.SortFunc(books, func(a, b *Book) int { return cmp.Compare(a.ID, b.ID) })
	case SortByTitle:
		slices.SortFunc(books, func(a, b *Book) int {
			if r := cmp.Compare(normalizeKey(a.Title), normalizeKey(b.Title)); r != 0 {
				return r
			}
			return cmp.Compare(a.ID, b.ID)
		})
	case SortByAuthor:
		slices.SortFunc(books, func(a, b *Book) int {
			if r := cmp.Compare(normalizeKey(a.Author), normalizeKey(b.Author)); r != 0 {
				return r
			}
			return cmp.Compare(a.ID, b.ID)
		})
	default:
		return nil, fmt.Errorf("unknown sort key %q", key)
	}
	return books, nil
}
