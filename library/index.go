package library

import (
	"math"
	"strings"

	"github.com/google/btree"
	"golang.org/x/text/unicode/norm"
)

// indexEntry is one (normalized key, book id) pair. Ordering is by key,
// then id, which gives LookupPrefix its key-order, id-ascending result
// order for free.
type indexEntry struct {
	key string
	id  int64
}

func lessEntry(a, b indexEntry) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.id < b.id
}

// SearchIndex is a balanced ordered index over normalized strings (titles
// or authors) mapping to book identifiers. The Catalog keeps one index per
// attribute consistent with its membership after every mutation.
type SearchIndex struct {
	tree *btree.BTreeG[indexEntry]
}

// NewSearchIndex returns an empty index.
func NewSearchIndex() *SearchIndex {
	return &SearchIndex{tree: btree.NewG(32, lessEntry)}
}

// normalizeKey folds a title or author into its index form: Unicode NFC
// then lower case, so "Café" and "café" land on the same key.
func normalizeKey(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Insert adds the (key, id) pair. Inserting an existing pair is a no-op.
func (ix *SearchIndex) Insert(key string, id int64) {
	ix.tree.ReplaceOrInsert(indexEntry{key: normalizeKey(key), id: id})
}

// Delete removes the (key, id) pair if present.
func (ix *SearchIndex) Delete(key string, id int64) {
	ix.tree.Delete(indexEntry{key: normalizeKey(key), id: id})
}

// Contains reports whether the (key, id) pair is indexed.
func (ix *SearchIndex) Contains(key string, id int64) bool {
	_, ok := ix.tree.Get(indexEntry{key: normalizeKey(key), id: id})
	return ok
}

// LookupPrefix returns the identifiers of all entries whose key starts
// with prefix, in key order with ties broken by identifier ascending.
// Cost is O(log n + k) for k results.
func (ix *SearchIndex) LookupPrefix(prefix string) []int64 {
	p := normalizeKey(prefix)
	var ids []int64
	ix.tree.AscendGreaterOrEqual(indexEntry{key: p, id: math.MinInt64}, func(e indexEntry) bool {
		if !strings.HasPrefix(e.key, p) {
			return false
		}
		ids = append(ids, e.id)
		return true
	})
	return ids
}

// Len returns the number of indexed entries.
func (ix *SearchIndex) Len() int { return ix.tree.Len() }
