package library

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// UserDirectory is the authoritative set of registered users, keyed by
// identifier. Credential tokens are stored as bcrypt hashes only.
type UserDirectory struct {
	users map[int64]*User
}

// NewUserDirectory returns an empty directory.
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[int64]*User)}
}

// Add registers a user with the given plaintext token, which is hashed
// before storage. It fails with ErrDuplicateID if the identifier is taken,
// and rejects empty tokens.
func (d *UserDirectory) Add(id int64, name, token string) error {
	if _, ok := d.users[id]; ok {
		return fmt.Errorf("user %d: %w", id, ErrDuplicateID)
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("user %d: token cannot be empty", id)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash token: %w", err)
	}
	d.users[id] = &User{ID: id, Name: name, TokenHash: hash}
	return nil
}

// Authenticate checks the token against the stored hash. A mismatched
// token yields (false, nil); only an unknown identifier is an error.
func (d *UserDirectory) Authenticate(id int64, token string) (bool, error) {
	u, ok := d.users[id]
	if !ok {
		return false, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword(u.TokenHash, []byte(token)); err != nil {
		return false, nil
	}
	return true, nil
}

// Remove deletes the user. It fails with ErrNotFound if the identifier is
// unknown. Active-checkout protection lives in Library.RemoveUser, which
// is the only place that can see the ledger.
func (d *UserDirectory) Remove(id int64) error {
	if _, ok := d.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	delete(d.users, id)
	return nil
}

// Get fetches a single user.
func (d *UserDirectory) Get(id int64) (*User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u, nil
}

// Len returns the number of registered users.
func (d *UserDirectory) Len() int { return len(d.users) }

// All returns every user ordered by identifier.
func (d *UserDirectory) All() []*User {
	users := make([]*User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b *User) int { return cmp.Compare(a.ID, b.ID) })
	return users
}

// restore re-creates a user from a persisted hash, bypassing re-hashing.
// Only the Store uses it.
func (d *UserDirectory) restore(u User) {
	d.users[u.ID] = &u
}
