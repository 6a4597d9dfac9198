package library

import (
	"errors"
	"testing"
)

func TestAddUserDuplicate(t *testing.T) {
	d := NewUserDirectory()
	if err := d.Add(10, "Alice", "secret"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := d.Add(10, "Bob", "other"); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("want ErrDuplicateID, got %v", err)
	}
}

func TestAddUserEmptyToken(t *testing.T) {
	d := NewUserDirectory()
	if err := d.Add(10, "Alice", "  "); err == nil {
		t.Fatalf("want error for empty token")
	}
}

func TestAuthenticate(t *testing.T) {
	d := NewUserDirectory()
	if err := d.Add(10, "Alice", "secret"); err != nil {
		t.Fatalf("add: %v", err)
	}

	ok, err := d.Authenticate(10, "secret")
	if err != nil || !ok {
		t.Fatalf("want (true, nil), got (%v, %v)", ok, err)
	}

	// Wrong token is a clean false, not an error.
	ok, err = d.Authenticate(10, "wrong")
	if err != nil || ok {
		t.Fatalf("want (false, nil), got (%v, %v)", ok, err)
	}

	// Unknown id is an error.
	if _, err := d.Authenticate(99, "secret"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRemoveUser(t *testing.T) {
	d := NewUserDirectory()
	d.Add(10, "Alice", "secret")
	if err := d.Remove(10); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := d.Remove(10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAllUsersOrdered(t *testing.T) {
	d := NewUserDirectory()
	d.Add(30, "Carol", "c")
	d.Add(10, "Alice", "a")
	d.Add(20, "Bob", "b")

	users := d.All()
	if len(users) != 3 || users[0].ID != 10 || users[1].ID != 20 || users[2].ID != 30 {
		t.Fatalf("users not ordered by id: %v", users)
	}
}
