package library

import (
	"errors"
	"testing"
	"time"
)

func TestCheckoutAndReturn(t *testing.T) {
	l := NewLendingLedger()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	if err := l.Checkout(10, 1, at); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	rec, ok := l.Active(1)
	if !ok || rec.UserID != 10 || !rec.BorrowedAt.Equal(at) {
		t.Fatalf("bad record: %+v", rec)
	}

	returned, err := l.Return(1)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if returned.UserID != 10 {
		t.Fatalf("want user 10, got %d", returned.UserID)
	}
	if _, ok := l.Active(1); ok {
		t.Fatalf("record should be destroyed")
	}
}

func TestCheckoutAlreadyBorrowed(t *testing.T) {
	l := NewLendingLedger()
	now := time.Now()
	l.Checkout(10, 1, now)

	err := l.Checkout(20, 1, now)
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("want ErrNotAvailable, got %v", err)
	}
	// Failed checkout leaves the original record intact.
	rec, _ := l.Active(1)
	if rec.UserID != 10 {
		t.Fatalf("record clobbered: %+v", rec)
	}
}

func TestReturnNotBorrowed(t *testing.T) {
	l := NewLendingLedger()
	if _, err := l.Return(1); !errors.Is(err, ErrNotBorrowed) {
		t.Fatalf("want ErrNotBorrowed, got %v", err)
	}
}

func TestActiveByUserOrdered(t *testing.T) {
	l := NewLendingLedger()
	now := time.Now()
	l.Checkout(10, 3, now)
	l.Checkout(10, 1, now)
	l.Checkout(20, 2, now)

	recs := l.ActiveByUser(10)
	if len(recs) != 2 || recs[0].BookID != 1 || recs[1].BookID != 3 {
		t.Fatalf("bad order: %+v", recs)
	}
	if len(l.ActiveByUser(99)) != 0 {
		t.Fatalf("unknown user should hold nothing")
	}

	l.Return(1)
	l.Return(3)
	if len(l.ActiveByUser(10)) != 0 {
		t.Fatalf("user 10 should hold nothing after returns")
	}
	if l.Len() != 1 {
		t.Fatalf("want 1 active checkout, got %d", l.Len())
	}
}
