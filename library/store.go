package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists library snapshots to SQLite. The in-memory core never
// touches it; callers (the CLI) load a Library, mutate it, and save it
// back. Snapshot writes are fine at this scale and keep the core free of
// persistence concerns.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at dbPath and applies
// schema migrations.
func OpenStore(dbPath string) (*Store, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            id INTEGER PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            year INTEGER NOT NULL DEFAULT 0,
            available BOOLEAN NOT NULL DEFAULT 1
        );`,
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            token_hash BLOB NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS checkouts (
            book_id INTEGER PRIMARY KEY REFERENCES books(id),
            user_id INTEGER NOT NULL REFERENCES users(id),
            borrowed_at DATETIME NOT NULL
        );`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Snapshot load/save
// ---------------------------------------------------------------------------

// Load rebuilds the in-memory library from the database. The availability
// flag is derived from the checkouts table, which is authoritative.
func (s *Store) Load() (*Library, error) {
	lib := New()

	rows, err := s.db.Query(`SELECT id,title,author,year FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year); err != nil {
			return nil, err
		}
		if err := lib.catalog.Add(b); err != nil {
			return nil, fmt.Errorf("load book %d: %w", b.ID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	userRows, err := s.db.Query(`SELECT id,name,token_hash FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer userRows.Close()
	for userRows.Next() {
		var u User
		if err := userRows.Scan(&u.ID, &u.Name, &u.TokenHash); err != nil {
			return nil, err
		}
		lib.users.restore(u)
	}
	if err := userRows.Err(); err != nil {
		return nil, err
	}

	chkRows, err := s.db.Query(`SELECT book_id,user_id,borrowed_at FROM checkouts ORDER BY book_id`)
	if err != nil {
		return nil, err
	}
	defer chkRows.Close()
	for chkRows.Next() {
		var bookID, userID int64
		var at time.Time
		if err := chkRows.Scan(&bookID, &userID, &at); err != nil {
			return nil, err
		}
		if err := lib.ledger.Checkout(userID, bookID, at); err != nil {
			return nil, fmt.Errorf("load checkout for book %d: %w", bookID, err)
		}
		if b, err := lib.catalog.Get(bookID); err == nil {
			b.Available = false
		}
	}
	if err := chkRows.Err(); err != nil {
		return nil, err
	}

	return lib, nil
}

// Save writes a full snapshot of the library in one transaction.
func (s *Store) Save(lib *Library) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"checkouts", "books", "users"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	books, err := lib.ListSorted(SortByID)
	if err != nil {
		return err
	}
	for _, b := range books {
		if _, err := tx.Exec(`INSERT INTO books(id,title,author,year,available) VALUES(?,?,?,?,?)`,
			b.ID, b.Title, b.Author, b.Year, b.Available); err != nil {
			return fmt.Errorf("save book %d: %w", b.ID, err)
		}
	}

	for _, u := range lib.Users() {
		if _, err := tx.Exec(`INSERT INTO users(id,name,token_hash) VALUES(?,?,?)`,
			u.ID, u.Name, u.TokenHash); err != nil {
			return fmt.Errorf("save user %d: %w", u.ID, err)
		}
	}

	for _, rec := range lib.Checkouts() {
		if _, err := tx.Exec(`INSERT INTO checkouts(book_id,user_id,borrowed_at) VALUES(?,?,?)`,
			rec.BookID, rec.UserID, rec.BorrowedAt); err != nil {
			return fmt.Errorf("save checkout for book %d: %w", rec.BookID, err)
		}
	}

	return tx.Commit()
}
