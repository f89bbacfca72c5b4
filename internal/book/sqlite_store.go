package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

var sqliteDialect = goqu.Dialect("sqlite3")

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS books (
	isbn           TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	author         TEXT NOT NULL,
	published_year INTEGER,
	genre          TEXT NOT NULL DEFAULT '',
	available      BOOLEAN
);`

// SQLiteStore is the Store backed by an embedded SQLite database. It is meant
// for local development and tests.
type SQLiteStore struct {
	db      *sql.DB
	timeout time.Duration
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// books table exists.
func OpenSQLite(path string, timeout time.Duration) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == MemoryDSN {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite: %w", err)
	}

	return &SQLiteStore{db: db, timeout: timeout}, nil
}

// sqliteDSN applies the pragmas on every pooled connection, not just the one
// that happens to run them. Writers wait on each other instead of failing
// with SQLITE_BUSY.
func sqliteDSN(path string) string {
	if path == MemoryDSN {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) FindAll(ctx context.Context) ([]Book, error) {
	query, args, err := sqliteDialect.From(tableBooks).
		Select(bookColumns...).
		Order(orderByTitle()...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find all: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find all books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) FindOne(ctx context.Context, isbn string) (Book, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.findOne(ctx, s.db, isbn)
}

type sqlQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) findOne(ctx context.Context, q sqlQueryer, isbn string) (Book, error) {
	query, args, err := sqliteDialect.From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C(colISBN).Eq(isbn)).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build find one: %w", err)
	}

	b, err := scanBook(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("find book %s: %w", isbn, err)
	}
	return b, nil
}

func (s *SQLiteStore) Create(ctx context.Context, b Book) (Book, error) {
	query, args, err := sqliteDialect.Insert(tableBooks).
		Rows(insertRecord(b)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build create: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isSQLiteConstraint(err) {
			return Book{}, ErrAlreadyExists
		}
		return Book{}, fmt.Errorf("create book %s: %w", b.ISBN, err)
	}
	return s.findOne(ctx, s.db, b.ISBN)
}

func (s *SQLiteStore) Update(ctx context.Context, isbn string, p Patch) (Book, error) {
	if p.Empty() {
		return s.FindOne(ctx, isbn)
	}

	query, args, err := sqliteDialect.Update(tableBooks).
		Set(patchRecord(p)).
		Where(goqu.C(colISBN).Eq(isbn)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build update: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Book{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return Book{}, fmt.Errorf("update book %s: %w", isbn, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return Book{}, fmt.Errorf("update book %s: %w", isbn, err)
	} else if n == 0 {
		return Book{}, ErrNotFound
	}

	updated, err := s.findOne(ctx, tx, isbn)
	if err != nil {
		return Book{}, err
	}
	if err := tx.Commit(); err != nil {
		return Book{}, fmt.Errorf("commit update: %w", err)
	}
	return updated, nil
}

func (s *SQLiteStore) Remove(ctx context.Context, isbn string) error {
	query, args, err := sqliteDialect.Delete(tableBooks).
		Where(goqu.C(colISBN).Eq(isbn)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove book %s: %w", isbn, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove book %s: %w", isbn, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isSQLiteConstraint(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch code := se.Code(); {
	case code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, code == sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case code&0xff == sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "UNIQUE constraint failed")
	}
	return false
}
