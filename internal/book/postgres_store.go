package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

var pgDialect = goqu.Dialect("postgres")

// PostgresStore is the Store backed by a pgx connection pool.
type PostgresStore struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresStore(db *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.Ping(ctx)
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]Book, error) {
	query, args, err := pgDialect.From(tableBooks).
		Select(bookColumns...).
		Order(orderByTitle()...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find all: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.Query(ctx, query, args...)
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

func (s *PostgresStore) FindOne(ctx context.Context, isbn string) (Book, error) {
	query, args, err := pgDialect.From(tableBooks).
		Select(bookColumns...).
		Where(goqu.C(colISBN).Eq(isbn)).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build find one: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("find book %s: %w", isbn, err)
	}
	return b, nil
}

func (s *PostgresStore) Create(ctx context.Context, b Book) (Book, error) {
	query, args, err := pgDialect.Insert(tableBooks).
		Rows(insertRecord(b)).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build create: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	created, err := scanBook(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Book{}, ErrAlreadyExists
		}
		return Book{}, fmt.Errorf("create book %s: %w", b.ISBN, err)
	}
	return created, nil
}

func (s *PostgresStore) Update(ctx context.Context, isbn string, p Patch) (Book, error) {
	if p.Empty() {
		return s.FindOne(ctx, isbn)
	}

	query, args, err := pgDialect.Update(tableBooks).
		Set(patchRecord(p)).
		Where(goqu.C(colISBN).Eq(isbn)).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build update: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	updated, err := scanBook(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("update book %s: %w", isbn, err)
	}
	return updated, nil
}

func (s *PostgresStore) Remove(ctx context.Context, isbn string) error {
	query, args, err := pgDialect.Delete(tableBooks).
		Where(goqu.C(colISBN).Eq(isbn)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove book %s: %w", isbn, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
