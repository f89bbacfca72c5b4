package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("cannot open book store", zap.Error(err))
	}
	defer closeStore()

	created, skipped, err := seed(ctx, book.NewService(store), sampleBooks())
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seeding done", zap.Int("created", created), zap.Int("skipped", skipped))
}

// seed creates every book, skipping ISBNs that are already stored.
func seed(ctx context.Context, svc *book.Service, books []book.Book) (created, skipped int, err error) {
	for _, b := range books {
		if _, err := svc.Create(ctx, b); err != nil {
			if errors.Is(err, book.ErrAlreadyExists) {
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("seed %s: %w", b.ISBN, err)
		}
		created++
	}
	return created, skipped, nil
}

func openStore(ctx context.Context, cfg config.Config) (book.Store, func(), error) {
	if cfg.StoreDriver == config.DriverSQLite {
		store, err := book.OpenSQLite(cfg.SQLitePath, cfg.DBTimeout)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return book.NewPostgresStore(pool, cfg.DBTimeout), pool.Close, nil
}

func sampleBooks() []book.Book {
	year := func(y int) *int { return &y }
	yes, no := true, false

	return []book.Book{
		{ISBN: "9780441013593", Title: "Dune", Author: "Frank Herbert", PublishedYear: year(1965), Genre: "Science Fiction", Available: &yes},
		{ISBN: "9780141439518", Title: "Pride and Prejudice", Author: "Jane Austen", PublishedYear: year(1813), Genre: "Romance", Available: &yes},
		{ISBN: "9780451524935", Title: "Nineteen Eighty-Four", Author: "George Orwell", PublishedYear: year(1949), Genre: "Fiction", Available: &no},
		{ISBN: "9780262033848", Title: "Introduction to Algorithms", Author: "Thomas H. Cormen", PublishedYear: year(1990), Genre: "Technology", Available: &yes},
		{ISBN: "9780307474278", Title: "The Road", Author: "Cormac McCarthy", PublishedYear: year(2006), Genre: "Fiction"},
		{ISBN: "9780553380163", Title: "A Brief History of Time", Author: "Stephen Hawking", PublishedYear: year(1988), Genre: "Science", Available: &yes},
		{ISBN: "9780060850524", Title: "Brave New World", Author: "Aldous Huxley", PublishedYear: year(1932), Genre: "Science Fiction", Available: &no},
		{ISBN: "9780199535569", Title: "Meditations", Author: "Marcus Aurelius", Genre: "Philosophy"},
	}
}
