package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_store.go -package=book

// Store defines the contract for book data storage.
type Store interface {
	FindAll(ctx context.Context) ([]Book, error)
	FindOne(ctx context.Context, isbn string) (Book, error)
	Create(ctx context.Context, b Book) (Book, error)
	Update(ctx context.Context, isbn string, p Patch) (Book, error)
	Remove(ctx context.Context, isbn string) error
}
