package book

import (
	"context"
)

// Service provides book-related business logic. Input is validated before
// the store is called, and each operation makes exactly one store call.
type Service struct {
	store Store
}

// NewService creates a new book service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns every stored book in store order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns a book by its ISBN.
func (s *Service) Get(ctx context.Context, isbn string) (Book, error) {
	return s.store.FindOne(ctx, isbn)
}

// Create validates b and stores it.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	if err := validateStruct(b); err != nil {
		return Book{}, err
	}
	return s.store.Create(ctx, b)
}

// Update validates p and applies it to the book stored under isbn.
func (s *Service) Update(ctx context.Context, isbn string, p Patch) (Book, error) {
	if err := validateStruct(p); err != nil {
		return Book{}, err
	}
	return s.store.Update(ctx, isbn, p)
}

// Delete removes the book stored under isbn.
func (s *Service) Delete(ctx context.Context, isbn string) error {
	return s.store.Remove(ctx, isbn)
}
