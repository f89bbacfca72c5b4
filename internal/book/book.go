package book

import (
	"errors"
)

var (
	// ErrNotFound is returned when no book is stored under an ISBN.
	ErrNotFound = errors.New("book not found")
	// ErrAlreadyExists is returned when creating a book whose ISBN is taken.
	ErrAlreadyExists = errors.New("book already exists")
)

// Book represents a book record. ISBN is the only key.
type Book struct {
	ISBN          string `json:"isbn" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	PublishedYear *int   `json:"published_year,omitempty" validate:"omitempty,gte=0"`
	Genre         string `json:"genre,omitempty"`
	Available     *bool  `json:"available,omitempty"`
}

// Patch holds the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	Title         *string `json:"title" validate:"omitempty,min=1"`
	Author        *string `json:"author" validate:"omitempty,min=1"`
	PublishedYear *int    `json:"published_year" validate:"omitempty,gte=0"`
	Genre         *string `json:"genre"`
	Available     *bool   `json:"available"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.PublishedYear == nil &&
		p.Genre == nil && p.Available == nil
}

// Apply returns b with the patch fields set.
func (p Patch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.PublishedYear != nil {
		year := *p.PublishedYear
		b.PublishedYear = &year
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.Available != nil {
		available := *p.Available
		b.Available = &available
	}
	return b
}
