package book

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	tableBooks = "books"

	colISBN          = "isbn"
	colTitle         = "title"
	colAuthor        = "author"
	colPublishedYear = "published_year"
	colGenre         = "genre"
	colAvailable     = "available"
)

// bookColumns is the scan order used by scanBook.
var bookColumns = []interface{}{colISBN, colTitle, colAuthor, colPublishedYear, colGenre, colAvailable}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (Book, error) {
	var b Book
	err := row.Scan(&b.ISBN, &b.Title, &b.Author, &b.PublishedYear, &b.Genre, &b.Available)
	return b, err
}

func insertRecord(b Book) goqu.Record {
	return goqu.Record{
		colISBN:          b.ISBN,
		colTitle:         b.Title,
		colAuthor:        b.Author,
		colPublishedYear: nullable(b.PublishedYear),
		colGenre:         b.Genre,
		colAvailable:     nullable(b.Available),
	}
}

func patchRecord(p Patch) goqu.Record {
	rec := goqu.Record{}
	if p.Title != nil {
		rec[colTitle] = *p.Title
	}
	if p.Author != nil {
		rec[colAuthor] = *p.Author
	}
	if p.PublishedYear != nil {
		rec[colPublishedYear] = *p.PublishedYear
	}
	if p.Genre != nil {
		rec[colGenre] = *p.Genre
	}
	if p.Available != nil {
		rec[colAvailable] = *p.Available
	}
	return rec
}

func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func orderByTitle() []exp.OrderedExpression {
	return []exp.OrderedExpression{goqu.C(colTitle).Asc(), goqu.C(colISBN).Asc()}
}
