package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreContract exercises a Store implementation against an empty books table.
func testStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	dune := Book{
		ISBN:          "9780441013593",
		Title:         "Dune",
		Author:        "Frank Herbert",
		PublishedYear: ptr(1965),
		Genre:         "Science Fiction",
		Available:     ptr(true),
	}
	emma := Book{ISBN: "9780141439587", Title: "Emma", Author: "Jane Austen"}

	books, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	created, err := store.Create(ctx, emma)
	require.NoError(t, err)
	assert.Equal(t, emma, created)

	created, err = store.Create(ctx, dune)
	require.NoError(t, err)
	assert.Equal(t, dune, created)

	_, err = store.Create(ctx, dune)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	got, err := store.FindOne(ctx, dune.ISBN)
	require.NoError(t, err)
	assert.Equal(t, dune, got)

	_, err = store.FindOne(ctx, "0000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	books, err = store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Emma", books[1].Title)

	patch := Patch{Title: ptr("Dune Messiah"), PublishedYear: ptr(1969), Available: ptr(false)}
	updated, err := store.Update(ctx, dune.ISBN, patch)
	require.NoError(t, err)
	assert.Equal(t, patch.Apply(dune), updated)

	got, err = store.FindOne(ctx, dune.ISBN)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	unchanged, err := store.Update(ctx, emma.ISBN, Patch{})
	require.NoError(t, err)
	assert.Equal(t, emma, unchanged)

	_, err = store.Update(ctx, "0000000000", patch)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Remove(ctx, dune.ISBN))
	_, err = store.FindOne(ctx, dune.ISBN)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Remove(ctx, dune.ISBN), ErrNotFound)

	books, err = store.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Book{emma}, books)
}
