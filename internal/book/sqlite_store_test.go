package book

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func openTestSQLite(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(path, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	testStoreContract(t, openTestSQLite(t, MemoryDSN))
}

func TestSQLiteStore_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "books.db")
	ctx := context.Background()

	store, err := OpenSQLite(path, 2*time.Second)
	require.NoError(t, err)
	_, err = store.Create(ctx, Book{ISBN: "123456", Title: "Book 1", Author: "Author 1", Genre: "Fiction"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := openTestSQLite(t, path)
	require.NoError(t, reopened.Ping(ctx))
	got, err := reopened.FindOne(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, "Fiction", got.Genre)
	assert.Nil(t, got.PublishedYear)
	assert.Nil(t, got.Available)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("", time.Second)
	assert.Error(t, err)
}

func TestSQLiteStore_ConcurrentWrites(t *testing.T) {
	store := openTestSQLite(t, filepath.Join(t.TempDir(), "books.db"))
	ctx := context.Background()

	const n = 50
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			isbn := fmt.Sprintf("isbn-%02d", i)
			if _, err := store.Create(gctx, Book{ISBN: isbn, Title: "Book " + isbn, Author: "Author"}); err != nil {
				return err
			}
			_, err := store.Update(gctx, isbn, Patch{Genre: ptr("Fiction")})
			return err
		})
	}
	require.NoError(t, g.Wait())

	books, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, books, n)
	for _, b := range books {
		assert.Equal(t, "Fiction", b.Genre)
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, MemoryDSN, sqliteDSN(MemoryDSN))

	dsn := sqliteDSN("data/books.db")
	assert.Contains(t, dsn, "file:data/books.db?")
	assert.Contains(t, dsn, "_pragma=busy_timeout(5000)")
	assert.Contains(t, dsn, "_pragma=journal_mode(WAL)")
}
