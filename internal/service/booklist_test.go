package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booktrackapp/booktrack-server/internal/domain"
	apperrors "github.com/booktrackapp/booktrack-server/internal/errors"
	"github.com/booktrackapp/booktrack-server/internal/store"
)

// stubCatalog is a CatalogLookup returning a canned result.
type stubCatalog struct {
	book      *domain.Book
	err       error
	lastQuery string
}

func (c *stubCatalog) Search(_ context.Context, query string) (*domain.Book, error) {
	c.lastQuery = query
	if c.err != nil {
		return nil, c.err
	}
	b := c.book.Clone()
	return &b, nil
}

type testEnv struct {
	store     *store.Store
	catalog   *stubCatalog
	booklists *BooklistService
	books     *BookService
	search    *SearchService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	log := discardLogger()
	catalog := &stubCatalog{}
	propagator := NewPropagator(s, log)

	return &testEnv{
		store:     s,
		catalog:   catalog,
		booklists: NewBooklistService(s, catalog, log),
		books:     NewBookService(s, propagator, log),
		search:    NewSearchService(s, log),
	}
}

func seedBook(t *testing.T, env *testEnv, book domain.Book) {
	t.Helper()
	require.NoError(t, env.store.Books.Put(context.Background(), book.Asin, &book))
}

func TestCreateBooklist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Sci-Fi Favorites", []string{"space", "space", "aliens"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.CustomerID)
	assert.Equal(t, "Sci-Fi Favorites", created.Name)
	assert.Equal(t, []string{"space", "aliens"}, created.Tags, "tags deduped")
	assert.Empty(t, created.Books)
	assert.Zero(t, created.BookCount)

	stored, err := env.booklists.GetBooklist(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, stored.Name)
}

func TestCreateBooklist_InvalidAttributes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.booklists.CreateBooklist(ctx, "u1", `illegal"name`, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAttribute)

	_, err = env.booklists.CreateBooklist(ctx, "bad'customer", "Fine Name", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAttribute)

	_, err = env.booklists.CreateBooklist(ctx, "u1", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAttribute)
}

func TestRenameBooklist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Old Name", nil)
	require.NoError(t, err)

	renamed, err := env.booklists.RenameBooklist(ctx, "u1", created.ID, "New Name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", renamed.Name)
	assert.Equal(t, "u1", renamed.CustomerID)

	stored, err := env.booklists.GetBooklist(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", stored.Name)
}

func TestRenameBooklist_OwnershipBeforeExistence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Mine", nil)
	require.NoError(t, err)

	// A stranger renaming an existing list gets Unauthorized, never NotFound.
	_, err = env.booklists.RenameBooklist(ctx, "u2", created.ID, "Stolen")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.booklists.RenameBooklist(ctx, "u1", "list-missing", "Whatever")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteBooklist_ReturnsPreDeleteValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Doomed", nil)
	require.NoError(t, err)

	removed, err := env.booklists.DeleteBooklist(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doomed", removed.Name)

	_, err = env.booklists.GetBooklist(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteBooklist_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Mine", nil)
	require.NoError(t, err)

	_, err = env.booklists.DeleteBooklist(ctx, "u2", created.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Still there.
	_, err = env.booklists.GetBooklist(ctx, created.ID)
	require.NoError(t, err)
}

func TestAddBook_ExistingCanonicalAppends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedBook(t, env, domain.Book{Asin: "X", Title: "T", Author: "A"})

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Mine", nil)
	require.NoError(t, err)

	updated, err := env.booklists.AddBook(ctx, "u1", created.ID, "X")
	require.NoError(t, err)

	require.Len(t, updated.Books, 1)
	assert.Equal(t, "X", updated.Books[0].Asin)
	assert.Equal(t, 1, updated.BookCount)
	assert.Empty(t, env.catalog.lastQuery, "catalog not consulted for an exact asin match")
}

func TestAddBook_AppendsToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedBook(t, env, domain.Book{Asin: "X", Title: "T", Author: "A"})
	seedBook(t, env, domain.Book{Asin: "Y", Title: "U", Author: "B"})

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Mine", nil)
	require.NoError(t, err)

	_, err = env.booklists.AddBook(ctx, "u1", created.ID, "X")
	require.NoError(t, err)
	updated, err := env.booklists.AddBook(ctx, "u1", created.ID, "Y")
	require.NoError(t, err)

	require.Len(t, updated.Books, 2)
	assert.Equal(t, "Y", updated.Books[1].Asin)
	assert.Equal(t, 2, updated.BookCount)
}

func TestAddBook_FreeTextMaterializesCatalogResult(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.catalog.book = &domain.Book{Asin: "9780553897845", Title: "A Game of Thrones", Author: "George R. R. Martin"}

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Mine", nil)
	require.NoError(t, err)

	updated, err := env.booklists.AddBook(ctx, "u1", created.ID, "game of thrones book one")
	require.NoError(t, err)

	assert.Equal(t, "game of thrones book one", env.catalog.lastQuery)
	require.Len(t, updated.Books, 1)
	assert.Equal(t, "9780553897845", updated.Books[0].Asin)

	// The first result became a canonical book.
	canonical, err := env.books.GetBook(ctx, "9780553897845")
	require.NoError(t, err)
	assert.Equal(t, "A Game of Thrones", canonical.Title)
}

func TestAddBook_NoSearchResult(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.catalog.err = apperrors.NoSearchResult("nothing for that term")

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Mine", nil)
	require.NoError(t, err)

	_, err = env.booklists.AddBook(ctx, "u1", created.ID, "gibberish xyzzy")
	assert.ErrorIs(t, err, apperrors.ErrNoSearchResult)

	stored, err := env.booklists.GetBooklist(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.BookCount)
}

func TestAddBook_BooklistNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.booklists.AddBook(context.Background(), "u1", "list-missing", "X")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddBook_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedBook(t, env, domain.Book{Asin: "X", Title: "T", Author: "A"})
	created, err := env.booklists.CreateBooklist(ctx, "u1", "Mine", nil)
	require.NoError(t, err)

	_, err = env.booklists.AddBook(ctx, "u2", created.ID, "X")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRemoveBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedBook(t, env, domain.Book{Asin: "X", Title: "T", Author: "A"})
	seedBook(t, env, domain.Book{Asin: "Y", Title: "U", Author: "B"})

	created, err := env.booklists.CreateBooklist(ctx, "u1", "Mine", nil)
	require.NoError(t, err)
	_, err = env.booklists.AddBook(ctx, "u1", created.ID, "X")
	require.NoError(t, err)
	_, err = env.booklists.AddBook(ctx, "u1", created.ID, "Y")
	require.NoError(t, err)

	updated, err := env.booklists.RemoveBook(ctx, "u1", created.ID, "X")
	require.NoError(t, err)
	require.Len(t, updated.Books, 1)
	assert.Equal(t, "Y", updated.Books[0].Asin)
	assert.Equal(t, 1, updated.BookCount)

	_, err = env.booklists.RemoveBook(ctx, "u1", created.ID, "X")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBooklistBooks_DefensiveCopy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedBook(t, env, domain.Book{Asin: "X", Title: "T", Author: "A"})
	created, err := env.booklists.CreateBooklist(ctx, "u1", "Mine", nil)
	require.NoError(t, err)
	_, err = env.booklists.AddBook(ctx, "u1", created.ID, "X")
	require.NoError(t, err)

	books, err := env.booklists.BooklistBooks(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)

	books[0].Title = "mutated"

	stored, err := env.booklists.GetBooklist(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", stored.Books[0].Title)
}
