package service

import (
	"context"
	"log/slog"

	"github.com/booktrackapp/booktrack-server/internal/domain"
	"github.com/booktrackapp/booktrack-server/internal/match"
	"github.com/booktrackapp/booktrack-server/internal/store"
)

// currentlyReadingName labels the synthetic result of CurrentlyReading.
const currentlyReadingName = "Currently Reading"

// SearchService answers free-text queries over booklists and books by
// building match predicates over each record's searchable fields.
type SearchService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		logger: logger,
	}
}

// SearchBooklists returns booklists whose name or tags satisfy every
// criteria token. Empty criteria returns the full scan.
func (s *SearchService) SearchBooklists(ctx context.Context, criteria string) ([]*domain.Booklist, error) {
	tokens := match.Tokenize(criteria)

	return s.store.Booklists.Scan(ctx, func(l *domain.Booklist) bool {
		return match.Match(tokens, append([]string{l.Name}, l.Tags...)...)
	})
}

// SearchBooks returns books whose title or asin satisfy every criteria
// token. Empty criteria returns the full scan.
func (s *SearchService) SearchBooks(ctx context.Context, criteria string) ([]*domain.Book, error) {
	tokens := match.Tokenize(criteria)

	return s.store.Books.Scan(ctx, func(b *domain.Book) bool {
		return match.Match(tokens, b.Title, b.Asin)
	})
}

// CurrentlyReading returns every book flagged as currently reading,
// wrapped in a synthetic, unpersisted booklist labeled accordingly.
func (s *SearchService) CurrentlyReading(ctx context.Context) (*domain.Booklist, error) {
	books, err := s.store.Books.Scan(ctx, func(b *domain.Book) bool {
		return b.IsCurrentlyReading()
	})
	if err != nil {
		return nil, err
	}

	result := &domain.Booklist{
		Name:  currentlyReadingName,
		Books: make([]domain.Book, 0, len(books)),
	}
	for _, b := range books {
		result.Books = append(result.Books, b.Clone())
	}
	result.BookCount = len(result.Books)

	return result, nil
}
