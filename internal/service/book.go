package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/booktrackapp/booktrack-server/internal/domain"
	apperrors "github.com/booktrackapp/booktrack-server/internal/errors"
	"github.com/booktrackapp/booktrack-server/internal/store"
)

// BookService owns canonical book reads and partial updates, fanning
// updates out to embedded copies via the propagator.
type BookService struct {
	store      *store.Store
	propagator *Propagator
	logger     *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, propagator *Propagator, logger *slog.Logger) *BookService {
	return &BookService{
		store:      store,
		propagator: propagator,
		logger:     logger,
	}
}

// GetBook retrieves the canonical book by asin.
func (s *BookService) GetBook(ctx context.Context, asin string) (*domain.Book, error) {
	book, err := s.store.Books.Get(ctx, asin)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("could not find book with asin %s", asin)
		}
		return nil, err
	}
	return book, nil
}

// UpdateBook applies a partial update to the canonical book and rewrites
// every stale embedded copy across the customer's booklists.
//
// Fields absent from the patch are left untouched, never zeroed; an empty
// patch is a no-op that still returns the current book.
func (s *BookService) UpdateBook(ctx context.Context, customerID, asin string, patch domain.BookPatch) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored, err := s.GetBook(ctx, asin)
	if err != nil {
		return nil, err
	}

	original := stored.Clone()
	updated := stored.Clone()
	patch.Apply(&updated)

	if err := s.store.Books.Put(ctx, asin, &updated); err != nil {
		return nil, fmt.Errorf("save book: %w", err)
	}

	rewritten, err := s.propagator.PropagateBookUpdate(ctx, customerID, &original, &updated)
	if err != nil {
		return nil, fmt.Errorf("propagate book update: %w", err)
	}

	s.logger.Info("book updated",
		"asin", asin,
		"customer_id", customerID,
		"booklists_rewritten", rewritten,
	)

	return &updated, nil
}
