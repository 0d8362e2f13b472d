// Package service provides the business logic layer for booklists, books,
// and the consistency propagation between them.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/booktrackapp/booktrack-server/internal/domain"
	apperrors "github.com/booktrackapp/booktrack-server/internal/errors"
	"github.com/booktrackapp/booktrack-server/internal/id"
	"github.com/booktrackapp/booktrack-server/internal/store"
	"github.com/booktrackapp/booktrack-server/internal/validation"
)

// CatalogLookup resolves a free-text term against an external book catalog.
// Used only when an add-book identifier does not match a stored book.
type CatalogLookup interface {
	Search(ctx context.Context, query string) (*domain.Book, error)
}

// BooklistService orchestrates booklist mutations with ownership enforcement.
type BooklistService struct {
	store   *store.Store
	catalog CatalogLookup
	logger  *slog.Logger
}

// NewBooklistService creates a new booklist service.
func NewBooklistService(store *store.Store, catalog CatalogLookup, logger *slog.Logger) *BooklistService {
	return &BooklistService{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// CreateBooklist creates a new, empty booklist owned by the customer.
func (s *BooklistService) CreateBooklist(ctx context.Context, customerID, name string, tags []string) (*domain.Booklist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !validation.ValidAttribute(name) {
		return nil, apperrors.InvalidAttributef("booklist name %q contains illegal characters", name)
	}
	if !validation.ValidAttribute(customerID) {
		return nil, apperrors.InvalidAttributef("customer ID %q contains illegal characters", customerID)
	}

	listID, err := id.Generate("list")
	if err != nil {
		return nil, fmt.Errorf("generate booklist ID: %w", err)
	}

	now := time.Now().UTC()
	booklist := &domain.Booklist{
		CreatedAt:  now,
		UpdatedAt:  now,
		ID:         listID,
		Name:       name,
		CustomerID: customerID,
		Tags:       domain.NormalizeTags(tags),
		Books:      []domain.Book{},
		BookCount:  0,
	}

	if err := s.store.Booklists.Put(ctx, booklist.ID, booklist); err != nil {
		return nil, fmt.Errorf("save booklist: %w", err)
	}

	s.logger.Info("booklist created",
		"booklist_id", listID,
		"customer_id", customerID,
		"name", name,
	)

	return booklist, nil
}

// GetBooklist retrieves a booklist by ID.
func (s *BooklistService) GetBooklist(ctx context.Context, listID string) (*domain.Booklist, error) {
	booklist, err := s.store.Booklists.Get(ctx, listID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("could not find booklist with id %s", listID)
		}
		return nil, err
	}
	return booklist, nil
}

// ListBooklists returns all booklists owned by the customer, in scan order.
func (s *BooklistService) ListBooklists(ctx context.Context, customerID string) ([]*domain.Booklist, error) {
	return s.store.Booklists.Scan(ctx, func(l *domain.Booklist) bool {
		return l.CustomerID == customerID
	})
}

// RenameBooklist changes a booklist's name. The owner never changes.
func (s *BooklistService) RenameBooklist(ctx context.Context, customerID, listID, newName string) (*domain.Booklist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !validation.ValidAttribute(newName) {
		return nil, apperrors.InvalidAttributef("booklist name %q contains illegal characters", newName)
	}

	booklist, err := s.GetBooklist(ctx, listID)
	if err != nil {
		return nil, err
	}
	if booklist.CustomerID != customerID {
		return nil, apperrors.Unauthorized("you must own a booklist to update it")
	}

	booklist.Name = newName
	booklist.UpdatedAt = time.Now().UTC()

	if err := s.store.Booklists.Put(ctx, booklist.ID, booklist); err != nil {
		return nil, fmt.Errorf("save booklist: %w", err)
	}

	s.logger.Info("booklist renamed",
		"booklist_id", listID,
		"customer_id", customerID,
		"new_name", newName,
	)

	return booklist, nil
}

// DeleteBooklist hard-deletes a booklist and returns the pre-delete value.
func (s *BooklistService) DeleteBooklist(ctx context.Context, customerID, listID string) (*domain.Booklist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	booklist, err := s.GetBooklist(ctx, listID)
	if err != nil {
		return nil, err
	}
	if booklist.CustomerID != customerID {
		return nil, apperrors.Unauthorized("you must own a booklist to delete it")
	}

	if err := s.store.Booklists.Delete(ctx, listID); err != nil {
		return nil, fmt.Errorf("delete booklist: %w", err)
	}

	s.logger.Info("booklist deleted",
		"booklist_id", listID,
		"customer_id", customerID,
	)

	return booklist, nil
}

// AddBook resolves an identifier to a canonical book and appends an embedded
// copy to the end of the booklist.
//
// Resolution order: an exact match on a stored book's asin wins; otherwise
// the identifier is treated as a free-text catalog lookup and the first
// result is persisted as a new canonical book.
func (s *BooklistService) AddBook(ctx context.Context, customerID, listID, identifier string) (*domain.Booklist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	booklist, err := s.GetBooklist(ctx, listID)
	if err != nil {
		return nil, err
	}
	if booklist.CustomerID != customerID {
		return nil, apperrors.Unauthorized("you must own a booklist to add books to it")
	}

	book, err := s.resolveBook(ctx, identifier)
	if err != nil {
		return nil, err
	}

	booklist.AddBook(*book)
	booklist.UpdatedAt = time.Now().UTC()

	if err := s.store.Booklists.Put(ctx, booklist.ID, booklist); err != nil {
		return nil, fmt.Errorf("save booklist: %w", err)
	}

	s.logger.Info("book added to booklist",
		"booklist_id", listID,
		"customer_id", customerID,
		"asin", book.Asin,
		"book_count", booklist.BookCount,
	)

	return booklist, nil
}

// resolveBook returns the stored book for an exact asin match, or
// materializes the identifier's first catalog result as a new canonical book.
func (s *BooklistService) resolveBook(ctx context.Context, identifier string) (*domain.Book, error) {
	book, err := s.store.Books.Get(ctx, identifier)
	if err == nil {
		return book, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	book, err = s.catalog.Search(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := s.store.Books.Put(ctx, book.Asin, book); err != nil {
		return nil, fmt.Errorf("save book: %w", err)
	}

	s.logger.Info("book materialized from catalog",
		"identifier", identifier,
		"asin", book.Asin,
		"title", book.Title,
	)

	return book, nil
}

// RemoveBook removes the first embedded book with the given asin.
func (s *BooklistService) RemoveBook(ctx context.Context, customerID, listID, asin string) (*domain.Booklist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	booklist, err := s.GetBooklist(ctx, listID)
	if err != nil {
		return nil, err
	}
	if booklist.CustomerID != customerID {
		return nil, apperrors.Unauthorized("you must own a booklist to remove books from it")
	}

	if !booklist.RemoveBook(asin) {
		return nil, apperrors.NotFoundf("booklist %s does not contain book %s", listID, asin)
	}
	booklist.UpdatedAt = time.Now().UTC()

	if err := s.store.Booklists.Put(ctx, booklist.ID, booklist); err != nil {
		return nil, fmt.Errorf("save booklist: %w", err)
	}

	s.logger.Info("book removed from booklist",
		"booklist_id", listID,
		"customer_id", customerID,
		"asin", asin,
		"book_count", booklist.BookCount,
	)

	return booklist, nil
}

// BooklistBooks returns a defensive copy of a booklist's embedded books.
func (s *BooklistService) BooklistBooks(ctx context.Context, listID string) ([]domain.Book, error) {
	booklist, err := s.GetBooklist(ctx, listID)
	if err != nil {
		return nil, err
	}
	return booklist.CopyBooks(), nil
}
