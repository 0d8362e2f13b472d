package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/booktrackapp/booktrack-server/internal/http/response"
)

// CreateBooklistRequest represents the request body for creating a booklist.
type CreateBooklistRequest struct {
	Name string   `json:"name" validate:"required,attrvalue"`
	Tags []string `json:"tags"`
}

// RenameBooklistRequest represents the request body for renaming a booklist.
type RenameBooklistRequest struct {
	Name string `json:"name" validate:"required,attrvalue"`
}

// AddBookRequest represents the request body for adding a book to a booklist.
// The identifier is either a known asin or a free-text catalog query.
type AddBookRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// handleCreateBooklist creates a new, empty booklist for the customer.
func (s *Server) handleCreateBooklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := getCustomerID(ctx)

	var req CreateBooklistRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	booklist, err := s.booklistService.CreateBooklist(ctx, customerID, req.Name, req.Tags)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, booklist, s.logger)
}

// handleListBooklists returns all booklists owned by the customer.
func (s *Server) handleListBooklists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := getCustomerID(ctx)

	booklists, err := s.booklistService.ListBooklists(ctx, customerID)
	if err != nil {
		s.logger.Error("Failed to list booklists", "error", err, "customer_id", customerID)
		response.InternalError(w, "Failed to retrieve booklists", s.logger)
		return
	}

	response.Success(w, booklists, s.logger)
}

// handleSearchBooklists runs a token search over booklist names and tags.
func (s *Server) handleSearchBooklists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria := r.URL.Query().Get("q")

	booklists, err := s.searchService.SearchBooklists(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to search booklists", "error", err, "criteria", criteria)
		response.InternalError(w, "Failed to search booklists", s.logger)
		return
	}

	response.Success(w, booklists, s.logger)
}

// handleGetBooklist returns a single booklist by ID.
func (s *Server) handleGetBooklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	booklist, err := s.booklistService.GetBooklist(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, booklist, s.logger)
}

// handleRenameBooklist renames a booklist. The owner never changes.
func (s *Server) handleRenameBooklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := getCustomerID(ctx)
	id := chi.URLParam(r, "id")

	var req RenameBooklistRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	booklist, err := s.booklistService.RenameBooklist(ctx, customerID, id, req.Name)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, booklist, s.logger)
}

// handleDeleteBooklist deletes a booklist and returns the removed value.
func (s *Server) handleDeleteBooklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := getCustomerID(ctx)
	id := chi.URLParam(r, "id")

	booklist, err := s.booklistService.DeleteBooklist(ctx, customerID, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, booklist, s.logger)
}

// handleAddBookToBooklist resolves an identifier and appends the book.
func (s *Server) handleAddBookToBooklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := getCustomerID(ctx)
	id := chi.URLParam(r, "id")

	var req AddBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	booklist, err := s.booklistService.AddBook(ctx, customerID, id, req.Identifier)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, booklist, s.logger)
}

// handleRemoveBookFromBooklist removes the first embedded copy with the asin.
func (s *Server) handleRemoveBookFromBooklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := getCustomerID(ctx)
	id := chi.URLParam(r, "id")
	asin := chi.URLParam(r, "asin")

	booklist, err := s.booklistService.RemoveBook(ctx, customerID, id, asin)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, booklist, s.logger)
}

// handleGetBooklistBooks returns the embedded books of a booklist.
func (s *Server) handleGetBooklistBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	books, err := s.booklistService.BooklistBooks(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"booklist_id": id,
		"books":       books,
	}, s.logger)
}
