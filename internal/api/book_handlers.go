package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/booktrackapp/booktrack-server/internal/domain"
	"github.com/booktrackapp/booktrack-server/internal/http/response"
)

// UpdateBookRequest represents a partial update to a canonical book.
// Nil fields are left untouched; only present fields are applied.
type UpdateBookRequest struct {
	Rating           *int  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	CurrentlyReading *bool `json:"currently_reading"`
	PercentComplete  *int  `json:"percent_complete" validate:"omitempty,gte=0,lte=100"`
}

// handleSearchBooks runs a token search over book titles and asins.
func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria := r.URL.Query().Get("q")

	books, err := s.searchService.SearchBooks(ctx, criteria)
	if err != nil {
		s.logger.Error("Failed to search books", "error", err, "criteria", criteria)
		response.InternalError(w, "Failed to search books", s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleCurrentlyReading returns the synthetic currently-reading booklist.
func (s *Server) handleCurrentlyReading(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	booklist, err := s.searchService.CurrentlyReading(ctx)
	if err != nil {
		s.logger.Error("Failed to get currently reading books", "error", err)
		response.InternalError(w, "Failed to retrieve currently reading books", s.logger)
		return
	}

	response.Success(w, booklist, s.logger)
}

// handleGetBook returns the canonical book by asin.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	asin := chi.URLParam(r, "asin")

	book, err := s.bookService.GetBook(ctx, asin)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleUpdateBook applies a partial update to the canonical book and
// rewrites stale embedded copies across the customer's booklists.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := getCustomerID(ctx)
	asin := chi.URLParam(r, "asin")

	var req UpdateBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	book, err := s.bookService.UpdateBook(ctx, customerID, asin, domain.BookPatch{
		Rating:           req.Rating,
		CurrentlyReading: req.CurrentlyReading,
		PercentComplete:  req.PercentComplete,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}
