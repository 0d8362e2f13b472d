// Package api provides the HTTP API server and handlers for the BookTrack application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/booktrackapp/booktrack-server/internal/http/response"
	"github.com/booktrackapp/booktrack-server/internal/service"
	"github.com/booktrackapp/booktrack-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	booklistService *service.BooklistService
	bookService     *service.BookService
	searchService   *service.SearchService
	validator       *validation.Validator
	router          *chi.Mux
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(booklistService *service.BooklistService, bookService *service.BookService, searchService *service.SearchService, logger *slog.Logger) *Server {
	s := &Server{
		booklistService: booklistService,
		bookService:     bookService,
		searchService:   searchService,
		validator:       validation.New(),
		router:          chi.NewRouter(),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", customerHeader},
		MaxAge:         300,
	}))
	s.router.Use(s.customerContext)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Booklists (require a customer identity).
		r.Route("/booklists", func(r chi.Router) {
			r.Use(s.requireCustomer)
			r.Post("/", s.handleCreateBooklist)
			r.Get("/", s.handleListBooklists)
			r.Get("/search", s.handleSearchBooklists)
			r.Get("/{id}", s.handleGetBooklist)
			r.Patch("/{id}", s.handleRenameBooklist)
			r.Delete("/{id}", s.handleDeleteBooklist)
			r.Post("/{id}/books", s.handleAddBookToBooklist)
			r.Delete("/{id}/books/{asin}", s.handleRemoveBookFromBooklist)
			r.Get("/{id}/books", s.handleGetBooklistBooks)
		})

		// Books.
		r.Route("/books", func(r chi.Router) {
			r.Get("/search", s.handleSearchBooks)
			r.Get("/currently-reading", s.handleCurrentlyReading)
			r.Get("/{asin}", s.handleGetBook)
			r.With(s.requireCustomer).Patch("/{asin}", s.handleUpdateBook)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
