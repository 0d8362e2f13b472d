package api

import (
	"context"
	"net/http"

	"github.com/booktrackapp/booktrack-server/internal/http/response"
)

// customerHeader carries the caller's identity. Authentication itself lives
// in front of this service; only the resolved identity reaches us.
const customerHeader = "X-Customer-ID"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyCustomerID contextKey = "customer_id"

// customerContext attaches the caller's customer ID to the request context
// when the identity header is present. It never rejects; requireCustomer does.
func (s *Server) customerContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if customerID := r.Header.Get(customerHeader); customerID != "" {
			ctx := context.WithValue(r.Context(), contextKeyCustomerID, customerID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// requireCustomer is middleware that rejects requests without a customer identity.
func (s *Server) requireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if getCustomerID(r.Context()) == "" {
			response.Unauthorized(w, "Missing customer identity", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getCustomerID extracts the customer ID from request context.
// Returns empty string if no identity was provided.
func getCustomerID(ctx context.Context) string {
	if customerID, ok := ctx.Value(contextKeyCustomerID).(string); ok {
		return customerID
	}
	return ""
}
