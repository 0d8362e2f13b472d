package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/booktrackapp/booktrack-server/internal/domain"
	"github.com/booktrackapp/booktrack-server/internal/store"
)

// Propagator keeps embedded book copies inside booklists from diverging
// from the canonical book after an update.
//
// Propagation runs inline during the update request: the caller's response
// is delayed until every affected booklist has been rewritten. There is no
// background worker and no cross-list transaction; a crash mid-fanout
// leaves untouched lists stale until the same update is applied again.
type Propagator struct {
	store  *store.Store
	logger *slog.Logger
}

// NewPropagator creates a new propagator.
func NewPropagator(store *store.Store, logger *slog.Logger) *Propagator {
	return &Propagator{
		store:  store,
		logger: logger,
	}
}

// PropagateBookUpdate rewrites every embedded copy of original with updated
// across the customer's booklists, preserving positions and book counts.
// Returns the number of booklists rewritten.
//
// Idempotent: copies already carrying the updated value are skipped, so a
// second pass with the same (original, updated) pair writes nothing.
func (p *Propagator) PropagateBookUpdate(ctx context.Context, customerID string, original, updated *domain.Book) (int, error) {
	booklists, err := p.store.Booklists.Scan(ctx, func(l *domain.Booklist) bool {
		return l.CustomerID == customerID
	})
	if err != nil {
		return 0, fmt.Errorf("scan booklists: %w", err)
	}

	rewritten := 0
	for _, booklist := range booklists {
		replaced := booklist.ReplaceBook(original, updated)
		if replaced == 0 {
			continue
		}

		booklist.UpdatedAt = time.Now().UTC()
		if err := p.store.Booklists.Put(ctx, booklist.ID, booklist); err != nil {
			return rewritten, fmt.Errorf("save booklist %s: %w", booklist.ID, err)
		}
		rewritten++

		p.logger.Info("propagated book update to booklist",
			"booklist_id", booklist.ID,
			"customer_id", customerID,
			"asin", updated.Asin,
			"copies_replaced", replaced,
		)
	}

	return rewritten, nil
}
