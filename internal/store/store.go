// Package store persists canonical books and booklists in Badger.
//
// Records are JSON values under prefixed keys ("book:<asin>",
// "list:<id>"). Individual reads and writes are serialized by Badger;
// there is no cross-record transaction, matching the scan-and-rewrite
// consistency model of the service layer.
package store

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/booktrackapp/booktrack-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	Books     *Entity[domain.Book]
	Booklists *Entity[domain.Booklist]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.Books = NewEntity[domain.Book](store, "book:")
	store.Booklists = NewEntity[domain.Booklist](store, "list:")

	if logger != nil {
		logger.Info("Badger database opened", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}
