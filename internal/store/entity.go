package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"iter"

	"github.com/dgraph-io/badger/v4"

	apperrors "github.com/booktrackapp/booktrack-server/internal/errors"
)

// Entity provides generic persistence operations for one record type under
// a key prefix.
type Entity[T any] struct {
	store  *Store
	prefix string
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix string) *Entity[T] {
	return &Entity[T]{store: s, prefix: prefix}
}

// Get retrieves a record by key.
// Returns an error matching apperrors.ErrNotFound if the record does not exist.
func (e *Entity[T]) Get(ctx context.Context, key string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(e.prefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Put stores a record under the given key, creating or replacing it (upsert).
func (e *Entity[T]) Put(ctx context.Context, key string, record *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(e.prefix+key), data)
	})
}

// Delete removes a record by key.
// Idempotent: deleting a missing key is not an error.
func (e *Entity[T]) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(e.prefix + key))
	})
}

// List returns an iterator over all records under the prefix, in key order.
// Transaction failures surface through the iterator like per-item errors,
// so a consumer never mistakes a broken database for an empty prefix.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		yielded := false
		err := e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(e.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
				if ctx.Err() != nil {
					yielded = true
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				var record T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &record)
				})
				if err != nil {
					yielded = true
					yield(nil, err)
					return err
				}

				if !yield(&record, nil) {
					return nil // Consumer stopped early
				}
			}

			return nil
		})
		if err != nil && !yielded {
			yield(nil, err)
		}
	}
}

// Scan materializes every record satisfying keep. A nil keep returns the
// full set. Scans are finite and unpaginated; callers get the whole result.
func (e *Entity[T]) Scan(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	var records []*T
	for record, err := range e.List(ctx) {
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(record) {
			records = append(records, record)
		}
	}
	return records, nil
}
