// Package store defines the persistence capability for receipt records.
// Concrete backends live in subpackages and are selected once at startup by
// the backend factory; handlers only ever see this interface.
package store

import (
	"context"

	"comprobantes/internal/core"
)

// RecordStore is the single capability interface over all record backends.
type RecordStore interface {
	// Create inserts one record and returns the store-assigned id.
	Create(ctx context.Context, rec core.Record) (int64, error)

	// List returns all records matching the filter, ordered by date
	// descending. Relative order among records sharing the same date text
	// is backing-dependent and not part of the contract.
	List(ctx context.Context, f core.Filter) ([]core.Record, error)

	// Delete removes the record if present and reports whether it existed.
	// It never touches the blob store; the associated image is left behind.
	Delete(ctx context.Context, id int64) (bool, error)

	Close() error
}
