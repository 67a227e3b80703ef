// Package blob defines durable storage for uploaded image bytes. Backends
// return a reference (a local path or an absolute URL) that is stored on the
// record; uploads always complete before a record is created.
package blob

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
)

// Store is the single capability interface over all blob backends.
type Store interface {
	// Put writes the bytes durably and returns the reference to store on
	// the record. A failed Put must leave nothing for the caller to clean
	// up; the caller must not create a record when Put fails.
	Put(ctx context.Context, filename string, data []byte, mimeType string) (string, error)
}

// UniqueName prefixes the original filename with a UUID so concurrent
// uploads of identically named files never collide.
func UniqueName(original string) string {
	base := filepath.Base(original)
	if base == "." || base == "/" || base == "" {
		base = "imagen"
	}
	return uuid.New().String() + "_" + base
}
