// Package local stores uploaded images on the filesystem. References are
// "/uploads/<filename>" paths served by the web layer behind the session gate.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory files are written to, for the web layer to
// serve from.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Put(ctx context.Context, filename string, data []byte, mimeType string) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	slog.InfoContext(ctx, "Image stored on local disk", "path", path, "bytes", len(data), "mime", mimeType)
	return "/uploads/" + name, nil
}
