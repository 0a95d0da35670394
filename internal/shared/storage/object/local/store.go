package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sentiment-backend/internal/shared/storage/object"
	"sentiment-backend/internal/shared/util"
)

// Store implements BlobStore using the local filesystem.
type Store struct {
	baseDir string
}

// New creates a new local blob store rooted at baseDir.
func New(baseDir string) object.BlobStore {
	return &Store{baseDir: baseDir}
}

// Save writes the reader to disk under the given name.
func (s *Store) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	sanitized, err := util.SanitizeFileName(name)
	if err != nil {
		return 0, fmt.Errorf("sanitize file name: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(s.baseDir, sanitized)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("write body: %w", err)
	}
	return written, nil
}

// Open opens a stored blob for reading.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sanitized, err := util.SanitizeFileName(name)
	if err != nil {
		return nil, fmt.Errorf("sanitize file name: %w", err)
	}

	f, err := os.Open(filepath.Join(s.baseDir, sanitized))
	if err != nil {
		return nil, err
	}
	return f, nil
}
