package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileRepo stores one JSON file per result under a single directory.
type FileRepo struct {
	dir string
}

// NewFileRepo creates the results directory if absent and returns a repo
// rooted there.
func NewFileRepo(dir string) (*FileRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	return &FileRepo{dir: dir}, nil
}

// Put serializes the result to <id>.json. O_EXCL makes an identifier
// collision surface as an error instead of a silent overwrite.
func (r *FileRepo) Put(ctx context.Context, result AnalysisResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if result.ID == "" {
		result.ID = uuid.NewString()
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	f, err := os.OpenFile(r.path(result.ID), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create result file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write result file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close result file: %w", err)
	}
	return result.ID, nil
}

// Get reads and parses the record for the given identifier.
func (r *FileRepo) Get(ctx context.Context, id string) (AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return AnalysisResult{}, err
	}
	if !validID(id) {
		return AnalysisResult{}, ErrNotFound
	}

	data, err := os.ReadFile(r.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return AnalysisResult{}, ErrNotFound
		}
		return AnalysisResult{}, fmt.Errorf("read result file: %w", err)
	}

	var result AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return result, nil
}

func (r *FileRepo) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

// validID rejects identifiers that could escape the results directory.
func validID(id string) bool {
	if id == "" || strings.Contains(id, "..") {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
