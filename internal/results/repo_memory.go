package results

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo stores results in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]AnalysisResult
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]AnalysisResult)}
}

// Put stores the result.
func (r *MemoryRepo) Put(ctx context.Context, result AnalysisResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[result.ID] = result
	return result.ID, nil
}

// Get returns a result by its ID.
func (r *MemoryRepo) Get(ctx context.Context, id string) (AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return AnalysisResult{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.byID[id]
	if !ok {
		return AnalysisResult{}, ErrNotFound
	}
	return result, nil
}

// Len reports the number of stored results.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
