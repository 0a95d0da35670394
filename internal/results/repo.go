package results

import "context"

// Repo defines persistence operations for analysis results.
//
// Put assigns a fresh identifier when the record carries none and returns
// the identifier the record was stored under. Get returns ErrNotFound for
// an unknown identifier and ErrCorruptData when the stored payload cannot
// be parsed.
type Repo interface {
	Put(ctx context.Context, result AnalysisResult) (string, error)
	Get(ctx context.Context, id string) (AnalysisResult, error)
}
