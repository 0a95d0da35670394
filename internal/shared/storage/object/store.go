package object

import (
	"context"
	"io"
)

// BlobStore defines the contract for saving and retrieving binary blobs,
// such as the raw audio uploaded to speech-to-text. Blobs are addressed by
// a caller-chosen name; callers are responsible for picking unique names.
type BlobStore interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
