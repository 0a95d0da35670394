package speech

import (
	"context"
	"errors"
)

// ErrNoSpeech indicates recognition succeeded but produced zero results.
// Distinct from transport or service failures.
var ErrNoSpeech = errors.New("no speech detected")

// Recognizer abstracts the speech-to-text provider. The audio is expected
// to be Opus-in-WebM at 48 kHz; no format detection is performed.
type Recognizer interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}
