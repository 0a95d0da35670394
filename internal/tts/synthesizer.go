package tts

import "context"

// Synthesizer abstracts the text-to-speech provider. Synthesize returns
// raw compressed audio bytes; transport encoding is the caller's concern.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
