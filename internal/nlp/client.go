package nlp

import "context"

// Sentiment is the document-level sentiment produced by the analysis
// service. Score is polarity in roughly [-1, 1]; Magnitude is non-negative
// overall emotional intensity, independent of polarity.
type Sentiment struct {
	Score     float64
	Magnitude float64
}

// Client abstracts the document sentiment analysis provider.
type Client interface {
	AnalyzeSentiment(ctx context.Context, text string) (Sentiment, error)
}
