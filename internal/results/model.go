package results

// AnalysisResult is one persisted sentiment analysis record. Records are
// created once when an analysis completes and never mutated afterwards.
type AnalysisResult struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Sentiment     Sentiment `json:"sentiment"`
	Score         float64   `json:"score"`
	Magnitude     float64   `json:"magnitude"`
	AudioFilename string    `json:"audio_filename,omitempty"`
}
