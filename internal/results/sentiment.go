package results

// Sentiment is the discrete label derived from a polarity score.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Classify maps a polarity score onto the three sentiment buckets.
// The comparisons are strict, so scores at exactly ±0.25 are Neutral.
func Classify(score float64) Sentiment {
	switch {
	case score > 0.25:
		return SentimentPositive
	case score < -0.25:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
