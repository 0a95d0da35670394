package googlenl

import (
	"context"

	"sentiment-backend/internal/gcloud"
	"sentiment-backend/internal/nlp"
)

const defaultBaseURL = "https://language.googleapis.com/v1"

// Client implements nlp.Client using the Google Cloud Natural Language
// REST API.
type Client struct {
	REST    *gcloud.Client
	BaseURL string
}

// NewClient constructs a Natural Language client over the shared transport.
func NewClient(rest *gcloud.Client) *Client {
	return &Client{REST: rest, BaseURL: defaultBaseURL}
}

type document struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type analyzeRequest struct {
	Document     document `json:"document"`
	EncodingType string   `json:"encodingType"`
}

type sentimentPayload struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

type analyzeResponse struct {
	DocumentSentiment sentimentPayload `json:"documentSentiment"`
}

// AnalyzeSentiment scores the text as a plain-text document.
func (c *Client) AnalyzeSentiment(ctx context.Context, text string) (nlp.Sentiment, error) {
	req := analyzeRequest{
		Document: document{
			Type:    "PLAIN_TEXT",
			Content: text,
		},
		EncodingType: "UTF8",
	}

	var resp analyzeResponse
	if err := c.REST.PostJSON(ctx, c.BaseURL+"/documents:analyzeSentiment", req, &resp); err != nil {
		return nlp.Sentiment{}, err
	}

	return nlp.Sentiment{
		Score:     resp.DocumentSentiment.Score,
		Magnitude: resp.DocumentSentiment.Magnitude,
	}, nil
}
