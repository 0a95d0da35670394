package googlestt

import (
	"context"
	"encoding/base64"

	"sentiment-backend/internal/gcloud"
	"sentiment-backend/internal/speech"
)

const defaultBaseURL = "https://speech.googleapis.com/v1"

// Recognition config is fixed: Opus-in-WebM at 48 kHz, US English.
const (
	encoding        = "WEBM_OPUS"
	sampleRateHertz = 48000
	languageCode    = "en-US"
)

// Client implements speech.Recognizer using the Google Cloud Speech-to-Text
// REST API.
type Client struct {
	REST    *gcloud.Client
	BaseURL string
}

// NewClient constructs a Speech-to-Text client over the shared transport.
func NewClient(rest *gcloud.Client) *Client {
	return &Client{REST: rest, BaseURL: defaultBaseURL}
}

type recognitionConfig struct {
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
	LanguageCode    string `json:"languageCode"`
}

type recognitionAudio struct {
	Content string `json:"content"`
}

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  recognitionAudio  `json:"audio"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe returns the top alternative of the first recognition result.
// Zero results map to speech.ErrNoSpeech.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	req := recognizeRequest{
		Config: recognitionConfig{
			Encoding:        encoding,
			SampleRateHertz: sampleRateHertz,
			LanguageCode:    languageCode,
		},
		Audio: recognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}

	var resp recognizeResponse
	if err := c.REST.PostJSON(ctx, c.BaseURL+"/speech:recognize", req, &resp); err != nil {
		return "", err
	}

	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return "", speech.ErrNoSpeech
	}
	return resp.Results[0].Alternatives[0].Transcript, nil
}
