package googletts

import (
	"context"
	"encoding/base64"
	"fmt"

	"sentiment-backend/internal/gcloud"
)

const defaultBaseURL = "https://texttospeech.googleapis.com/v1"

// Voice and audio defaults are fixed: a neutral en-US voice producing MP3.
const (
	languageCode  = "en-US"
	ssmlGender    = "NEUTRAL"
	audioEncoding = "MP3"
)

// Client implements tts.Synthesizer using the Google Cloud Text-to-Speech
// REST API.
type Client struct {
	REST    *gcloud.Client
	BaseURL string
}

// NewClient constructs a Text-to-Speech client over the shared transport.
func NewClient(rest *gcloud.Client) *Client {
	return &Client{REST: rest, BaseURL: defaultBaseURL}
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	SSMLGender   string `json:"ssmlGender"`
}

type audioConfig struct {
	AudioEncoding string `json:"audioEncoding"`
}

type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceSelection `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize converts text to MP3 audio bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := synthesizeRequest{
		Input: synthesisInput{Text: text},
		Voice: voiceSelection{
			LanguageCode: languageCode,
			SSMLGender:   ssmlGender,
		},
		AudioConfig: audioConfig{AudioEncoding: audioEncoding},
	}

	var resp synthesizeResponse
	if err := c.REST.PostJSON(ctx, c.BaseURL+"/text:synthesize", req, &resp); err != nil {
		return nil, err
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}
	return audio, nil
}
