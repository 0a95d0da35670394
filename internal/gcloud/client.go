package gcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// APIError is a non-2xx response from a Google Cloud REST endpoint.
// It carries the upstream message so handlers can surface it verbatim.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("google api: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("google api: http %d: %s", e.StatusCode, e.Message)
}

// Client is a thin JSON-over-HTTP transport shared by the Google Cloud
// service adapters. Authentication is either an OAuth token source built
// from service-account credentials or an API key query parameter.
type Client struct {
	httpClient *http.Client
	apiKey     string
}

// NewClient builds a transport from the credentials file path and/or API key.
// With neither set it falls back to application default credentials.
func NewClient(ctx context.Context, credsFile, apiKey string) (*Client, error) {
	timeout := requestTimeout()

	if strings.TrimSpace(credsFile) != "" {
		data, err := os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("parse credentials: %w", err)
		}
		httpClient := oauth2.NewClient(ctx, creds.TokenSource)
		httpClient.Timeout = timeout
		return &Client{httpClient: httpClient}, nil
	}

	if strings.TrimSpace(apiKey) != "" {
		return &Client{
			httpClient: &http.Client{Timeout: timeout},
			apiKey:     strings.TrimSpace(apiKey),
		}, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("google credentials are not configured: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_API_KEY: %w", err)
	}
	httpClient := oauth2.NewClient(ctx, creds.TokenSource)
	httpClient.Timeout = timeout
	return &Client{httpClient: httpClient}, nil
}

// NewWithHTTPClient wraps an existing HTTP client. Used by adapter tests.
func NewWithHTTPClient(h *http.Client) *Client {
	return &Client{httpClient: h}
}

// PostJSON sends reqBody as JSON to endpoint and decodes the response into
// respBody. Non-2xx responses are returned as *APIError.
func (c *Client) PostJSON(ctx context.Context, endpoint string, reqBody, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	if c.apiKey != "" {
		endpoint, err = appendKey(endpoint, c.apiKey)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("google api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseAPIError decodes the standard Google error envelope
// {"error": {"code": ..., "message": ..., "status": ...}}.
func parseAPIError(statusCode int, body []byte) *APIError {
	var envelope struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Status:     envelope.Error.Status,
			Message:    envelope.Error.Message,
		}
	}

	message := strings.TrimSpace(string(body))
	if len(message) > 512 {
		message = message[:512]
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

func appendKey(endpoint, key string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func requestTimeout() time.Duration {
	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GOOGLE_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return timeout
}
