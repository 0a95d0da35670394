package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeSynthesizer struct {
	audio []byte
	err   error
	calls int
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func setupRouter(t *testing.T, synth Synthesizer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHandler(synth).RegisterRoutes(router)
	return router
}

func postForm(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/text-to-speech", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestTextToSpeechReturnsBase64Audio(t *testing.T) {
	audio := []byte{0xFF, 0xF3, 0x00, 0x01}
	router := setupRouter(t, &fakeSynthesizer{audio: audio})

	resp := postForm(router, url.Values{"text": {"hello world"}})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Audio string `json:"audio"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(body.Audio)
	if err != nil {
		t.Fatalf("audio is not valid base64: %v", err)
	}
	if string(decoded) != string(audio) {
		t.Fatalf("expected original audio bytes after decode")
	}
}

func TestTextToSpeechRejectsEmptyText(t *testing.T) {
	fake := &fakeSynthesizer{audio: []byte("x")}
	router := setupRouter(t, fake)

	for _, form := range []url.Values{{}, {"text": {""}}, {"text": {"  "}}} {
		resp := postForm(router, form)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.Code)
		}
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode error body: %v", err)
		}
		if body.Error != "No text provided" {
			t.Fatalf("expected error message, got %q", body.Error)
		}
	}

	if fake.calls != 0 {
		t.Fatalf("expected synthesizer untouched for empty input, got %d calls", fake.calls)
	}
}

func TestTextToSpeechAdapterFailure(t *testing.T) {
	router := setupRouter(t, &fakeSynthesizer{err: errors.New("synthesis backend down")})

	resp := postForm(router, url.Values{"text": {"hello"}})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != "synthesis backend down" {
		t.Fatalf("expected upstream message, got %q", body.Error)
	}
}
