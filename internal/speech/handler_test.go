package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeRecognizer struct {
	transcript string
	err        error
}

func (f *fakeRecognizer) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

type memoryBlobs struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{blobs: make(map[string][]byte)}
}

func (m *memoryBlobs) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = data
	return int64(len(data)), nil
}

func (m *memoryBlobs) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryBlobs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}

func setupRouter(t *testing.T, recognizer Recognizer, blobs *memoryBlobs) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHandler(recognizer, blobs).RegisterRoutes(router)
	return router
}

func uploadAudio(t *testing.T, router *gin.Engine, fileName string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/speech-to-text", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSpeechToTextTranscribesAndStoresBlob(t *testing.T) {
	blobs := newMemoryBlobs()
	router := setupRouter(t, &fakeRecognizer{transcript: "hello there"}, blobs)

	audio := []byte("webm-opus-bytes")
	resp := uploadAudio(t, router, "clip.webm", audio)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Transcript    string `json:"transcript"`
		AudioFilename string `json:"audio_filename"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Transcript != "hello there" {
		t.Fatalf("expected transcript, got %q", body.Transcript)
	}
	if !strings.HasSuffix(body.AudioFilename, ".webm") {
		t.Fatalf("expected .webm audio filename, got %q", body.AudioFilename)
	}

	rc, err := blobs.Open(context.Background(), body.AudioFilename)
	if err != nil {
		t.Fatalf("expected stored blob: %v", err)
	}
	defer rc.Close()
	stored, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read stored blob: %v", err)
	}
	if !bytes.Equal(stored, audio) {
		t.Fatalf("stored blob mismatch")
	}
}

func TestSpeechToTextRejectsMissingFile(t *testing.T) {
	blobs := newMemoryBlobs()
	router := setupRouter(t, &fakeRecognizer{transcript: "ignored"}, blobs)

	req := httptest.NewRequest(http.MethodPost, "/speech-to-text", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	assertErrorBody(t, resp, "No file part")
	if blobs.count() != 0 {
		t.Fatalf("expected no stored blobs")
	}
}

func TestSpeechToTextRejectsEmptyFile(t *testing.T) {
	blobs := newMemoryBlobs()
	router := setupRouter(t, &fakeRecognizer{transcript: "ignored"}, blobs)

	resp := uploadAudio(t, router, "empty.webm", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	assertErrorBody(t, resp, "No selected file")
	if blobs.count() != 0 {
		t.Fatalf("expected no stored blobs")
	}
}

func TestSpeechToTextNoSpeechDetected(t *testing.T) {
	blobs := newMemoryBlobs()
	router := setupRouter(t, &fakeRecognizer{err: ErrNoSpeech}, blobs)

	resp := uploadAudio(t, router, "silence.webm", []byte("silent-audio"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	assertErrorBody(t, resp, "No speech detected")

	// A failed recognition must leave no blob behind.
	if blobs.count() != 0 {
		t.Fatalf("expected no stored blobs after no-speech, got %d", blobs.count())
	}
}

func TestSpeechToTextServiceFailure(t *testing.T) {
	blobs := newMemoryBlobs()
	router := setupRouter(t, &fakeRecognizer{err: errors.New("recognition backend down")}, blobs)

	resp := uploadAudio(t, router, "clip.webm", []byte("audio"))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	assertErrorBody(t, resp, "recognition backend down")
	if blobs.count() != 0 {
		t.Fatalf("expected no stored blobs after failure")
	}
}

func assertErrorBody(t *testing.T, resp *httptest.ResponseRecorder, want string) {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != want {
		t.Fatalf("expected error %q, got %q", want, body.Error)
	}
}
