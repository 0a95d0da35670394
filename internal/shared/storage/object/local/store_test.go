package local

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	payload := []byte("opus-webm-bytes")
	n, err := store.Save(ctx, "blob.webm", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != int64(len(payload)) {
		t.Fatalf("expected %d bytes written, got %d", len(payload), n)
	}

	rc, err := store.Open(ctx, "blob.webm")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("expected %q, got %q", payload, got)
	}
}

func TestSaveRejectsTraversalNames(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	if _, err := store.Save(context.Background(), "../escape.webm", bytes.NewReader([]byte("x"))); err == nil {
		t.Fatalf("expected error for traversal name")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.webm")); !os.IsNotExist(err) {
		t.Fatalf("expected no file outside base dir")
	}
}

func TestOpenMissingBlob(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "missing.webm"); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
