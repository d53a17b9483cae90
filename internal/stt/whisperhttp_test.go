package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWhisperHTTPTranscribeChunk(t *testing.T) {
	var gotPath, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLang = r.URL.Query().Get("language")
		json.NewEncoder(w).Encode(map[string]string{"text": " hello "})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	w := NewWhisperHTTP(srv.URL, cfg)
	defer w.Close()

	res, err := w.TranscribeChunk(context.Background(), silentChunk())
	if err != nil {
		t.Fatalf("TranscribeChunk failed: %v", err)
	}
	if res.Text != "hello" {
		t.Errorf("TranscribeChunk() text = %q, want %q", res.Text, "hello")
	}
	if gotPath != "/v1/audio/transcriptions" {
		t.Errorf("request path = %q, want /v1/audio/transcriptions", gotPath)
	}
	if gotLang != cfg.Language {
		t.Errorf("language param = %q, want %q", gotLang, cfg.Language)
	}
}

func TestWhisperHTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := NewWhisperHTTP(srv.URL, DefaultConfig())
	defer w.Close()

	if _, err := w.TranscribeChunk(context.Background(), silentChunk()); err == nil {
		t.Error("TranscribeChunk should fail on a 500 response")
	}
}

func TestWhisperHTTPBlankSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"text": "[BLANK_AUDIO]"})
	}))
	defer srv.Close()

	w := NewWhisperHTTP(srv.URL, DefaultConfig())
	defer w.Close()

	res, err := w.TranscribeChunk(context.Background(), silentChunk())
	if err != nil {
		t.Fatalf("TranscribeChunk failed: %v", err)
	}
	if !res.Empty() {
		t.Errorf("blank sentinel should normalize to empty, got %q", res.Text)
	}
}
