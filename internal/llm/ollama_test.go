// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     llm
// Description: Tests for the generation client
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Model = "test-model"
	return NewClient(cfg)
}

func TestTranslate(t *testing.T) {
	var gotReq generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("request path = %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "Hallo Welt", Done: true})
	})

	got, err := client.Translate(context.Background(), "hello world", "German")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "Hallo Welt" {
		t.Errorf("Translate() = %q, want %q", got, "Hallo Welt")
	}
	if gotReq.Model != "test-model" {
		t.Errorf("request model = %q, want %q", gotReq.Model, "test-model")
	}
	if gotReq.Stream {
		t.Error("request stream = true, want false")
	}
	if !strings.Contains(gotReq.Prompt, "hello world") {
		t.Errorf("prompt %q does not contain source text", gotReq.Prompt)
	}
	if !strings.Contains(gotReq.Prompt, "German") {
		t.Errorf("prompt %q does not contain target language", gotReq.Prompt)
	}
}

func TestTranslateEmptyText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for empty text")
	})

	got, err := client.Translate(context.Background(), "   ", "German")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "" {
		t.Errorf("Translate() = %q, want empty", got)
	}
}

func TestTranslateServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	})

	_, err := client.Translate(context.Background(), "hello", "German")
	if err == nil {
		t.Fatal("Translate() error = nil, want error for status 500")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error %q does not mention status code", err)
	}
}

func TestTranslateEndpointError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "out of memory"})
	})

	_, err := client.Translate(context.Background(), "hello", "German")
	if err == nil {
		t.Fatal("Translate() error = nil, want endpoint error")
	}
	if !strings.Contains(err.Error(), "out of memory") {
		t.Errorf("error %q does not carry endpoint message", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		json.NewEncoder(w).Encode(generateResponse{Response: "late", Done: true})
	})

	start := time.Now()
	_, err := client.Generate(context.Background(), "hello", 200*time.Millisecond)
	if err == nil {
		t.Fatal("Generate() error = nil, want timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Generate() returned after %v, want prompt timeout", elapsed)
	}
}

func TestSummarize(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Prompt, "lecture about rivers") {
			t.Errorf("prompt %q does not contain transcript", req.Prompt)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "A summary.", Done: true})
	})

	got, err := client.Summarize(context.Background(), "lecture about rivers")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "A summary." {
		t.Errorf("Summarize() = %q, want %q", got, "A summary.")
	}
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	client := newTestClient(t, nil)
	if _, err := client.Summarize(context.Background(), ""); err == nil {
		t.Error("Summarize() error = nil, want error for empty transcript")
	}
}

func TestHealthCheck(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("request path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[]}`))
	})

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestListModels(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"gemma3:4b"},{"name":"llama3:8b"}]}`))
	})

	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 2 || models[0] != "gemma3:4b" || models[1] != "llama3:8b" {
		t.Errorf("ListModels() = %v, want [gemma3:4b llama3:8b]", models)
	}
}

func TestLoadPrompts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "translate: \"Into {language}: {text}\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("LoadPrompts() error = %v", err)
	}
	got := p.translatePrompt("hi", "German")
	if got != "Into German: hi" {
		t.Errorf("translatePrompt() = %q, want %q", got, "Into German: hi")
	}
	// Missing summarize field keeps the default.
	if p.Summarize != DefaultPrompts().Summarize {
		t.Errorf("Summarize = %q, want default", p.Summarize)
	}
}

func TestLoadPromptsMissingFile(t *testing.T) {
	if _, err := LoadPrompts("/nonexistent/prompts.yaml"); err == nil {
		t.Error("LoadPrompts() error = nil, want error for missing file")
	}
}
