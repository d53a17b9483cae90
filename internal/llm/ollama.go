// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     llm
// Description: Ollama generation-endpoint client
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the local Ollama endpoint.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultModel is the generation model used when none is configured.
	DefaultModel = "gemma3:4b"
)

// Config holds generation client configuration.
type Config struct {
	BaseURL string
	Model   string

	// TranslateTimeoutSeconds bounds a per-chunk translation call.
	TranslateTimeoutSeconds int

	// SummarizeTimeoutSeconds bounds a full-lecture summarization call,
	// which works on much larger text.
	SummarizeTimeoutSeconds int

	// Prompts are the instruction templates; zero value means defaults.
	Prompts Prompts
}

// DefaultConfig returns default generation configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:                 DefaultBaseURL,
		Model:                   DefaultModel,
		TranslateTimeoutSeconds: 10,
		SummarizeTimeoutSeconds: 120,
		Prompts:                 DefaultPrompts(),
	}
}

// Client talks to the generation endpoint. Requests always disable
// streaming so the full response arrives in one reply.
type Client struct {
	baseURL          string
	model            string
	prompts          Prompts
	translateTimeout time.Duration
	summarizeTimeout time.Duration
	httpClient       *http.Client
}

// NewClient creates a generation client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	translateTimeout := time.Duration(cfg.TranslateTimeoutSeconds) * time.Second
	if translateTimeout <= 0 {
		translateTimeout = 10 * time.Second
	}
	summarizeTimeout := time.Duration(cfg.SummarizeTimeoutSeconds) * time.Second
	if summarizeTimeout <= 0 {
		summarizeTimeout = 120 * time.Second
	}

	prompts := cfg.Prompts
	if prompts.Translate == "" || prompts.Summarize == "" {
		prompts = prompts.withDefaults()
	}

	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		model:            model,
		prompts:          prompts,
		translateTimeout: translateTimeout,
		summarizeTimeout: summarizeTimeout,
		httpClient:       &http.Client{},
	}
}

// generateRequest is the /api/generate request body.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the /api/generate response body.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate sends a prompt to the generation endpoint and returns the full
// response text. A non-2xx status or network failure is an error; no retry
// is attempted.
func (c *Client) Generate(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation endpoint returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("generation endpoint: %s", result.Error)
	}

	return strings.TrimSpace(result.Response), nil
}

// Translate translates text to the target language.
func (c *Client) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	prompt := c.prompts.translatePrompt(text, targetLanguage)
	return c.Generate(ctx, prompt, c.translateTimeout)
}

// Summarize produces a lecture summary for a full transcript.
func (c *Client) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("transcript is empty")
	}
	prompt := c.prompts.summarizePrompt(transcript)
	return c.Generate(ctx, prompt, c.summarizeTimeout)
}

// HealthCheck verifies the generation endpoint is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("generation endpoint unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// ListModels returns the models available at the endpoint.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	models := make([]string, len(result.Models))
	for i, m := range result.Models {
		models[i] = m.Name
	}
	return models, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}
