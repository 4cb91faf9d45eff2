// Package backend is the HTTP client for the Scizor AI backend: prompt
// enhancement, response generation, text-to-speech and health checks.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"scizor/internal/logging"
)

// Typed error conditions surfaced to the caller. Unlike the clipboard and
// notes layers, backend failures are never swallowed: the UI needs to tell
// "server down" from "server said no".
var (
	// ErrTimeout means the request exceeded the client timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrUnavailable means the backend could not be reached at all.
	ErrUnavailable = errors.New("backend unreachable")
)

// APIError is a non-2xx or success=false response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error (status %d)", e.StatusCode)
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// EnhanceResult is the data payload of /ai/enhance-prompt.
type EnhanceResult struct {
	EnhancedPrompt string `json:"enhancedPrompt"`
	OriginalPrompt string `json:"originalPrompt"`
	Model          string `json:"model"`
}

// GenerateResult is the data payload of /ai/generate-response.
type GenerateResult struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

// SpeechRequest are the tunables for /ai/text-to-speech.
type SpeechRequest struct {
	Text   string  `json:"text"`
	Voice  string  `json:"voice,omitempty"`
	Format string  `json:"responseFormat,omitempty"`
	Speed  float64 `json:"speed,omitempty"`
	Model  string  `json:"model,omitempty"`
}

// Client talks to the backend API. Safe for concurrent use; requests are
// rate limited so hotkey mashing cannot flood the server.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client for the given base URL (e.g.
// "http://localhost:5000").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

// EnhancePrompt sends prompt to /ai/enhance-prompt and returns the
// enhanced version.
func (c *Client) EnhancePrompt(ctx context.Context, prompt string) (EnhanceResult, error) {
	var result EnhanceResult
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return result, errors.New("prompt cannot be empty")
	}

	data, err := c.post(ctx, "/ai/enhance-prompt", map[string]string{"prompt": prompt})
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("parse enhance response: %w", err)
	}
	return result, nil
}

// GenerateResponse sends content to /ai/generate-response.
func (c *Client) GenerateResponse(ctx context.Context, content string) (GenerateResult, error) {
	var result GenerateResult
	content = strings.TrimSpace(content)
	if content == "" {
		return result, errors.New("content cannot be empty")
	}

	data, err := c.post(ctx, "/ai/generate-response", map[string]string{"content": content})
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("parse generate response: %w", err)
	}
	return result, nil
}

// Speech sends req to /ai/text-to-speech and returns the raw audio bytes.
func (c *Client) Speech(ctx context.Context, req SpeechRequest) ([]byte, error) {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return nil, errors.New("text cannot be empty")
	}
	if req.Voice == "" {
		req.Voice = "alloy"
	}
	if req.Format == "" {
		req.Format = "mp3"
	}
	if req.Speed == 0 {
		req.Speed = 1.0
	}
	if req.Model == "" {
		req.Model = "tts-1"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/ai/text-to-speech", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(audio))}
	}
	return audio, nil
}

// Healthy reports whether GET /ai/health answers 200 within a short
// deadline.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ai/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// post sends a JSON body, validates the envelope and returns its data.
func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !env.Success {
		logging.Error("backend API error", "path", path, "status", resp.StatusCode, "message", env.Message)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return env.Data, nil
}

// do runs one rate-limited request and maps transport failures to the
// typed errors.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logging.Debug("backend request", "method", method, "path", path)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
