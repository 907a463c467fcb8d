// internal/providers/gemini/provider.go
// Package gemini provides a ChatProvider backed by the Gemini generateContent
// HTTP API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MahirManghnani/finbench/internal/appconfig"
	"github.com/MahirManghnani/finbench/internal/logging"
	"github.com/MahirManghnani/finbench/internal/providers"
	"github.com/MahirManghnani/finbench/internal/ratelimit"
	"github.com/MahirManghnani/finbench/internal/util"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Provider implements providers.ChatProvider using the Gemini HTTP API. The
// rate limiter is passed in explicitly; the provider holds no global state.
type Provider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	params  appconfig.Parameters
	limiter *ratelimit.Limiter
	retries int
	debug   bool
}

// New constructs a Provider configured with the application's request timeout
// and retry policy.
func New(cfg *appconfig.Config, apiKey string, limiter *ratelimit.Limiter) *Provider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		client:  &http.Client{Timeout: cfg.RequestTimeout()},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   cfg.Model,
		params:  cfg.Parameters,
		limiter: limiter,
		retries: cfg.RetryAttempts(),
		debug:   cfg.Debug,
	}
}

// Model returns the model name requests are issued against.
func (p *Provider) Model() string { return p.model }

// NewSession starts a conversation seeded with a system prompt and opening
// history.
func (p *Provider) NewSession(systemPrompt string, opening []providers.ChatMessage) providers.Session {
	session := &chatSession{provider: p, system: systemPrompt}
	for _, msg := range opening {
		session.history = append(session.history, content{
			Role:  normalizeRole(msg.Role),
			Parts: []part{{Text: msg.Content}},
		})
	}
	return session
}

// Close releases idle connections.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// chatSession accumulates turns for one entry's conversation.
type chatSession struct {
	provider *Provider
	system   string
	history  []content
}

// Send appends the user prompt, performs the request, and records the model's
// reply in the session history.
func (s *chatSession) Send(ctx context.Context, prompt string) (string, error) {
	s.history = append(s.history, content{Role: "user", Parts: []part{{Text: prompt}}})

	reply, err := s.provider.generate(ctx, s.system, s.history)
	if err != nil {
		// Drop the unanswered turn so a retry at the caller's level
		// does not duplicate it.
		s.history = s.history[:len(s.history)-1]
		return "", err
	}

	s.history = append(s.history, content{Role: "model", Parts: []part{{Text: reply}}})
	return reply, nil
}

// generate performs one generateContent call with rate limiting and bounded
// retry on transient failures.
func (p *Provider) generate(ctx context.Context, system string, history []content) (string, error) {
	payload := generateRequest{
		Contents: history,
		GenerationConfig: generationConfig{
			Temperature:      p.params.Temperature,
			TopP:             p.params.TopP,
			TopK:             p.params.TopK,
			MaxOutputTokens:  p.params.MaxOutputTokens,
			ResponseMIMEType: "text/plain",
		},
	}
	if system != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, p.model)

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			if err := sleepBackoff(ctx, attempt); err != nil {
				return "", err
			}
			logging.LogEvent("gemini: retrying request (attempt %d/%d): %v", attempt, p.retries, lastErr)
		}

		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		reply, retryable, err := p.doRequest(ctx, endpoint, body)
		if err == nil {
			return reply, nil
		}
		if !retryable {
			return "", err
		}
		lastErr = err
	}

	return "", fmt.Errorf("gemini: request failed after %d attempts: %w", p.retries+1, lastErr)
}

// doRequest performs a single HTTP exchange. The boolean result reports
// whether the failure is worth retrying.
func (p *Provider) doRequest(ctx context.Context, endpoint string, body []byte) (string, bool, error) {
	if p.debug {
		logging.LogRequest("OUT", p.model, "", util.TruncateRunes(string(body), 500))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("gemini: request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if apiErr := decodeAPIError(respBody); apiErr != nil && apiErr.Message != "" {
			msg = fmt.Sprintf("%s: %s", resp.Status, apiErr.Message)
		}
		return "", retryableStatus(resp.StatusCode), fmt.Errorf("gemini: %s", msg)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", false, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", false, fmt.Errorf("gemini: response contained no candidates")
	}

	var text strings.Builder
	for _, piece := range parsed.Candidates[0].Content.Parts {
		text.WriteString(piece.Text)
	}
	reply := strings.TrimSpace(text.String())

	if p.debug {
		logging.LogRequest("IN", p.model, "", util.TruncateRunes(reply, 500))
	}
	return reply, false, nil
}

// retryableStatus reports whether a status code indicates a transient
// condition: rate limiting or server-side failure.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// sleepBackoff waits 2^attempt seconds, honoring context cancellation.
func sleepBackoff(ctx context.Context, attempt int) error {
	delay := time.Duration(1<<uint(attempt)) * time.Second
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// normalizeRole maps conventional chat roles onto the API's user/model pair.
func normalizeRole(role string) string {
	if role == "assistant" || role == "model" {
		return "model"
	}
	return "user"
}
