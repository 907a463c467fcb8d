// internal/providers/gemini/provider_test.go
package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MahirManghnani/finbench/internal/appconfig"
	"github.com/MahirManghnani/finbench/internal/providers"
)

func candidateJSON(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":` + jsonString(text) + `}]},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":10,"candidatesTokenCount":5,"totalTokenCount":15}}`
}

func jsonString(text string) string {
	encoded, _ := json.Marshal(text)
	return string(encoded)
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &appconfig.Config{
		Model:          "test-model",
		BaseURL:        server.URL,
		TimeoutSeconds: 5,
		RetryCount:     2,
	}
	return New(cfg, "test-key", nil)
}

func TestSessionSend(t *testing.T) {
	t.Parallel()

	var captured []byte
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/test-model:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		captured = body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidateJSON(`{"formula": "add(1, 2)"}`)))
	})

	session := provider.NewSession("system prompt", []providers.ChatMessage{
		{Role: "user", Content: "opening instructions"},
	})

	reply, err := session.Send(context.Background(), "first question")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if !strings.Contains(reply, "add(1, 2)") {
		t.Fatalf("unexpected reply: %q", reply)
	}

	var payload map[string]any
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if _, ok := payload["system_instruction"]; !ok {
		t.Error("payload missing system_instruction")
	}
	contents, ok := payload["contents"].([]any)
	if !ok || len(contents) != 2 {
		t.Fatalf("expected opening + question turns, got %v", payload["contents"])
	}
}

func TestSessionHistoryAccumulates(t *testing.T) {
	t.Parallel()

	var turnCounts []int
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Contents []json.RawMessage `json:"contents"`
		}
		_ = json.Unmarshal(body, &payload)
		turnCounts = append(turnCounts, len(payload.Contents))
		_, _ = w.Write([]byte(candidateJSON("ok")))
	})

	session := provider.NewSession("sys", nil)
	ctx := context.Background()

	if _, err := session.Send(ctx, "one"); err != nil {
		t.Fatal(err)
	}
	if _, err := session.Send(ctx, "two"); err != nil {
		t.Fatal(err)
	}

	// First request carries 1 turn, second carries user+model+user.
	if len(turnCounts) != 2 || turnCounts[0] != 1 || turnCounts[1] != 3 {
		t.Fatalf("turn counts = %v, want [1 3]", turnCounts)
	}
}

func TestGenerateRetriesOnRateLimit(t *testing.T) {
	t.Parallel()

	attempts := 0
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"rate limited","status":"RESOURCE_EXHAUSTED"}}`))
			return
		}
		_, _ = w.Write([]byte(candidateJSON("recovered")))
	})

	session := provider.NewSession("", nil)
	reply, err := session.Send(context.Background(), "question")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if reply != "recovered" {
		t.Fatalf("reply = %q", reply)
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
}

func TestGenerateDoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	attempts := 0
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"invalid argument","status":"INVALID_ARGUMENT"}}`))
	})

	session := provider.NewSession("", nil)
	_, err := session.Send(context.Background(), "question")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid argument") {
		t.Fatalf("error does not carry the API message: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1 (no retry on 400)", attempts)
	}
}

func TestSendFailureDropsUnansweredTurn(t *testing.T) {
	t.Parallel()

	attempts := 0
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Contents []json.RawMessage `json:"contents"`
		}
		_ = json.Unmarshal(body, &payload)

		if attempts == 1 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`))
			return
		}
		if len(payload.Contents) != 1 {
			t.Errorf("failed turn leaked into history: %d turns", len(payload.Contents))
		}
		_, _ = w.Write([]byte(candidateJSON("ok")))
	})

	session := provider.NewSession("", nil)
	ctx := context.Background()

	if _, err := session.Send(ctx, "first"); err == nil {
		t.Fatal("expected first send to fail")
	}
	if _, err := session.Send(ctx, "second"); err != nil {
		t.Fatalf("second send failed: %v", err)
	}
}
