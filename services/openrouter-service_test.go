package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"plain json",
			`{"a": 1}`,
			`{"a": 1}`,
		},
		{
			"json code fence",
			"```json\n{\"a\": 1}\n```",
			`{"a": 1}`,
		},
		{
			"bare code fence",
			"```\n{\"a\": 1}\n```",
			`{"a": 1}`,
		},
		{
			"think block before payload",
			"<think>reasoning about macros</think>\n{\"a\": 1}",
			`{"a": 1}`,
		},
		{
			"json prefix",
			"json\n{\"a\": 1}",
			`{"a": 1}`,
		},
		{
			"surrounding prose",
			"Here is your plan:\n{\"a\": 1}\nEnjoy!",
			`{"a": 1}`,
		},
		{
			"no braces",
			"sorry, I cannot help",
			"sorry, I cannot help",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResponse(tt.input); got != tt.want {
				t.Errorf("CleanResponse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func chatCompletion(content string) ChatResponse {
	var resp ChatResponse
	resp.Choices = append(resp.Choices, struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	}{
		Message: ChatMessage{Role: "assistant", Content: content},
	})
	return resp
}

func TestPromptSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test-key", got)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "openai/gpt-4o-mini" {
			t.Errorf("model = %q, want openai/gpt-4o-mini", req.Model)
		}
		json.NewEncoder(w).Encode(chatCompletion("```json\n{\"ok\": true}\n```"))
	}))
	defer ts.Close()

	svc := NewOpenRouterService("test-key", ts.URL, "", time.Second)
	got, err := svc.Prompt(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Prompt returned error: %v", err)
	}
	if got != `{"ok": true}` {
		t.Errorf("Prompt = %q, want cleaned JSON", got)
	}
}

func TestPromptFallsBackToSecondModel(t *testing.T) {
	var models []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)
		if req.Model == DefaultModel {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(chatCompletion(`{"ok": true}`))
	}))
	defer ts.Close()

	svc := NewOpenRouterService("test-key", ts.URL, "", time.Second)
	got, err := svc.Prompt(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Prompt returned error: %v", err)
	}
	if got != `{"ok": true}` {
		t.Errorf("Prompt = %q, want fallback result", got)
	}
	if len(models) != 2 || models[0] != DefaultModel || models[1] != FallbackModel {
		t.Errorf("model attempts = %v, want primary then fallback", models)
	}
}

func TestPromptAllModelsFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	svc := NewOpenRouterService("test-key", ts.URL, "", time.Second)
	if _, err := svc.Prompt(context.Background(), "hello"); err == nil {
		t.Fatal("expected error when every model fails")
	}
}

func TestPromptAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "invalid key", "type": "auth"}}`))
	}))
	defer ts.Close()

	svc := NewOpenRouterService("bad-key", ts.URL, "", time.Second)
	if _, err := svc.Prompt(context.Background(), "hello"); err == nil {
		t.Fatal("expected error from API error body")
	}
}

func TestNewOpenRouterServiceDefaults(t *testing.T) {
	svc := NewOpenRouterService("", "", "", 0)
	if svc.Model() != DefaultModel {
		t.Errorf("Model = %q, want %q", svc.Model(), DefaultModel)
	}
	if svc.Configured() {
		t.Error("Configured should be false without an API key")
	}
	if svc.baseURL != DefaultOpenRouterURL {
		t.Errorf("baseURL = %q, want default", svc.baseURL)
	}
}
