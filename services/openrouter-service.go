package services

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
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel         = "openai/gpt-4o-mini"
	FallbackModel        = "deepseek/deepseek-chat"

	maxTokens   = 2000
	temperature = 0.7
)

// OpenRouterService talks to an OpenRouter-compatible chat-completions
// API. Each request tries the primary model first and retries once with
// the fallback model.
type OpenRouterService struct {
	apiKey        string
	baseURL       string
	model         string
	fallbackModel string
	client        *http.Client
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type ChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewOpenRouterService(apiKey, baseURL, model string, timeout time.Duration) *OpenRouterService {
	if baseURL == "" {
		baseURL = DefaultOpenRouterURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenRouterService{
		apiKey:        apiKey,
		baseURL:       baseURL,
		model:         model,
		fallbackModel: FallbackModel,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Model returns the configured primary model name.
func (s *OpenRouterService) Model() string { return s.model }

// Configured reports whether an API key is set.
func (s *OpenRouterService) Configured() bool { return s.apiKey != "" }

// Prompt sends a single user message and returns the cleaned completion
// text. The fallback model is tried when the primary one errors.
func (s *OpenRouterService) Prompt(ctx context.Context, prompt string) (string, error) {
	models := []string{s.model}
	if s.model != s.fallbackModel {
		models = append(models, s.fallbackModel)
	}

	var lastErr error
	for _, model := range models {
		result, err := s.promptWithModel(ctx, prompt, model)
		if err == nil {
			return CleanResponse(result), nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (s *OpenRouterService) promptWithModel(ctx context.Context, prompt, model string) (string, error) {
	reqBody := ChatRequest{
		Model:       model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("HTTP-Referer", "https://github.com/fitmentor")
	req.Header.Set("X-Title", "FitMentor AI")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// CleanResponse strips reasoning tags and markdown formatting so the
// remainder can be fed to json.Unmarshal. Models wrap JSON in code
// fences or emit <think> blocks before the payload.
func CleanResponse(response string) string {
	response = strings.TrimSpace(response)

	if idx := strings.LastIndex(response, "</think>"); idx != -1 {
		response = strings.TrimSpace(response[idx+len("</think>"):])
	}

	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "json")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start != -1 && end != -1 && end > start {
		response = response[start : end+1]
	}

	return response
}
