package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	openAIChatURL = "https://api.openai.com/v1/chat/completions"
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-1.5-flash"

	maxOutputTokens = 1024
	temperature     = 0.3
)

// Provider answers one system+user prompt pair with completion text.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}

// OpenAI calls the Chat Completions API.
type OpenAI struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey     string
	model      string
	httpClient *http.Client
}

func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		BaseURL:    openAIChatURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: newHTTPClient(),
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	payload := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"max_tokens":  maxOutputTokens,
		"temperature": temperature,
	}
	body, err := postJSON(ctx, o.httpClient, o.BaseURL, payload, map[string]string{
		"Authorization": "Bearer " + o.apiKey,
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai response had no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// Gemini calls the generateContent API.
type Gemini struct {
	BaseURL string

	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{
		BaseURL:    geminiBaseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: newHTTPClient(),
	}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Complete(ctx context.Context, system, user string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", g.BaseURL, g.model, url.QueryEscape(g.apiKey))
	payload := map[string]any{
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": system}},
		},
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]string{{"text": user}}},
		},
		"generationConfig": map[string]any{
			"maxOutputTokens": maxOutputTokens,
			"temperature":     temperature,
		},
	}
	body, err := postJSON(ctx, g.httpClient, endpoint, payload, nil)
	if err != nil {
		return "", err
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("gemini response had no candidates")
	}
	parts := out.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parts[0].Text), nil
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, payload any, headers map[string]string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API request failed: status %d", resp.StatusCode)
	}
	return buf.Bytes(), nil
}
