package chat

import (
	"context"
	"encoding/json"
	"fmt"
)

const systemPrompt = "You are a coach assistant for esports. Use ONLY the provided scouting report JSON to answer. " +
	"Be concise and specific. If the report does not contain relevant data, say so."

// Response is the chat payload returned to clients. Failures travel in the
// Error field rather than as HTTP errors so the UI can render them inline.
type Response struct {
	Response string  `json:"response"`
	Provider string  `json:"provider"`
	Error    *string `json:"error"`
}

// Engine turns coaching questions plus a scouting report into AI explanations.
type Engine struct {
	provider Provider
}

// NewEngine wires a provider. A nil provider is valid and yields a
// configuration-error response on every call.
func NewEngine(p Provider) *Engine {
	return &Engine{provider: p}
}

// SelectProvider picks a provider from the configured keys. An explicit
// preference wins when its key is present; otherwise OpenAI is preferred.
func SelectProvider(preference, openAIKey, openAIModel, geminiKey, geminiModel string) Provider {
	if preference == "gemini" && geminiKey != "" {
		return NewGemini(geminiKey, geminiModel)
	}
	if preference == "openai" && openAIKey != "" {
		return NewOpenAI(openAIKey, openAIModel)
	}
	if openAIKey != "" {
		return NewOpenAI(openAIKey, openAIModel)
	}
	if geminiKey != "" {
		return NewGemini(geminiKey, geminiModel)
	}
	return nil
}

// Explain answers a question grounded in the given scouting report.
func (e *Engine) Explain(ctx context.Context, question string, report any) Response {
	if e.provider == nil {
		return errResponse("", "No chat API key set. Set OPENAI_API_KEY or GEMINI_API_KEY in .env")
	}

	if report == nil {
		report = map[string]any{}
	}
	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errResponse(e.provider.Name(), fmt.Sprintf("API response error: %s", err))
	}
	user := fmt.Sprintf("Scouting report:\n%s\n\nQuestion: %s", reportJSON, question)

	text, err := e.provider.Complete(ctx, systemPrompt, user)
	if err != nil {
		return errResponse(e.provider.Name(), err.Error())
	}
	return Response{Response: text, Provider: e.provider.Name()}
}

func errResponse(provider, msg string) Response {
	return Response{Provider: provider, Error: &msg}
}
