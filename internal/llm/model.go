// Package llm wraps langchaingo models for the optional answer-synthesis
// fallback when the knowledge base has no match for a caller question.
package llm

import (
	"context"
	"fmt"

	"github.com/dialdish/dialdish/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const answerSystemPrompt = `You are the phone assistant of a restaurant voice-ordering service.
Answer the caller's question in one or two short spoken sentences.
If you do not know the answer, ask the caller to contact the restaurant directly.
Never invent prices or availability.`

// Model wraps a langchaingo LLM for short spoken answers.
type Model struct {
	llm       llms.Model
	modelName string
}

// NewModel creates an LLM model based on configuration. Returns an error
// when the provider is unset or misconfigured; callers treat the model as
// optional.
func NewModel(cfg config.Config) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLMProvider)
	}

	return &Model{llm: model, modelName: cfg.LLMModel}, nil
}

// SynthesizeAnswer produces a short spoken answer to a caller question.
func (m *Model) SynthesizeAnswer(ctx context.Context, question string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, answerSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, question),
	}

	resp, err := m.llm.GenerateContent(ctx, messages, llms.WithMaxTokens(150))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no answer generated")
	}
	return resp.Choices[0].Content, nil
}

// Name reports the configured model name.
func (m *Model) Name() string {
	return m.modelName
}
