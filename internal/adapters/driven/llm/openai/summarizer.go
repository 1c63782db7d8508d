// Package openai provides a Summarizer adapter using the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
)

// Ensure Summarizer implements the interface.
var _ driven.Summarizer = (*Summarizer)(nil)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

const systemPrompt = "You answer questions using only the provided passages. " +
	"Answer concisely. If the passages do not contain the answer, say so."

// Config holds configuration for the OpenAI summarizer.
type Config struct {
	// APIKey authenticates against the OpenAI API. Required.
	APIKey string

	// BaseURL overrides the API endpoint. Empty uses the public API.
	BaseURL string

	// Model is the chat model to use.
	Model string
}

// Summarizer condenses retrieved passages into an answer using an LLM.
type Summarizer struct {
	client *openai.Client
	model  string
}

// New creates an OpenAI summarizer.
func New(cfg Config) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key is required", domain.ErrInvalidInput)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Summarizer{client: openai.NewClientWithConfig(clientCfg), model: cfg.Model}, nil
}

// Summarize asks the model to answer the question from the passages.
func (s *Summarizer) Summarize(ctx context.Context, question string, passages []string, maxChars int) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Passages:\n\n")
	for i, p := range passages {
		fmt.Fprintf(&prompt, "[%d] %s\n\n", i+1, p)
	}
	fmt.Fprintf(&prompt, "Question: %s\n", question)
	if maxChars > 0 {
		fmt.Fprintf(&prompt, "Keep the answer under %d characters.\n", maxChars)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", domain.ErrLLMUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", domain.ErrLLMUnavailable)
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("%w: openai returned an empty answer", domain.ErrLLMUnavailable)
	}
	return answer, nil
}

// ModelName returns the chat model identifier.
func (s *Summarizer) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *Summarizer) Close() error {
	return nil
}
