package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/mendrika-alma/formagent/internal/browser"
	"github.com/mendrika-alma/formagent/internal/data"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider. An empty apiKey falls
// back to the OPENAI_API_KEY environment variable.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("--api_key or OPENAI_API_KEY environment variable required")
	}

	client := openai.NewClient(apiKey)

	if model == "" {
		model = "gpt-4o"
	}

	return &OpenAIProvider{
		client: client,
		model:  model,
	}, nil
}

func (p *OpenAIProvider) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: user,
				},
			},
			MaxTokens: 2048,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// MapFields asks the model to match record keys to form element selectors.
func (p *OpenAIProvider) MapFields(ctx context.Context, elements []browser.FormElement, record data.Record) (FieldMapping, error) {
	userPrompt, err := buildMappingPrompt(elements, record)
	if err != nil {
		return nil, err
	}
	text, err := completeWithRetry(func() (string, error) {
		return p.complete(ctx, mappingSystemPrompt, userPrompt)
	})
	if err != nil {
		return nil, err
	}
	return parseMapping(text)
}

// Review asks the model for a pass/fail judgment on the filled form.
func (p *OpenAIProvider) Review(ctx context.Context, filled map[string]string, record data.Record, policy string) (*Review, error) {
	userPrompt, err := buildReviewPrompt(filled, record, policy)
	if err != nil {
		return nil, err
	}
	text, err := completeWithRetry(func() (string, error) {
		return p.complete(ctx, reviewSystemPrompt, userPrompt)
	})
	if err != nil {
		return nil, err
	}
	return parseReview(text)
}
