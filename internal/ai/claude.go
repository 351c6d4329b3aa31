package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/mendrika-alma/formagent/internal/browser"
	"github.com/mendrika-alma/formagent/internal/data"
)

// ClaudeProvider implements Provider using Anthropic's Claude
type ClaudeProvider struct {
	client *anthropic.Client
	model  string
}

// NewClaudeProvider creates a new Claude provider. An empty apiKey falls
// back to the ANTHROPIC_API_KEY environment variable.
func NewClaudeProvider(apiKey, model string) (*ClaudeProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("--api_key or ANTHROPIC_API_KEY environment variable required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}

	return &ClaudeProvider{
		client: &client,
		model:  model,
	}, nil
}

func (p *ClaudeProvider) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from Claude")
}

// MapFields asks Claude to match record keys to form element selectors.
func (p *ClaudeProvider) MapFields(ctx context.Context, elements []browser.FormElement, record data.Record) (FieldMapping, error) {
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

// Review asks Claude for a pass/fail judgment on the filled form.
func (p *ClaudeProvider) Review(ctx context.Context, filled map[string]string, record data.Record, policy string) (*Review, error) {
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
