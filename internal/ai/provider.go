package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mendrika-alma/formagent/internal/browser"
	"github.com/mendrika-alma/formagent/internal/data"
	"github.com/rs/zerolog/log"
)

// ErrUnparsableResponse is returned when the model's reply cannot be
// parsed as the requested JSON shape. The run aborts on it; there is no
// partial-mapping fallback.
var ErrUnparsableResponse = errors.New("model response is not valid JSON")

// FieldMapping associates a data record key with the CSS selector of the
// form element it should be written into.
type FieldMapping map[string]string

// Review is the model's pre-submission judgment of the filled form.
type Review struct {
	Verdict string `json:"verdict"`
	Notes   string `json:"notes"`
}

// Passed reports whether the review cleared the form for submission.
func (r *Review) Passed() bool {
	return strings.EqualFold(strings.TrimSpace(r.Verdict), "pass")
}

// Provider is the narrow interface over the two LLM decision points in
// the pipeline, so tests can swap in deterministic stubs.
type Provider interface {
	// MapFields asks the model to match record keys to form element
	// selectors. Called once per run.
	MapFields(ctx context.Context, elements []browser.FormElement, record data.Record) (FieldMapping, error)
	// Review asks the model to sanity-check the filled values against
	// the policy before the form is submitted.
	Review(ctx context.Context, filled map[string]string, record data.Record, policy string) (*Review, error)
}

// NewProvider creates a provider by name.
func NewProvider(name, apiKey, model string) (Provider, error) {
	switch name {
	case "claude", "anthropic":
		return NewClaudeProvider(apiKey, model)
	case "openai", "gpt":
		return NewOpenAIProvider(apiKey, model)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: claude, openai)", name)
	}
}

const maxAttempts = 3

// retrySleep is swapped out in tests so backoff does not slow them down.
var retrySleep = time.Sleep

// completeWithRetry calls the completion endpoint, retrying with backoff
// only when the API reports rate limiting. All other errors surface
// immediately.
func completeWithRetry(fn func() (string, error)) (string, error) {
	var text string
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err = fn()
		if err == nil {
			return text, nil
		}
		if !strings.Contains(err.Error(), "429") {
			return "", err
		}
		if attempt == maxAttempts-1 {
			break
		}
		delay := time.Duration(2<<attempt) * time.Second
		log.Debug().Err(err).Dur("backoff", delay).Int("attempt", attempt+1).Msg("rate limited, retrying")
		retrySleep(delay)
	}
	return "", err
}
