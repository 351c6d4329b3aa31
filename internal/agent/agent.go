// Package agent runs the form-filling pipeline end to end: navigate,
// inspect, plan, fill, review, submit, capture.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mendrika-alma/formagent/internal/ai"
	"github.com/mendrika-alma/formagent/internal/browser"
	"github.com/mendrika-alma/formagent/internal/data"
	"github.com/mendrika-alma/formagent/internal/filler"
	"github.com/mendrika-alma/formagent/internal/screenshot"
	"github.com/rs/zerolog/log"
)

// ErrReviewRejected is returned when the pre-submission review fails the
// form. The submit control is never clicked in that case.
var ErrReviewRejected = errors.New("submission rejected by review")

// DefaultPolicy is the constraint the review stage checks when the user
// supplies none.
const DefaultPolicy = "The submission must not assert legal-representative status " +
	"or sign the form on behalf of any entity the filer does not represent."

// Options configures a run.
type Options struct {
	URL        string
	Policy     string
	SubmitWait time.Duration
	Screenshot screenshot.Options
}

// Outcome reports what a run did. It exists only for end-of-process
// reporting.
type Outcome struct {
	NoFields       bool
	Submitted      bool
	ReviewNotes    string
	ScreenshotPath string
	FieldsFilled   int
	FieldsSkipped  int
}

// Agent wires the browser session and the model provider into the
// pipeline.
type Agent struct {
	session  browser.Session
	provider ai.Provider
	opts     Options
}

func New(session browser.Session, provider ai.Provider, opts Options) *Agent {
	if opts.Policy == "" {
		opts.Policy = DefaultPolicy
	}
	return &Agent{session: session, provider: provider, opts: opts}
}

// Run executes the pipeline against the record. Stage failures abort the
// run; per-field failures inside the filler do not.
func (a *Agent) Run(ctx context.Context, record data.Record) (*Outcome, error) {
	outcome := &Outcome{}

	log.Info().Str("url", a.opts.URL).Msg("navigating to form")
	if err := a.session.Navigate(a.opts.URL); err != nil {
		return outcome, err
	}

	elements, err := a.session.Scan()
	if err != nil {
		return outcome, fmt.Errorf("form inspection failed: %w", err)
	}
	log.Info().Int("count", len(elements)).Msg("discovered form elements")

	if len(elements) == 0 {
		outcome.NoFields = true
		log.Info().Msg("no fields to fill")
		return outcome, nil
	}

	mapping, err := a.provider.MapFields(ctx, elements, record)
	if err != nil {
		return outcome, fmt.Errorf("mapping planner failed: %w", err)
	}
	log.Info().Int("entries", len(mapping)).Msg("received field mapping")

	report := filler.Fill(a.session, elements, mapping, record)
	outcome.FieldsFilled = len(report.Filled)
	outcome.FieldsSkipped = len(report.Skipped)

	filled, err := a.session.FormValues()
	if err != nil {
		return outcome, fmt.Errorf("reading back form values failed: %w", err)
	}

	review, err := a.provider.Review(ctx, filled, record, a.opts.Policy)
	if err != nil {
		return outcome, fmt.Errorf("submission review failed: %w", err)
	}
	outcome.ReviewNotes = review.Notes

	if !review.Passed() {
		return outcome, fmt.Errorf("%w: %s", ErrReviewRejected, review.Notes)
	}
	log.Info().Msg("review passed, submitting")

	if err := a.session.Submit(); err != nil {
		return outcome, err
	}
	outcome.Submitted = true

	// Let the submission settle before capturing the result.
	time.Sleep(a.opts.SubmitWait)

	capture, err := a.session.Screenshot()
	if err != nil {
		return outcome, err
	}
	path, err := screenshot.Save(capture, time.Now(), a.opts.Screenshot)
	if err != nil {
		return outcome, err
	}
	outcome.ScreenshotPath = path
	log.Info().Str("path", path).Msg("screenshot saved")

	return outcome, nil
}
