package agent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mendrika-alma/formagent/internal/ai"
	"github.com/mendrika-alma/formagent/internal/browser"
	"github.com/mendrika-alma/formagent/internal/data"
	"github.com/mendrika-alma/formagent/internal/screenshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mapping     ai.FieldMapping
	mapErr      error
	review      *ai.Review
	reviewErr   error
	mapCalls    int
	reviewCalls int
}

func (s *stubProvider) MapFields(_ context.Context, _ []browser.FormElement, _ data.Record) (ai.FieldMapping, error) {
	s.mapCalls++
	return s.mapping, s.mapErr
}

func (s *stubProvider) Review(_ context.Context, _ map[string]string, _ data.Record, _ string) (*ai.Review, error) {
	s.reviewCalls++
	return s.review, s.reviewErr
}

func testOptions(t *testing.T) Options {
	return Options{
		URL:        "https://forms.example.com/",
		Screenshot: screenshot.Options{Dir: t.TempDir()},
	}
}

func screenshotCount(t *testing.T, dir string) int {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	count := 0
	for _, e := range entries {
		if match, _ := filepath.Match("form_submission_*.png", e.Name()); match {
			count++
		}
	}
	return count
}

func TestRunEmptyForm(t *testing.T) {
	sess := browser.NewFakeSession()
	provider := &stubProvider{}
	opts := testOptions(t)

	outcome, err := New(sess, provider, opts).Run(context.Background(), data.Record{"name": "Jane"})

	require.NoError(t, err)
	assert.True(t, outcome.NoFields)
	assert.False(t, outcome.Submitted)
	assert.Equal(t, 0, provider.mapCalls)
	assert.Equal(t, 0, provider.reviewCalls)
	assert.Empty(t, sess.Fills)
	assert.Equal(t, 0, sess.SubmitClicks)
}

func TestRunPlannerParseErrorAborts(t *testing.T) {
	sess := browser.NewFakeSession(
		browser.FormElement{Tag: "input", Type: "text", ID: "input-name", Selector: "#input-name"},
	)
	provider := &stubProvider{
		mapErr: fmt.Errorf("bad reply: %w", ai.ErrUnparsableResponse),
	}
	opts := testOptions(t)

	_, err := New(sess, provider, opts).Run(context.Background(), data.Record{"name": "Jane"})

	assert.ErrorIs(t, err, ai.ErrUnparsableResponse)
	assert.Empty(t, sess.Fills)
	assert.Equal(t, 0, sess.SubmitClicks)
	assert.Equal(t, 0, sess.Shots)
}

func TestRunReviewFailBlocksSubmit(t *testing.T) {
	sess := browser.NewFakeSession(
		browser.FormElement{Tag: "input", Type: "text", ID: "input-name", Selector: "#input-name"},
	)
	provider := &stubProvider{
		mapping: ai.FieldMapping{"name": "#input-name"},
		review:  &ai.Review{Verdict: "fail", Notes: "signature asserts representation"},
	}
	opts := testOptions(t)

	outcome, err := New(sess, provider, opts).Run(context.Background(), data.Record{"name": "Jane"})

	assert.ErrorIs(t, err, ErrReviewRejected)
	assert.Equal(t, "signature asserts representation", outcome.ReviewNotes)
	assert.False(t, outcome.Submitted)
	assert.Equal(t, 0, sess.SubmitClicks)
	assert.Equal(t, 0, sess.Shots)
	assert.Equal(t, 0, screenshotCount(t, opts.Screenshot.Dir))
}

func TestRunReviewPassSubmitsOnce(t *testing.T) {
	sess := browser.NewFakeSession(
		browser.FormElement{Tag: "input", Type: "text", ID: "input-name", Selector: "#input-name"},
		browser.FormElement{Tag: "input", Type: "text", ID: "input-email", Selector: "#input-email"},
	)
	provider := &stubProvider{
		mapping: ai.FieldMapping{"name": "#input-name", "email": "#input-email"},
		review:  &ai.Review{Verdict: "pass", Notes: "all fields consistent"},
	}
	opts := testOptions(t)

	outcome, err := New(sess, provider, opts).Run(context.Background(), data.Record{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	})

	require.NoError(t, err)
	assert.True(t, outcome.Submitted)
	assert.Equal(t, 1, sess.SubmitClicks)
	assert.Equal(t, 1, sess.Shots)
	assert.Equal(t, 2, outcome.FieldsFilled)
	assert.Equal(t, 0, outcome.FieldsSkipped)
	assert.Equal(t, 1, screenshotCount(t, opts.Screenshot.Dir))
	assert.FileExists(t, outcome.ScreenshotPath)
	assert.Equal(t, "all fields consistent", outcome.ReviewNotes)
}

func TestRunCountsSkippedFields(t *testing.T) {
	sess := browser.NewFakeSession(
		browser.FormElement{Tag: "input", Type: "text", ID: "input-name", Selector: "#input-name"},
	)
	provider := &stubProvider{
		mapping: ai.FieldMapping{"name": "#input-name", "email": "#gone"},
		review:  &ai.Review{Verdict: "pass"},
	}
	opts := testOptions(t)

	outcome, err := New(sess, provider, opts).Run(context.Background(), data.Record{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.FieldsFilled)
	assert.Equal(t, 1, outcome.FieldsSkipped)
	assert.True(t, outcome.Submitted)
}

func TestRunScanErrorAborts(t *testing.T) {
	sess := browser.NewFakeSession()
	sess.ScanErr = fmt.Errorf("boom")
	provider := &stubProvider{}
	opts := testOptions(t)

	_, err := New(sess, provider, opts).Run(context.Background(), data.Record{})

	assert.Error(t, err)
	assert.Equal(t, 0, provider.mapCalls)
}

func TestNewAppliesDefaultPolicy(t *testing.T) {
	a := New(browser.NewFakeSession(), &stubProvider{}, Options{})
	assert.Equal(t, DefaultPolicy, a.opts.Policy)

	a = New(browser.NewFakeSession(), &stubProvider{}, Options{Policy: "custom"})
	assert.Equal(t, "custom", a.opts.Policy)
}
