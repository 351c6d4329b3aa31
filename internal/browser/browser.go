package browser

import (
	"errors"
	"time"
)

// ErrPageLoadTimeout is returned when the target page does not finish
// loading within StartOptions.PageTimeout.
var ErrPageLoadTimeout = errors.New("page load timed out")

// ErrNoSubmitControl is returned by Submit when none of the known
// submit-button patterns match anything on the page.
var ErrNoSubmitControl = errors.New("no submit control found")

// StartOptions configures the browser session
type StartOptions struct {
	Headless    bool
	Width       int
	Height      int
	PageTimeout time.Duration
}

// FormElement describes one interactive element discovered on the page.
// JSON tags match what gets embedded in planner prompts.
type FormElement struct {
	Tag         string `json:"tag"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	ID          string `json:"id,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Label       string `json:"label,omitempty"`
	Selector    string `json:"selector"`
}

// Session is the narrow browser surface the pipeline depends on.
// The rod implementation drives a real Chromium; FakeSession replaces
// it in tests.
type Session interface {
	Navigate(url string) error
	Scan() ([]FormElement, error)
	FillText(selector, value string) error
	SelectOption(selector, value string) error
	SetChecked(selector string, checked bool) error
	Click(selector string) error
	Describe(selector string) (FormElement, error)
	FormValues() (map[string]string, error)
	Submit() error
	Screenshot() ([]byte, error)
	Close()
}
