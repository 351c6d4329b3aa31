package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodSession drives a real Chromium instance through go-rod.
type RodSession struct {
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
}

// Start launches Chromium and opens a blank page sized per opts.
func Start(opts StartOptions) (*RodSession, error) {
	if opts.Width == 0 {
		opts.Width = 1920
	}
	if opts.Height == 0 {
		opts.Height = 1080
	}
	if opts.PageTimeout == 0 {
		opts.PageTimeout = 30 * time.Second
	}

	path, _ := launcher.LookPath()
	u, err := launcher.New().Bin(path).Headless(opts.Headless).Launch()
	if err != nil {
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("browser connect failed: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("open page failed: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		b.Close()
		return nil, fmt.Errorf("set viewport failed: %w", err)
	}

	return &RodSession{browser: b, page: page, timeout: opts.PageTimeout}, nil
}

// Navigate loads the URL and waits for the page to settle.
func (s *RodSession) Navigate(url string) error {
	p := s.page.Timeout(s.timeout)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrPageLoadTimeout, url)
		}
		return fmt.Errorf("wait for load of %s: %w", url, err)
	}
	// Don't hang on persistent connections (WebSockets, polling, etc.)
	s.page.Timeout(5 * time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()
	return nil
}

// Close releases the browser process.
func (s *RodSession) Close() {
	if s.page != nil {
		s.page.Close()
	}
	if s.browser != nil {
		s.browser.Close()
	}
}

// element resolves a selector without waiting for it to appear.
func (s *RodSession) element(selector string) (*rod.Element, error) {
	has, el, err := s.page.Has(selector)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", selector, err)
	}
	if !has {
		return nil, fmt.Errorf("element not found: %s", selector)
	}
	return el, nil
}

// FillText clears the element and types the value into it.
func (s *RodSession) FillText(selector, value string) error {
	el, err := s.element(selector)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("focus %s: %w", selector, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("type into %s: %w", selector, err)
	}
	return nil
}

// SelectOption picks a dropdown option by visible text, falling back to
// matching the option value attribute.
func (s *RodSession) SelectOption(selector, value string) error {
	el, err := s.element(selector)
	if err != nil {
		return err
	}
	if err := el.Select([]string{value}, true, rod.SelectorTypeText); err == nil {
		return nil
	}
	_, err = el.Eval(`(v) => {
		for (const opt of this.options) {
			if (opt.value === v) {
				this.value = v;
				this.dispatchEvent(new Event('change', { bubbles: true }));
				return true;
			}
		}
		throw new Error('no option with value ' + v);
	}`, value)
	if err != nil {
		return fmt.Errorf("select %q in %s: %w", value, selector, err)
	}
	return nil
}

// SetChecked toggles a checkbox or radio into the desired state.
func (s *RodSession) SetChecked(selector string, checked bool) error {
	el, err := s.element(selector)
	if err != nil {
		return err
	}
	current, err := el.Property("checked")
	if err != nil {
		return fmt.Errorf("read checked state of %s: %w", selector, err)
	}
	if current.Bool() == checked {
		return nil
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("toggle %s: %w", selector, err)
	}
	return nil
}

// Click clicks the element once.
func (s *RodSession) Click(selector string) error {
	el, err := s.element(selector)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// Describe reports the tag and type of a live element, so the filler can
// act on selectors that were not part of the original scan.
func (s *RodSession) Describe(selector string) (FormElement, error) {
	el, err := s.element(selector)
	if err != nil {
		return FormElement{}, err
	}
	obj, err := el.Eval(`() => ({
		tag: this.tagName.toLowerCase(),
		type: (this.getAttribute('type') || '').toLowerCase(),
		name: this.name || '',
		id: this.id || ''
	})`)
	if err != nil {
		return FormElement{}, fmt.Errorf("describe %s: %w", selector, err)
	}
	return FormElement{
		Tag:      obj.Value.Get("tag").Str(),
		Type:     obj.Value.Get("type").Str(),
		Name:     obj.Value.Get("name").Str(),
		ID:       obj.Value.Get("id").Str(),
		Selector: selector,
	}, nil
}

// FormValues reads back the current value of every named form element,
// keyed by id (or name). Checkboxes and radios report "true"/"false".
func (s *RodSession) FormValues() (map[string]string, error) {
	obj, err := s.page.Eval(`() => {
		const values = {};
		document.querySelectorAll('input, select, textarea').forEach(el => {
			const key = el.id || el.name;
			if (!key) return;
			const type = (el.getAttribute('type') || '').toLowerCase();
			if (type === 'hidden') return;
			if (type === 'checkbox') {
				values[key] = el.checked ? 'true' : 'false';
			} else if (type === 'radio') {
				if (el.checked) values[key] = 'true';
			} else {
				values[key] = el.value;
			}
		});
		return values;
	}`)
	if err != nil {
		return nil, fmt.Errorf("read form values: %w", err)
	}
	values := make(map[string]string)
	for k, v := range obj.Value.Map() {
		values[k] = v.Str()
	}
	return values, nil
}

// submitSelectors are tried in order when looking for the submit control.
var submitSelectors = []string{
	"button[type='submit']",
	"input[type='submit']",
}

// submitTextPatterns match button text when no typed submit control exists.
var submitTextPatterns = []string{"(?i)submit", "(?i)send"}

// Submit locates the form's submit control and clicks it once.
func (s *RodSession) Submit() error {
	for _, sel := range submitSelectors {
		has, el, err := s.page.Has(sel)
		if err != nil {
			return fmt.Errorf("lookup %s: %w", sel, err)
		}
		if has {
			if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
				return fmt.Errorf("click submit %s: %w", sel, err)
			}
			return nil
		}
	}
	for _, pattern := range submitTextPatterns {
		has, el, err := s.page.HasR("button", pattern)
		if err != nil {
			return fmt.Errorf("lookup button matching %s: %w", pattern, err)
		}
		if has {
			if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
				return fmt.Errorf("click submit button: %w", err)
			}
			return nil
		}
	}
	return ErrNoSubmitControl
}

// Screenshot captures the current viewport as PNG.
func (s *RodSession) Screenshot() ([]byte, error) {
	data, err := s.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return data, nil
}
