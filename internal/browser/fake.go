package browser

import "fmt"

// FakeSession is an in-memory Session for tests. It records every
// mutating call and resolves selectors against the configured Elements.
type FakeSession struct {
	Elements  []FormElement
	ScanErr   error
	ValuesRes map[string]string

	NavigatedURL string
	Fills        map[string]string
	Selections   map[string]string
	Checks       map[string]bool
	Clicks       []string
	SubmitClicks int
	SubmitErr    error
	Shots        int
	ShotData     []byte
	Closed       bool
}

func NewFakeSession(elements ...FormElement) *FakeSession {
	return &FakeSession{
		Elements:   elements,
		Fills:      make(map[string]string),
		Selections: make(map[string]string),
		Checks:     make(map[string]bool),
		ShotData:   []byte("png"),
	}
}

func (f *FakeSession) Navigate(url string) error {
	f.NavigatedURL = url
	return nil
}

func (f *FakeSession) Scan() ([]FormElement, error) {
	if f.ScanErr != nil {
		return nil, f.ScanErr
	}
	return f.Elements, nil
}

func (f *FakeSession) find(selector string) (FormElement, bool) {
	for _, el := range f.Elements {
		if el.Selector == selector {
			return el, true
		}
	}
	return FormElement{}, false
}

func (f *FakeSession) FillText(selector, value string) error {
	if _, ok := f.find(selector); !ok {
		return fmt.Errorf("element not found: %s", selector)
	}
	f.Fills[selector] = value
	return nil
}

func (f *FakeSession) SelectOption(selector, value string) error {
	if _, ok := f.find(selector); !ok {
		return fmt.Errorf("element not found: %s", selector)
	}
	f.Selections[selector] = value
	return nil
}

func (f *FakeSession) SetChecked(selector string, checked bool) error {
	if _, ok := f.find(selector); !ok {
		return fmt.Errorf("element not found: %s", selector)
	}
	f.Checks[selector] = checked
	return nil
}

func (f *FakeSession) Click(selector string) error {
	if _, ok := f.find(selector); !ok {
		return fmt.Errorf("element not found: %s", selector)
	}
	f.Clicks = append(f.Clicks, selector)
	return nil
}

func (f *FakeSession) Describe(selector string) (FormElement, error) {
	el, ok := f.find(selector)
	if !ok {
		return FormElement{}, fmt.Errorf("element not found: %s", selector)
	}
	return el, nil
}

func (f *FakeSession) FormValues() (map[string]string, error) {
	if f.ValuesRes != nil {
		return f.ValuesRes, nil
	}
	values := make(map[string]string)
	for sel, v := range f.Fills {
		values[sel] = v
	}
	return values, nil
}

func (f *FakeSession) Submit() error {
	if f.SubmitErr != nil {
		return f.SubmitErr
	}
	f.SubmitClicks++
	return nil
}

func (f *FakeSession) Screenshot() ([]byte, error) {
	f.Shots++
	return f.ShotData, nil
}

func (f *FakeSession) Close() {
	f.Closed = true
}
