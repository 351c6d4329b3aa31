// Package filler writes a planned field mapping into the live page,
// choosing the interaction that fits each element's type. Individual
// fields that cannot be located or acted on are skipped; the rest of the
// mapping is still attempted.
package filler

import (
	"sort"

	"github.com/mendrika-alma/formagent/internal/ai"
	"github.com/mendrika-alma/formagent/internal/browser"
	"github.com/mendrika-alma/formagent/internal/data"
	"github.com/rs/zerolog/log"
)

// Report summarizes what the filler did.
type Report struct {
	// Filled maps each written selector to the value it received.
	Filled map[string]string
	// Skipped lists the data keys whose entries could not be applied.
	Skipped []string
}

// Fill applies the mapping to the session. Entries are processed in
// sorted key order so runs are deterministic.
func Fill(sess browser.Session, elements []browser.FormElement, mapping ai.FieldMapping, record data.Record) *Report {
	report := &Report{Filled: make(map[string]string)}

	bySelector := make(map[string]browser.FormElement, len(elements))
	for _, el := range elements {
		bySelector[el.Selector] = el
	}

	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		selector := mapping[key]

		value, ok := record[key]
		if !ok {
			log.Warn().Str("key", key).Msg("mapping references a key missing from the data record, skipping")
			report.Skipped = append(report.Skipped, key)
			continue
		}

		text := data.String(value)
		if text == "" {
			log.Debug().Str("key", key).Msg("empty value, skipping")
			continue
		}

		el, known := bySelector[selector]
		if !known {
			// The planner picked a selector outside the scan; ask the
			// live page before giving up on the entry.
			described, err := sess.Describe(selector)
			if err != nil {
				log.Warn().Str("key", key).Str("selector", selector).Err(err).Msg("could not locate element, skipping")
				report.Skipped = append(report.Skipped, key)
				continue
			}
			el = described
		}

		// A radio button is only ever clicked on, never cleared.
		if el.Type == "radio" && !data.Truthy(value) {
			log.Debug().Str("key", key).Msg("radio value is not affirmative, leaving untouched")
			continue
		}

		if err := apply(sess, el, selector, value, text); err != nil {
			log.Warn().Str("key", key).Str("selector", selector).Err(err).Msg("could not fill element, skipping")
			report.Skipped = append(report.Skipped, key)
			continue
		}

		report.Filled[selector] = recordedValue(el, value, text)
		log.Info().Str("key", key).Str("selector", selector).Msg("filled field")
	}

	return report
}

// apply performs the element-type-appropriate interaction.
func apply(sess browser.Session, el browser.FormElement, selector string, value any, text string) error {
	switch {
	case el.Type == "checkbox":
		return sess.SetChecked(selector, data.Truthy(value))
	case el.Type == "radio":
		return sess.Click(selector)
	case el.Tag == "select":
		return sess.SelectOption(selector, text)
	default:
		return sess.FillText(selector, text)
	}
}

func recordedValue(el browser.FormElement, value any, text string) string {
	if el.Type == "checkbox" || el.Type == "radio" {
		if data.Truthy(value) {
			return "true"
		}
		return "false"
	}
	return text
}
