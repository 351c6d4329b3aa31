package ai

import (
	"encoding/json"
	"fmt"

	"github.com/mendrika-alma/formagent/internal/browser"
	"github.com/mendrika-alma/formagent/internal/data"
)

const mappingSystemPrompt = `You are a web form automation assistant. Given the interactive elements found on a form page and a flat data record, you match data fields to the appropriate form inputs.

You will receive:
1. A JSON array of form elements, each with its tag, type, name, id, placeholder, label text, and a CSS selector
2. A JSON object of data fields to fill in

Output a single JSON object where each key is a data field name from the record and each value is the "selector" string of the form element that field belongs in.

Rules:
- Use only selectors that appear in the provided element list
- Omit data fields that have no matching form element
- Omit data fields whose value is empty
- Do NOT map any field that would indicate signing the form as a representative of any entity

Respond ONLY with the JSON object, no explanation or markdown.`

const reviewSystemPrompt = `You are a web form reviewer. You analyze the values currently in a form before it is submitted, checking them for completeness and compliance with a stated policy.

You will receive:
1. A JSON object of the form's current values
2. A JSON object of the data the user intended to enter
3. A policy statement the submission must comply with

Output a single JSON object of the form:
{"verdict": "pass", "notes": "..."}
or
{"verdict": "fail", "notes": "reason the form must not be submitted"}

Use "fail" if required fields look empty, values contradict the intended data, or anything violates the policy.

Respond ONLY with the JSON object, no explanation or markdown.`

func buildMappingPrompt(elements []browser.FormElement, record data.Record) (string, error) {
	elementsJSON, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal form elements: %w", err)
	}
	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal data record: %w", err)
	}
	return "Form elements:\n" + string(elementsJSON) + "\n\nData record:\n" + string(recordJSON), nil
}

func buildReviewPrompt(filled map[string]string, record data.Record, policy string) (string, error) {
	filledJSON, err := json.MarshalIndent(filled, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal filled values: %w", err)
	}
	recordJSON, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal data record: %w", err)
	}
	return "Current form values:\n" + string(filledJSON) +
		"\n\nIntended data:\n" + string(recordJSON) +
		"\n\nPolicy: " + policy, nil
}
