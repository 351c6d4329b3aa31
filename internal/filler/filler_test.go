package filler

import (
	"testing"

	"github.com/mendrika-alma/formagent/internal/ai"
	"github.com/mendrika-alma/formagent/internal/browser"
	"github.com/mendrika-alma/formagent/internal/data"
	"github.com/stretchr/testify/assert"
)

func textInput(id string) browser.FormElement {
	return browser.FormElement{Tag: "input", Type: "text", ID: id, Selector: "#" + id}
}

func TestFillRoundTrip(t *testing.T) {
	sess := browser.NewFakeSession(
		textInput("input-name"),
		textInput("input-email"),
		textInput("input-phone"),
	)
	mapping := ai.FieldMapping{"name": "#input-name", "email": "#input-email"}
	record := data.Record{"name": "Jane Doe", "email": "jane@example.com"}

	report := Fill(sess, sess.Elements, mapping, record)

	assert.Equal(t, map[string]string{
		"#input-name":  "Jane Doe",
		"#input-email": "jane@example.com",
	}, sess.Fills)
	assert.Empty(t, sess.Selections)
	assert.Empty(t, sess.Checks)
	assert.Empty(t, sess.Clicks)
	assert.Len(t, report.Filled, 2)
	assert.Empty(t, report.Skipped)
}

func TestFillSkipsUnknownSelector(t *testing.T) {
	sess := browser.NewFakeSession(textInput("input-email"))
	mapping := ai.FieldMapping{
		"name":  "#does-not-exist",
		"email": "#input-email",
	}
	record := data.Record{"name": "Jane Doe", "email": "jane@example.com"}

	report := Fill(sess, sess.Elements, mapping, record)

	assert.Equal(t, map[string]string{"#input-email": "jane@example.com"}, sess.Fills)
	assert.Equal(t, []string{"name"}, report.Skipped)
	assert.Len(t, report.Filled, 1)
}

func TestFillEmptyMapping(t *testing.T) {
	sess := browser.NewFakeSession(textInput("input-name"))

	report := Fill(sess, sess.Elements, ai.FieldMapping{}, data.Record{"name": "Jane"})

	assert.Empty(t, sess.Fills)
	assert.Empty(t, report.Filled)
	assert.Empty(t, report.Skipped)
}

func TestFillTypeDispatch(t *testing.T) {
	sess := browser.NewFakeSession(
		browser.FormElement{Tag: "input", Type: "checkbox", ID: "agree", Selector: "#agree"},
		browser.FormElement{Tag: "input", Type: "radio", ID: "opt-yes", Selector: "#opt-yes"},
		browser.FormElement{Tag: "select", ID: "state", Selector: "#state"},
		browser.FormElement{Tag: "textarea", ID: "notes", Selector: "#notes"},
	)
	mapping := ai.FieldMapping{
		"agree": "#agree",
		"yes":   "#opt-yes",
		"state": "#state",
		"notes": "#notes",
	}
	record := data.Record{
		"agree": "Y",
		"yes":   true,
		"state": "Massachusetts",
		"notes": "licensed in NY as well",
	}

	report := Fill(sess, sess.Elements, mapping, record)

	assert.Equal(t, map[string]bool{"#agree": true}, sess.Checks)
	assert.Equal(t, []string{"#opt-yes"}, sess.Clicks)
	assert.Equal(t, map[string]string{"#state": "Massachusetts"}, sess.Selections)
	assert.Equal(t, map[string]string{"#notes": "licensed in NY as well"}, sess.Fills)
	assert.Len(t, report.Filled, 4)
	assert.Equal(t, "true", report.Filled["#agree"])
}

func TestFillLeavesRadioAloneWhenFalsy(t *testing.T) {
	sess := browser.NewFakeSession(
		browser.FormElement{Tag: "input", Type: "radio", ID: "opt-no", Selector: "#opt-no"},
	)

	report := Fill(sess, sess.Elements, ai.FieldMapping{"no": "#opt-no"}, data.Record{"no": "no"})

	assert.Empty(t, sess.Clicks)
	assert.Empty(t, report.Filled)
	assert.Empty(t, report.Skipped)
}

func TestFillSkipsEmptyValues(t *testing.T) {
	sess := browser.NewFakeSession(textInput("input-fax"))

	report := Fill(sess, sess.Elements, ai.FieldMapping{"fax": "#input-fax"}, data.Record{"fax": ""})

	assert.Empty(t, sess.Fills)
	assert.Empty(t, report.Filled)
	assert.Empty(t, report.Skipped)
}

func TestFillSkipsKeysMissingFromRecord(t *testing.T) {
	sess := browser.NewFakeSession(textInput("input-name"))

	report := Fill(sess, sess.Elements, ai.FieldMapping{"nickname": "#input-name"}, data.Record{})

	assert.Empty(t, sess.Fills)
	assert.Equal(t, []string{"nickname"}, report.Skipped)
}
