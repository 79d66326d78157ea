package textproc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "html code block",
			input:    "```html\n<div class=\"cv\">x</div>\n```",
			expected: `<div class="cv">x</div>`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain text untouched",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n<p>hi</p>\n ",
			expected: "<p>hi</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripFences(tt.input))
		})
	}
}

func TestStripFences_Idempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\": 1}\n```",
		"```html\n<section>\n\n\n\n<p>x</p>\n</section>\n```",
		"plain text",
		"A\n\n\n\nB",
		"",
	}

	for _, input := range inputs {
		once := StripFences(input)
		assert.Equal(t, once, StripFences(once), "input %q", input)
	}
}

func TestStripFences_CollapsesBlankRuns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "four newlines collapse to two", input: "A\n\n\n\nB", expected: "A\n\nB"},
		{name: "three newlines collapse to two", input: "A\n\n\nB", expected: "A\n\nB"},
		{name: "two newlines untouched", input: "A\n\nB", expected: "A\n\nB"},
		{name: "single newline untouched", input: "A\nB", expected: "A\nB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripFences(tt.input))
		})
	}
}

func TestRepairJSON_TrailingComma(t *testing.T) {
	repaired := RepairJSON(`{"skills": ["go", "sql",]}`)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &out))
	assert.Equal(t, []any{"go", "sql"}, out["skills"])
}

func TestRepairJSON_SingleQuotes(t *testing.T) {
	repaired := RepairJSON(`{'name': 'Ada'}`)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &out))
	assert.Equal(t, "Ada", out["name"])
}

func TestRepairJSON_NeverPanicsOnGarbage(t *testing.T) {
	// The repair step must not fail even when the input is hopeless;
	// the caller's parse attempt is what decides success.
	assert.NotPanics(t, func() {
		_ = RepairJSON("not json at all {{{")
	})
}
