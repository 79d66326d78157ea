// Package textproc normalizes raw model output before it is parsed or rendered.
package textproc

import (
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// blankRunPattern matches runs of three or more newlines.
var blankRunPattern = regexp.MustCompile(`\n{3,}`)

// StripFences removes markdown code-fence wrappers from a model response and
// collapses runs of 3+ blank lines into a single blank line. Models wrap output
// in ```json / ```html blocks even when instructed not to. The function is
// idempotent: stripping already-stripped text is a no-op.
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the opening fence line (json, html, ...).
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := strings.TrimSpace(text[:idx])
			if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {<[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	return blankRunPattern.ReplaceAllString(text, "\n\n")
}

// RepairJSON runs near-valid JSON text through a tolerant fixer that recovers
// from trailing commas, missing quotes, single quotes and similar damage.
// It never fails: when the text cannot be repaired the input is returned
// unchanged and the caller's own parse attempt decides what happens next.
func RepairJSON(text string) string {
	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return text
	}
	return repaired
}
