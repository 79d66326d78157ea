package tailor

import (
	"context"
	"time"

	"github.com/odiseo153/tailorcv/internal/analysis"
	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/language"
	"github.com/odiseo153/tailorcv/internal/prompts"
	"github.com/odiseo153/tailorcv/internal/textproc"
)

// AnalyzeInput is the request for Analyze.
type AnalyzeInput struct {
	CVText   string
	JobTitle string
	Industry string
	Language string
	Selector *gateway.ModelSelector
}

// Analyze scores a CV against a role and returns structured suggestions.
//
// Malformed model output never fails the operation: the text goes through a
// two-level recovery chain (strict parse, then repair and re-parse) and
// degrades to a neutral fallback result when both levels fail, because the UI
// needs something renderable more than it needs an exception. Only a gateway
// failure raises, since then there is no response text at all; that asymmetry
// is deliberate, so callers can tell a model outage from a low-confidence
// analysis.
func (e *Engine) Analyze(ctx context.Context, in AnalyzeInput, p *Progress) (*analysis.Result, error) {
	now := e.now()

	system := prompts.Format(prompts.MustGet("analysis.json", "system"), map[string]string{
		"LanguageInstruction": language.Instruction(in.Language),
		"Timestamp":           now.UTC().Format(time.RFC3339),
		"JobTitle":            in.JobTitle,
		"Industry":            in.Industry,
	})
	user := prompts.Format(prompts.MustGet("analysis.json", "user"), map[string]string{
		"CVText":   in.CVText,
		"JobTitle": in.JobTitle,
		"Industry": in.Industry,
	})

	p.progress(25)

	raw, err := e.gateway.Call(ctx, gateway.Request{
		Messages: []gateway.Message{
			{Role: gateway.RoleSystem, Content: system},
			{Role: gateway.RoleUser, Content: user},
		},
		Selector: in.Selector,
	})
	if err != nil {
		return nil, &AnalyzeError{Cause: err}
	}

	p.progress(75)
	text := textproc.StripFences(raw)
	p.progress(90)

	result, parseErr := analysis.Parse(text)
	if parseErr != nil {
		result, parseErr = analysis.Parse(textproc.RepairJSON(text))
	}
	if parseErr != nil {
		result = analysis.Fallback(in.JobTitle, in.Industry, now)
	}

	p.progress(100)

	return result, nil
}
