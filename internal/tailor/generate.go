package tailor

import (
	"context"

	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/language"
	"github.com/odiseo153/tailorcv/internal/prompts"
	"github.com/odiseo153/tailorcv/internal/textproc"
)

// GenerateInput carries everything the generation prompt is built from.
type GenerateInput struct {
	JobOffer      string
	CandidateInfo string
	TemplateHTML  string
	ExtraInfo     string
	CareerField   string
	PhotoURL      string
	Language      string
	Selector      *gateway.ModelSelector
}

// Generate produces the tailored HTML CV. The prompt encodes the template
// preservation policy when a template is present, and every absent optional
// input turns into an explicit negative instruction: leaving the instruction
// out entirely lets the model hallucinate content.
func (e *Engine) Generate(ctx context.Context, in GenerateInput, p *Progress) (string, error) {
	system := buildGenerateSystemPrompt(in)
	user := buildGenerateUserPrompt(in)

	p.progress(85)

	raw, err := e.gateway.Call(ctx, gateway.Request{
		Messages: []gateway.Message{
			{Role: gateway.RoleSystem, Content: system},
			{Role: gateway.RoleUser, Content: user},
		},
		Selector: in.Selector,
	})
	if err != nil {
		return "", &GenerateError{Cause: err}
	}

	p.progress(95)

	return textproc.StripFences(raw), nil
}

func buildGenerateSystemPrompt(in GenerateInput) string {
	var templatePolicy string
	if in.TemplateHTML != "" {
		templatePolicy = prompts.MustGet("generation.json", "template-policy-preserve")
	} else {
		templatePolicy = prompts.MustGet("generation.json", "template-policy-fresh")
	}

	var photo string
	if in.PhotoURL != "" {
		photo = prompts.Format(prompts.MustGet("generation.json", "photo-include"), map[string]string{
			"PhotoURL": in.PhotoURL,
		})
	} else {
		photo = prompts.MustGet("generation.json", "photo-exclude")
	}

	var extraInfo string
	if in.ExtraInfo != "" {
		extraInfo = prompts.Format(prompts.MustGet("generation.json", "extra-info-include"), map[string]string{
			"ExtraInfo": in.ExtraInfo,
		})
	} else {
		extraInfo = prompts.MustGet("generation.json", "extra-info-exclude")
	}

	var careerField string
	if in.CareerField != "" {
		careerField = prompts.Format(prompts.MustGet("generation.json", "career-field-include"), map[string]string{
			"CareerField": in.CareerField,
		})
	} else {
		careerField = prompts.MustGet("generation.json", "career-field-exclude")
	}

	return prompts.Format(prompts.MustGet("generation.json", "system"), map[string]string{
		"LanguageInstruction":    language.CVInstruction(in.Language),
		"TemplatePolicy":         templatePolicy,
		"PhotoInstruction":       photo,
		"ExtraInfoInstruction":   extraInfo,
		"CareerFieldInstruction": careerField,
	})
}

func buildGenerateUserPrompt(in GenerateInput) string {
	// The template and its preservation rules are repeated here on purpose:
	// redundancy between system and user prompt raises compliance probability
	// with a non-deterministic model.
	var templateBlock string
	if in.TemplateHTML != "" {
		templateBlock = prompts.Format(prompts.MustGet("generation.json", "template-block"), map[string]string{
			"TemplateHTML": in.TemplateHTML,
		})
	}

	return prompts.Format(prompts.MustGet("generation.json", "user"), map[string]string{
		"JobOffer":            in.JobOffer,
		"CandidateInfo":       in.CandidateInfo,
		"TemplateBlock":       templateBlock,
		"LanguageInstruction": language.CVInstruction(in.Language),
	})
}
