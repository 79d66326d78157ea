package tailor

import (
	"context"
	"errors"
	"io"

	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/ingestion"
	"github.com/odiseo153/tailorcv/internal/prompts"
	"github.com/odiseo153/tailorcv/internal/registry"
	"github.com/odiseo153/tailorcv/internal/textproc"
)

// templateTemperature keeps template reproduction close to deterministic.
// Structural fidelity matters more than variation here.
const templateTemperature float32 = 0.1

// ExtractTemplate asks the model to reproduce the visual layout of a PDF as
// a self-contained HTML template with placeholder tokens.
func (e *Engine) ExtractTemplate(ctx context.Context, pdf io.Reader) (string, error) {
	att, err := ingestion.EncodeFile(pdf, ingestion.KindPDF)
	if err != nil {
		return "", &TemplateError{Cause: err}
	}

	temp := templateTemperature
	raw, err := e.gateway.Call(ctx, gateway.Request{
		Messages: []gateway.Message{
			{Role: gateway.RoleSystem, Content: prompts.MustGet("extraction.json", "extract-template-system")},
			{Role: gateway.RoleUser, Content: prompts.MustGet("extraction.json", "extract-template-user")},
		},
		Attachment:  &att,
		Temperature: &temp,
	})
	if err != nil {
		return "", &TemplateError{Cause: err}
	}

	return textproc.StripFences(raw), nil
}

// ResolveTemplate looks a template up in the registry, downloads its source
// PDF and extracts the HTML template from it.
func (e *Engine) ResolveTemplate(ctx context.Context, templateID string) (string, error) {
	if e.registry == nil {
		return "", &TemplateResolutionError{
			TemplateID: templateID,
			Stage:      StageLookup,
			Cause:      errors.New("no template registry configured"),
		}
	}

	tpl, err := e.registry.Get(ctx, templateID)
	if err != nil {
		return "", &TemplateResolutionError{TemplateID: templateID, Stage: StageLookup, Cause: err}
	}

	pdf, err := e.fetchPDF(ctx, tpl.PDFURL)
	if err != nil {
		return "", &TemplateResolutionError{TemplateID: templateID, Stage: StageFetch, Cause: err}
	}
	defer func() { _ = pdf.Close() }()

	return e.ExtractTemplate(ctx, pdf)
}

// IsTemplateNotFound reports whether err means the template id does not exist.
func IsTemplateNotFound(err error) bool {
	return errors.Is(err, registry.ErrNotFound)
}
