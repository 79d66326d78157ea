package tailor

import (
	"context"
	"io"

	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/ingestion"
	"github.com/odiseo153/tailorcv/internal/prompts"
	"github.com/odiseo153/tailorcv/internal/textproc"
)

// ExtractInfo reads an uploaded CV or job document (PDF or image), asks the
// model for its content as structured JSON, and returns the repaired JSON
// text. The text is deliberately returned unparsed: the caller decides what
// shape to read out of it.
func (e *Engine) ExtractInfo(ctx context.Context, file io.Reader, kind ingestion.FileKind, p *Progress) (string, error) {
	p.progress(10)

	att, err := ingestion.EncodeFile(file, kind)
	if err != nil {
		return "", &ExtractError{Kind: kind, Cause: err}
	}
	p.progress(25)

	raw, err := e.gateway.Call(ctx, gateway.Request{
		Messages: []gateway.Message{
			{Role: gateway.RoleSystem, Content: prompts.MustGet("extraction.json", "extract-cv-info-system")},
			{Role: gateway.RoleUser, Content: prompts.MustGet("extraction.json", "extract-cv-info-user")},
		},
		Attachment: &att,
	})
	if err != nil {
		return "", &ExtractError{Kind: kind, Cause: err}
	}

	text := textproc.RepairJSON(textproc.StripFences(raw))

	p.infoProcessed()
	p.progress(50)

	return text, nil
}
