package tailor

import (
	"context"
	"io"

	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/ingestion"
)

// InputKind declares what the primary input is.
type InputKind string

// Supported input kinds.
const (
	InputText  InputKind = "text"
	InputImage InputKind = "image"
	InputPDF   InputKind = "pdf"
)

// CreateInput is the full request for CreateCV.
type CreateInput struct {
	// Data is the raw job-offer text when Kind is InputText.
	Data string
	// File is the source document when Kind is InputImage or InputPDF.
	File io.Reader
	Kind InputKind

	// StructuredInfo optionally overrides the candidate info for text inputs.
	StructuredInfo string

	// Template sources, highest precedence first. Exactly one branch is taken.
	TemplateFile io.Reader
	TemplateID   string
	TemplateHTML string

	ExtraInfo   string
	CareerField string
	PhotoURL    string
	Language    string
	Selector    *gateway.ModelSelector
}

// Result is the outcome of CreateCV.
type Result struct {
	HTML string `json:"html"`
}

// CreateCV is the top-level composition: it obtains candidate info, resolves
// the template through a four-way branch (uploaded template file, registry
// id, inline HTML, none), and ends in Generate. Nothing is persisted, so a
// failed run leaves nothing to roll back; re-invoking starts fresh.
func (e *Engine) CreateCV(ctx context.Context, in CreateInput, p *Progress) (Result, error) {
	var jobOffer, candidateInfo string

	switch in.Kind {
	case InputImage, InputPDF:
		kind := ingestion.KindImage
		if in.Kind == InputPDF {
			kind = ingestion.KindPDF
		}
		extracted, err := e.ExtractInfo(ctx, in.File, kind, p)
		if err != nil {
			return Result{}, err
		}
		// The uploaded document serves both roles: its extracted content is
		// the job offer text and the candidate info for the generation prompt.
		jobOffer = extracted
		candidateInfo = extracted
	default:
		jobOffer = in.Data
		candidateInfo = in.StructuredInfo
		if candidateInfo == "" {
			candidateInfo = in.Data
		}
	}

	templateHTML, err := e.resolveTemplateSource(ctx, in, p)
	if err != nil {
		return Result{}, err
	}

	html, err := e.Generate(ctx, GenerateInput{
		JobOffer:      jobOffer,
		CandidateInfo: candidateInfo,
		TemplateHTML:  templateHTML,
		ExtraInfo:     in.ExtraInfo,
		CareerField:   in.CareerField,
		PhotoURL:      in.PhotoURL,
		Language:      in.Language,
		Selector:      in.Selector,
	}, p)
	if err != nil {
		return Result{}, err
	}

	return Result{HTML: html}, nil
}

// resolveTemplateSource evaluates the four mutually exclusive template
// branches in precedence order: uploaded file beats registry id beats inline
// HTML beats no template. The non-model branches fire the template milestones
// immediately.
func (e *Engine) resolveTemplateSource(ctx context.Context, in CreateInput, p *Progress) (string, error) {
	var templateHTML string

	switch {
	case in.TemplateFile != nil:
		extracted, err := e.ExtractTemplate(ctx, in.TemplateFile)
		if err != nil {
			return "", err
		}
		templateHTML = extracted

	case in.TemplateID != "":
		resolved, err := e.ResolveTemplate(ctx, in.TemplateID)
		if err != nil {
			return "", err
		}
		templateHTML = resolved

	case in.TemplateHTML != "":
		templateHTML = in.TemplateHTML

	default:
		// No template: generation designs a fresh layout.
	}

	p.templateProcessed()
	p.progress(75)

	return templateHTML, nil
}
