package tailor

import (
	"fmt"

	"github.com/odiseo153/tailorcv/internal/ingestion"
)

// ExtractError wraps any failure while extracting structured info from an
// uploaded file, naming the file kind that failed.
type ExtractError struct {
	Kind  ingestion.FileKind
	Cause error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("failed to process %s file: %v", e.Kind, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// TemplateError wraps a failure while turning a PDF into an HTML template.
type TemplateError struct {
	Cause error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("failed to generate template: %v", e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Stages of template resolution by id.
const (
	StageLookup = "registry lookup"
	StageFetch  = "binary fetch"
)

// TemplateResolutionError wraps a failure while resolving a template by id,
// naming which stage failed.
type TemplateResolutionError struct {
	TemplateID string
	Stage      string
	Cause      error
}

func (e *TemplateResolutionError) Error() string {
	return fmt.Sprintf("template %q: %s failed: %v", e.TemplateID, e.Stage, e.Cause)
}

func (e *TemplateResolutionError) Unwrap() error {
	return e.Cause
}

// GenerateError wraps any failure during CV generation. No partial HTML ever
// accompanies it.
type GenerateError struct {
	Cause error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("CV generation failed: %v", e.Cause)
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// AnalyzeError wraps a gateway failure during CV analysis. Malformed model
// output never produces this error; it degrades to a fallback result instead.
type AnalyzeError struct {
	Cause error
}

func (e *AnalyzeError) Error() string {
	return fmt.Sprintf("CV analysis failed: %v", e.Cause)
}

func (e *AnalyzeError) Unwrap() error {
	return e.Cause
}
