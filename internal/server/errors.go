package server

import (
	"errors"
	"net/http"

	"github.com/odiseo153/tailorcv/internal/registry"
	"github.com/odiseo153/tailorcv/internal/tailor"
)

// httpStatus maps engine errors onto HTTP status codes. Upstream model and
// template failures surface as 502 so clients can tell them apart from bugs
// in this service.
func httpStatus(err error) int {
	if errors.Is(err, registry.ErrNotFound) {
		return http.StatusNotFound
	}

	var (
		extractErr  *tailor.ExtractError
		templateErr *tailor.TemplateError
		resolveErr  *tailor.TemplateResolutionError
		generateErr *tailor.GenerateError
		analyzeErr  *tailor.AnalyzeError
	)
	switch {
	case errors.As(err, &extractErr),
		errors.As(err, &templateErr),
		errors.As(err, &resolveErr),
		errors.As(err, &generateErr),
		errors.As(err, &analyzeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
