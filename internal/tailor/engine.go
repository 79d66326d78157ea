// Package tailor orchestrates the multi-stage prompt flow that turns job
// offers and candidate documents into tailored HTML résumés and structured
// CV analyses.
package tailor

import (
	"context"
	"io"
	"time"

	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/registry"
)

// PDFFetcher downloads a template's source PDF. Overridable for tests.
type PDFFetcher func(ctx context.Context, url string) (io.ReadCloser, error)

// Engine sequences gateway calls, post-processing and progress reporting.
// One Engine is safe for concurrent use: every operation is self-contained
// and holds no shared mutable state.
type Engine struct {
	gateway  gateway.Client
	registry registry.Registry
	fetchPDF PDFFetcher
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry wires a template registry for id-based template resolution.
func WithRegistry(r registry.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithPDFFetcher overrides the template binary downloader.
func WithPDFFetcher(f PDFFetcher) Option {
	return func(e *Engine) { e.fetchPDF = f }
}

// WithClock fixes the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine around a model gateway client. The client is injected
// rather than constructed here so tests can substitute doubles and no
// process-wide state is held.
func New(gw gateway.Client, opts ...Option) *Engine {
	e := &Engine{
		gateway:  gw,
		fetchPDF: registry.FetchPDF,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
