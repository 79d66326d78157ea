// Package registry resolves CV template identifiers to their source PDFs.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned when no template exists for the given id.
var ErrNotFound = errors.New("template not found")

// Template is a registry record: an id plus a locator for the source PDF.
type Template struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	PDFURL string `json:"pdf_url"`
}

// Registry looks templates up by id. Implementations: HTTPRegistry for a
// remote registry service, PostgresRegistry for a self-hosted table.
type Registry interface {
	Get(ctx context.Context, id string) (Template, error)
}

// FetchError reports a failed download of a template's PDF binary.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch template binary from %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// FetchPDF downloads the template's PDF binary.
func FetchPDF(ctx context.Context, url string) (io.ReadCloser, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &FetchError{URL: url, Cause: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	return resp.Body, nil
}
