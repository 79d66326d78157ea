package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPRegistry talks to a remote template registry service.
type HTTPRegistry struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRegistry creates a registry client for the given base URL.
func NewHTTPRegistry(baseURL string) *HTTPRegistry {
	return &HTTPRegistry{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Get fetches the template record for id.
func (r *HTTPRegistry) Get(ctx context.Context, id string) (Template, error) {
	url := fmt.Sprintf("%s/templates/%s", r.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Template{}, fmt.Errorf("registry request failed: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Template{}, fmt.Errorf("registry unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Template{}, fmt.Errorf("template %q: %w", id, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return Template{}, fmt.Errorf("registry returned status %d for template %q", resp.StatusCode, id)
	}

	var tpl Template
	if err := json.NewDecoder(resp.Body).Decode(&tpl); err != nil {
		return Template{}, fmt.Errorf("failed to decode registry response: %w", err)
	}
	if tpl.PDFURL == "" {
		return Template{}, fmt.Errorf("registry record for %q has no pdf_url", id)
	}

	return tpl, nil
}
