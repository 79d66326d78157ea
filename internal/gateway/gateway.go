// Package gateway forwards role-tagged prompt messages to the model backend
// endpoint and returns the extracted completion text.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Message roles. By convention every call carries exactly one system message
// followed by one user message.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged prompt message. Order is significant.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelSelector names an explicit provider/model pair. When absent the backend
// chooses a default model with its own fallback chain.
type ModelSelector struct {
	Provider string `json:"provider,omitempty"`
	ModelID  string `json:"model,omitempty"`
}

// Attachment is a base64-encoded binary embedded alongside the messages,
// used for PDF and image extraction calls.
type Attachment struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Request carries one gateway call. Messages must be non-empty.
type Request struct {
	Messages    []Message
	Selector    *ModelSelector
	Attachment  *Attachment
	Temperature *float32
}

// Client is the narrow contract the orchestrator depends on. The production
// implementation is HTTPGateway; tests substitute stubs.
type Client interface {
	Call(ctx context.Context, req Request) (string, error)
}

// HTTPGateway issues one HTTP request per call to the backend model endpoint.
// No retry happens at this layer; fallback-model logic belongs to the backend.
type HTTPGateway struct {
	endpoint string
	client   *http.Client
}

// Option configures an HTTPGateway.
type Option func(*HTTPGateway)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGateway) { g.client = c }
}

// NewHTTPGateway creates a gateway pointed at the backend model endpoint URL.
func NewHTTPGateway(endpoint string, opts ...Option) *HTTPGateway {
	g := &HTTPGateway{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// wireRequest is the backend endpoint's request body.
type wireRequest struct {
	Messages    []Message   `json:"messages"`
	Provider    string      `json:"provider,omitempty"`
	Model       string      `json:"model,omitempty"`
	Attachment  *Attachment `json:"attachment,omitempty"`
	Temperature *float32    `json:"temperature,omitempty"`
}

// wireResponse is the backend endpoint's response body. On failure only Error
// is populated, together with a non-2xx status.
type wireResponse struct {
	Content string `json:"content"`
	Error   string `json:"error"`
}

// Call sends the messages to the backend and returns the completion text.
func (g *HTTPGateway) Call(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", &GatewayError{Message: "no messages to send"}
	}

	wire := wireRequest{
		Messages:    req.Messages,
		Attachment:  req.Attachment,
		Temperature: req.Temperature,
	}
	if req.Selector != nil {
		wire.Provider = req.Selector.Provider
		wire.Model = req.Selector.ModelID
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return "", &GatewayError{Message: "failed to encode request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &GatewayError{Message: "failed to build request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", &GatewayError{Message: "AI request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var payload wireResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := "AI request failed"
		if decodeErr == nil && payload.Error != "" {
			message = payload.Error
		}
		return "", &GatewayError{Message: message, Status: resp.StatusCode}
	}

	if decodeErr != nil {
		return "", &GatewayError{Message: "failed to decode response", Cause: decodeErr}
	}
	if payload.Content == "" {
		return "", &GatewayError{Message: fmt.Sprintf("empty completion from %s", g.endpoint)}
	}

	return payload.Content, nil
}
