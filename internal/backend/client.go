package backend

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/odiseo153/tailorcv/internal/gateway"
)

// Service implements gateway.Client directly against Gemini, so the engine
// can run with an in-process backend or behind the HTTP endpoint.
type Service struct {
	client *genai.Client
	config *Config
}

// New creates a backend service. The API key comes from configuration once;
// the client is reused across requests.
func New(ctx context.Context, cfg *Config, apiKey string) (*Service, error) {
	if apiKey == "" {
		return nil, &BackendError{Message: "API key is required"}
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &BackendError{Message: "failed to create Gemini client", Cause: err}
	}

	return &Service{client: client, config: cfg}, nil
}

// Close releases the underlying client.
func (s *Service) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Call generates a completion for the request. With an explicit selector only
// that model is tried; otherwise the configured chain is walked until one
// model answers.
func (s *Service) Call(ctx context.Context, req gateway.Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", &BackendError{Message: "no messages to send"}
	}

	models, err := s.chooseModels(req.Selector)
	if err != nil {
		return "", err
	}

	system, userParts, err := splitRequest(req)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, name := range models {
		out, genErr := s.generate(ctx, name, system, userParts, req.Temperature)
		if genErr == nil {
			return out, nil
		}
		lastErr = genErr
	}

	return "", lastErr
}

// chooseModels resolves which models to try, in order.
func (s *Service) chooseModels(selector *gateway.ModelSelector) ([]string, error) {
	if selector != nil && selector.Provider != "" {
		switch strings.ToLower(selector.Provider) {
		case ProviderGemini, ProviderGoogle:
		default:
			return nil, &BackendError{Message: fmt.Sprintf("unsupported provider %q", selector.Provider)}
		}
	}

	if selector != nil && selector.ModelID != "" {
		// Explicit choice: no fallback, the caller asked for this model.
		return []string{selector.ModelID}, nil
	}

	if len(s.config.Chain) == 0 {
		return nil, &BackendError{Message: "no models configured"}
	}
	return s.config.Chain, nil
}

// splitRequest separates the system instruction from the user parts and
// decodes any inline attachment.
func splitRequest(req gateway.Request) (string, []genai.Part, error) {
	var system strings.Builder
	var parts []genai.Part

	for _, msg := range req.Messages {
		switch msg.Role {
		case gateway.RoleSystem:
			if system.Len() > 0 {
				system.WriteString("\n\n")
			}
			system.WriteString(msg.Content)
		default:
			parts = append(parts, genai.Text(msg.Content))
		}
	}

	if req.Attachment != nil {
		data, err := base64.StdEncoding.DecodeString(req.Attachment.Data)
		if err != nil {
			return "", nil, &BackendError{Message: "invalid attachment encoding", Cause: err}
		}
		parts = append(parts, genai.Blob{MIMEType: req.Attachment.MIMEType, Data: data})
	}

	if len(parts) == 0 {
		return "", nil, &BackendError{Message: "request has no user content"}
	}

	return system.String(), parts, nil
}

func (s *Service) generate(ctx context.Context, modelName, system string, parts []genai.Part, temperature *float32) (string, error) {
	model := s.client.GenerativeModel(modelName)

	temp := s.config.DefaultTemperature
	if temperature != nil {
		temp = *temperature
	}
	model.SetTemperature(temp)

	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", &BackendError{Model: modelName, Message: "generation failed", Cause: err}
	}

	return extractText(modelName, resp)
}

// extractText pulls the concatenated text parts out of a Gemini response.
func extractText(modelName string, resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &BackendError{Model: modelName, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &BackendError{Model: modelName, Message: "no content in response"}
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", &BackendError{Model: modelName, Message: "no text parts in response"}
	}
	return sb.String(), nil
}
