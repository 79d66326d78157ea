package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func systemUserPair() []Message {
	return []Message{
		{Role: RoleSystem, Content: "you are a test"},
		{Role: RoleUser, Content: "hello"},
	}
}

func TestHTTPGateway_Success(t *testing.T) {
	var received wireRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(wireResponse{Content: "completion text"})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	out, err := g.Call(context.Background(), Request{Messages: systemUserPair()})

	require.NoError(t, err)
	assert.Equal(t, "completion text", out)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, RoleSystem, received.Messages[0].Role)
	assert.Equal(t, RoleUser, received.Messages[1].Role)
}

func TestHTTPGateway_ForwardsSelectorAndTemperature(t *testing.T) {
	var received wireRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(wireResponse{Content: "ok"})
	}))
	defer srv.Close()

	temp := float32(0.1)
	g := NewHTTPGateway(srv.URL)
	_, err := g.Call(context.Background(), Request{
		Messages:    systemUserPair(),
		Selector:    &ModelSelector{Provider: "gemini", ModelID: "gemini-2.5-pro"},
		Temperature: &temp,
		Attachment:  &Attachment{MIMEType: "application/pdf", Data: "aGk="},
	})

	require.NoError(t, err)
	assert.Equal(t, "gemini", received.Provider)
	assert.Equal(t, "gemini-2.5-pro", received.Model)
	require.NotNil(t, received.Temperature)
	assert.InDelta(t, 0.1, float64(*received.Temperature), 0.0001)
	require.NotNil(t, received.Attachment)
	assert.Equal(t, "application/pdf", received.Attachment.MIMEType)
}

func TestHTTPGateway_BackendErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(wireResponse{Error: "model quota exceeded"})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	_, err := g.Call(context.Background(), Request{Messages: systemUserPair()})

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "model quota exceeded", gwErr.Message)
	assert.Equal(t, http.StatusBadGateway, gwErr.Status)
}

func TestHTTPGateway_BackendErrorWithoutPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	_, err := g.Call(context.Background(), Request{Messages: systemUserPair()})

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "AI request failed", gwErr.Message)
}

func TestHTTPGateway_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force a connection failure

	g := NewHTTPGateway(srv.URL)
	_, err := g.Call(context.Background(), Request{Messages: systemUserPair()})

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "AI request failed", gwErr.Message)
	assert.Error(t, errors.Unwrap(err))
}

func TestHTTPGateway_RejectsEmptyMessages(t *testing.T) {
	g := NewHTTPGateway("http://localhost:0")
	_, err := g.Call(context.Background(), Request{})

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Message, "no messages")
}
