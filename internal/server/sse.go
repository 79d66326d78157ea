package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/odiseo153/tailorcv/internal/tailor"
)

// SSEWriter writes Server-Sent Events.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares the response for event streaming.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one event.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// streamEvent is one progress notification sent to the client.
type streamEvent struct {
	Percent   int    `json:"percent,omitempty"`
	Milestone string `json:"milestone,omitempty"`
}

// handleGenerateStream runs a generation while streaming progress events,
// then a final "complete" event carrying the HTML (or an "error" event).
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	events := make(chan streamEvent, 16)
	progress := &tailor.Progress{
		OnProgress:          func(p int) { events <- streamEvent{Percent: p} },
		OnInfoProcessed:     func() { events <- streamEvent{Milestone: "info_processed"} },
		OnTemplateProcessed: func() { events <- streamEvent{Milestone: "template_processed"} },
	}

	var result tailor.Result
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		defer close(events)
		var runErr error
		result, runErr = s.engine.CreateCV(ctx, req.createInput(), progress)
		return runErr
	})

	for event := range events {
		_ = sse.WriteEvent("progress", event)
	}

	if err := g.Wait(); err != nil {
		_ = sse.WriteEvent("error", map[string]string{"error": err.Error()})
		return
	}

	_ = sse.WriteEvent("complete", GenerateResponse{
		RunID: uuid.New().String(),
		HTML:  result.HTML,
	})
}
