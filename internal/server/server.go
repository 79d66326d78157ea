// Package server exposes the CV engine over a small HTTP REST surface,
// including the model backend endpoint consumed by the HTTP gateway.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/tailor"
)

// Server is the HTTP front of the engine.
type Server struct {
	httpServer *http.Server
	engine     *tailor.Engine
	model      gateway.Client
	validate   *validator.Validate
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New wires the routes. The model client backs the /v1/model endpoint; the
// engine handles everything else.
func New(cfg Config, engine *tailor.Engine, model gateway.Client) *Server {
	s := &Server{
		engine:   engine,
		model:    model,
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/cv", s.handleGenerate)
	mux.HandleFunc("POST /v1/cv/file", s.handleGenerateFromFile)
	mux.HandleFunc("POST /v1/cv/stream", s.handleGenerateStream)
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /v1/export/pdf", s.handleExportPDF)
	mux.HandleFunc("POST /v1/model", s.handleModel)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
