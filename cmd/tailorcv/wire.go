package main

import (
	"context"
	"fmt"

	"github.com/odiseo153/tailorcv/internal/backend"
	"github.com/odiseo153/tailorcv/internal/config"
	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/registry"
	"github.com/odiseo153/tailorcv/internal/tailor"
)

// runtime bundles the wired engine with the resources it owns.
type runtime struct {
	engine *tailor.Engine
	model  gateway.Client
	close  func()
}

// buildRuntime wires the model client and template registry from
// configuration. A remote backend URL routes model calls over HTTP; otherwise
// Gemini runs in-process. A database URL takes precedence over a remote
// registry URL.
func buildRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	var (
		model   gateway.Client
		closers []func()
	)

	if cfg.BackendURL != "" {
		model = gateway.NewHTTPGateway(cfg.BackendURL)
	} else {
		backendCfg := backend.DefaultConfig()
		if len(cfg.ModelChain) > 0 {
			backendCfg = backendCfg.WithChain(cfg.ModelChain...)
		}
		svc, err := backend.New(ctx, backendCfg, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create model backend: %w", err)
		}
		closers = append(closers, func() { _ = svc.Close() })
		model = svc
	}

	opts := []tailor.Option{}
	switch {
	case cfg.DatabaseURL != "":
		reg, err := registry.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect template registry: %w", err)
		}
		closers = append(closers, reg.Close)
		opts = append(opts, tailor.WithRegistry(reg))
	case cfg.RegistryURL != "":
		opts = append(opts, tailor.WithRegistry(registry.NewHTTPRegistry(cfg.RegistryURL)))
	}

	return &runtime{
		engine: tailor.New(model, opts...),
		model:  model,
		close: func() {
			for _, closeFn := range closers {
				closeFn()
			}
		},
	}, nil
}
