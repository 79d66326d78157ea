// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the full runtime configuration. GeminiAPIKey is required unless
// the engine is pointed at a remote backend via BackendURL.
type Config struct {
	Port         int
	GeminiAPIKey string

	// BackendURL, when set, routes all model calls to a remote backend
	// endpoint instead of calling Gemini in-process.
	BackendURL string

	// ModelChain overrides the default fallback chain, comma separated.
	ModelChain []string

	// RegistryURL points at a remote template registry service.
	RegistryURL string

	// DatabaseURL, when set, serves templates from a local Postgres registry
	// and takes precedence over RegistryURL.
	DatabaseURL string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         8080,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		BackendURL:   os.Getenv("TAILORCV_BACKEND_URL"),
		RegistryURL:  os.Getenv("TEMPLATE_REGISTRY_URL"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}

	if portStr := os.Getenv("TAILORCV_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid TAILORCV_PORT %q", portStr)
		}
		cfg.Port = port
	}

	if chain := os.Getenv("TAILORCV_MODEL_CHAIN"); chain != "" {
		for _, model := range strings.Split(chain, ",") {
			model = strings.TrimSpace(model)
			if model != "" {
				cfg.ModelChain = append(cfg.ModelChain, model)
			}
		}
	}

	if cfg.GeminiAPIKey == "" && cfg.BackendURL == "" {
		return nil, fmt.Errorf("either GEMINI_API_KEY or TAILORCV_BACKEND_URL must be set")
	}

	return cfg, nil
}
