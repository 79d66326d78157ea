package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odiseo153/tailorcv/internal/config"
	"github.com/odiseo153/tailorcv/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes CV generation, analysis, PDF export and the hosted model endpoint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides TAILORCV_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	rt, err := buildRuntime(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer rt.close()

	srv := server.New(server.Config{Port: cfg.Port}, rt.engine, rt.model)
	return srv.Start()
}
