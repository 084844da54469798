package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/llm"
	"github.com/jonathan/resume-reviewer/internal/server"
	"github.com/jonathan/resume-reviewer/internal/server/ratelimit"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local REST API server",
	Long: `Start an HTTP server that exposes the project store, the results log and the
review, build and import workflows as JSON endpoints. Without an API key only
the store and results endpoints are available.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Interface to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	key := llm.APIKey(apiKey)
	if key == "" {
		log.Printf("%s not set; agent endpoints are disabled", llm.EnvAPIKey)
	}

	srv, err := server.New(context.Background(), server.Config{
		Host:      serveHost,
		Port:      servePort,
		Project:   cfg,
		APIKey:    key,
		LLM:       llm.FromEnv(os.Getenv),
		RateLimit: ratelimit.LoadConfig(os.Getenv),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
