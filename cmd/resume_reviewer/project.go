package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/agents"
	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/llm"
	"github.com/jonathan/resume-reviewer/internal/project"
	"github.com/jonathan/resume-reviewer/internal/results"
	"github.com/jonathan/resume-reviewer/internal/workflow"
)

// loadConfig resolves the project configuration. --root wins over the
// environment and any config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if rootDir != "" {
		abs, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, fmt.Errorf("invalid --root: %w", err)
		}
		return &config.Config{ProjectRoot: abs}, nil
	}

	resolver, err := config.NewResolver()
	if err != nil {
		return nil, err
	}
	res, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	if verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Project root: %s (%s)\n", res.Config.ProjectRoot, res.Source)
	}
	return res.Config, nil
}

func openStore(cmd *cobra.Command) (*project.Manager, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return project.NewManager(cfg), nil
}

// openService builds a workflow service. With withAgents the LLM client is
// created and must be closed by the caller through the returned func.
func openService(ctx context.Context, cmd *cobra.Command, withAgents bool) (*workflow.Service, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	svc := &workflow.Service{
		Store:   project.NewManager(cfg),
		Results: results.NewManager(cfg),
	}
	if !withAgents {
		return svc, func() {}, nil
	}

	key := llm.APIKey(apiKey)
	if key == "" {
		return nil, nil, fmt.Errorf("API key is required (set %s environment variable or use --api-key flag)", llm.EnvAPIKey)
	}
	client, err := llm.NewClient(ctx, llm.FromEnv(os.Getenv), key)
	if err != nil {
		return nil, nil, err
	}
	svc.Reviewer = agents.NewReviewer(client)
	svc.Builder = agents.NewBuilder(client)
	svc.Importer = agents.NewImporter(client)
	if verbose {
		svc.OnProgress = func(e workflow.ProgressEvent) {
			if e.Err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] failed: %v\n", e.Step, e.Err)
				return
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", e.Step, e.Message)
		}
	}
	return svc, func() { _ = client.Close() }, nil
}

// personOrDefault falls back to the configured default person.
func personOrDefault(store *project.Manager, person string) (string, error) {
	if person != "" {
		return person, nil
	}
	if p := store.Config().DefaultPerson; p != "" {
		return p, nil
	}
	return "", fmt.Errorf("--person is required (no defaultPerson configured)")
}

// readContent returns the contents of file, or stdin when file is "-" or empty.
func readContent(cmd *cobra.Command, file string) (string, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
