// Package main provides the resume_reviewer command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	rootDir string
	verbose bool
	apiKey  string
)

var rootCmd = &cobra.Command{
	Use:   "resume_reviewer",
	Short: "Review and tailor resumes from a local project",
	Long: `resume_reviewer keeps people, companies, job postings and generated resumes
as markdown files under resume-data/, reviews profiles and resumes with an LLM,
builds tailored resumes for specific jobs, and records every outcome in the
results log.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Project root (overrides config file discovery)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
