package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/observability"
	"github.com/jonathan/resume-reviewer/internal/workflow"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a resume tailored to a job",
	Long: `Generate a markdown resume from a person's profile, tailored to a company
and job. The resume is saved under the person's resumes directory and the build
is recorded in the results log.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

var (
	buildPerson  string
	buildCompany string
	buildJob     string
)

func init() {
	buildCmd.Flags().StringVarP(&buildPerson, "person", "p", "", "Person to build for (default: configured defaultPerson)")
	buildCmd.Flags().StringVarP(&buildCompany, "company", "c", "", "Target company (required)")
	buildCmd.Flags().StringVarP(&buildJob, "job", "j", "", "Target job (required)")
	_ = buildCmd.MarkFlagRequired("company")
	_ = buildCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	svc, closeFn, err := openService(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer closeFn()

	person, err := personOrDefault(svc.Store, buildPerson)
	if err != nil {
		return err
	}
	outcome, err := svc.Build(ctx, workflow.BuildRequest{Person: person, Company: buildCompany, Job: buildJob})
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintBuild(outcome.Result)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Resume: %s\nSaved: %s\n", outcome.ResumePath, outcome.ResultPath)
	return nil
}
