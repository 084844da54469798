package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/observability"
	"github.com/jonathan/resume-reviewer/internal/workflow"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a profile or resume, optionally against a company and job",
	Long: `Review a person's profile (or one of their saved resumes) with the LLM.
Without --company the review is general; with --company and optionally --job it
assesses fit for that target. With --all-jobs every job of the company is
reviewed concurrently. Each review is saved to the results log.`,
	Args: cobra.NoArgs,
	RunE: runReview,
}

var (
	reviewPerson      string
	reviewResume      string
	reviewCompany     string
	reviewJob         string
	reviewAllJobs     bool
	reviewConcurrency int
)

func init() {
	reviewCmd.Flags().StringVarP(&reviewPerson, "person", "p", "", "Person to review (default: configured defaultPerson)")
	reviewCmd.Flags().StringVarP(&reviewResume, "resume", "r", "", "Saved resume to review instead of the profile")
	reviewCmd.Flags().StringVarP(&reviewCompany, "company", "c", "", "Company to review against")
	reviewCmd.Flags().StringVarP(&reviewJob, "job", "j", "", "Job to review against (requires --company)")
	reviewCmd.Flags().BoolVar(&reviewAllJobs, "all-jobs", false, "Review against every job of --company")
	reviewCmd.Flags().IntVar(&reviewConcurrency, "concurrency", workflow.DefaultConcurrency, "Parallel reviews with --all-jobs")

	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	if reviewAllJobs && (reviewCompany == "" || reviewJob != "" || reviewResume != "") {
		return fmt.Errorf("--all-jobs requires --company and cannot be combined with --job or --resume")
	}
	if reviewJob != "" && reviewCompany == "" {
		return fmt.Errorf("--job requires --company")
	}

	ctx := context.Background()
	svc, closeFn, err := openService(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer closeFn()

	person, err := personOrDefault(svc.Store, reviewPerson)
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if reviewAllJobs {
		outcomes, err := svc.ReviewAllJobs(ctx, person, reviewCompany, reviewConcurrency)
		if err != nil {
			return err
		}
		for _, o := range outcomes {
			printer.PrintResult(o.Result)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", o.Path)
		}
		return nil
	}

	outcome, err := svc.Review(ctx, workflow.ReviewRequest{
		Person:  person,
		Resume:  reviewResume,
		Company: reviewCompany,
		Job:     reviewJob,
	})
	if err != nil {
		return err
	}
	printer.PrintResult(outcome.Result)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", outcome.Path)
	return nil
}
