package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/fetch"
)

var jobCmd = &cobra.Command{
	Use:     "job",
	Aliases: []string{"jobs"},
	Short:   "Manage job postings filed under companies",
}

var jobAddCmd = &cobra.Command{
	Use:   "add <company> <title>",
	Short: "Create a job posting from the job template",
	Args:  cobra.ExactArgs(2),
	RunE:  runJobAdd,
}

var jobListCmd = &cobra.Command{
	Use:   "list <company>",
	Short: "List a company's jobs",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobList,
}

var jobShowCmd = &cobra.Command{
	Use:   "show <company> <job>",
	Short: "Print a job posting",
	Args:  cobra.ExactArgs(2),
	RunE:  runJobShow,
}

var jobEditCmd = &cobra.Command{
	Use:   "edit <company> <job>",
	Short: "Replace a job posting from a file or stdin",
	Args:  cobra.ExactArgs(2),
	RunE:  runJobEdit,
}

var jobImportCmd = &cobra.Command{
	Use:   "import <company> <title>",
	Short: "Fetch a job posting from a URL and file it under a company",
	Long: `Fetch a job posting page, extract the main content (with selectors tuned
for Greenhouse, Lever, Workday and Ashby), convert it to markdown and save it
as a new job. Use --browser for pages that render their content with JavaScript.`,
	Args: cobra.ExactArgs(2),
	RunE: runJobImport,
}

var (
	jobEditFile      string
	jobImportURL     string
	jobImportBrowser bool
	jobImportTimeout int
)

func init() {
	jobEditCmd.Flags().StringVarP(&jobEditFile, "file", "f", "", "Markdown file to read (default: stdin)")

	jobImportCmd.Flags().StringVar(&jobImportURL, "url", "", "URL of the job posting (required)")
	jobImportCmd.Flags().BoolVar(&jobImportBrowser, "browser", false, "Fall back to headless Chrome when the page has little static content")
	jobImportCmd.Flags().IntVar(&jobImportTimeout, "timeout", 30, "Fetch timeout in seconds")
	_ = jobImportCmd.MarkFlagRequired("url")

	jobCmd.AddCommand(jobAddCmd, jobListCmd, jobShowCmd, jobEditCmd, jobImportCmd)
	rootCmd.AddCommand(jobCmd)
}

func runJobAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	j, err := store.AddJob(args[0], args[1])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created job %s/%s\n  File: %s\n", j.Company, j.Name, j.File)
	return nil
}

func runJobList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	company, err := store.GetCompany(args[0])
	if err != nil {
		return err
	}
	jobs, err := store.ListJobs(company.Name)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No jobs found for %s.\n", company.Name)
		return nil
	}
	for _, j := range jobs {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), j.Name)
	}
	return nil
}

func runJobShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	content, err := store.GetJobContent(args[0], args[1])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}

func runJobEdit(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	content, err := readContent(cmd, jobEditFile)
	if err != nil {
		return err
	}
	if err := store.UpdateJobContent(args[0], args[1], content); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated job %s/%s\n", args[0], args[1])
	return nil
}

func runJobImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, closeFn, err := openService(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer closeFn()

	opts := fetch.DefaultOptions()
	opts.UseBrowser = jobImportBrowser
	opts.Verbose = verbose
	opts.Timeout = time.Duration(jobImportTimeout) * time.Second

	if verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Fetching %s (platform: %s)\n", jobImportURL, fetch.DetectPlatform(jobImportURL))
	}
	j, err := svc.ImportJob(ctx, args[0], args[1], jobImportURL, opts)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported job %s/%s\n  File: %s\n", j.Company, j.Name, j.File)
	return nil
}
