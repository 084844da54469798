package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/observability"
	"github.com/jonathan/resume-reviewer/internal/results"
	"github.com/jonathan/resume-reviewer/internal/slug"
)

var resultCmd = &cobra.Command{
	Use:     "result",
	Aliases: []string{"results"},
	Short:   "Browse saved reviews and builds",
}

var resultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved results, newest first",
	Long: `List saved results, newest first.

Results are typed by the context they were produced with: general (profile
only), company, review (company and job), and build. Reviews always name a
job's company, so job results only come from older files recorded without
company context.`,
	Args: cobra.NoArgs,
	RunE:  runResultList,
}

var resultShowCmd = &cobra.Command{
	Use:   "show <filename>",
	Short: "Print a saved result",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultShow,
}

var (
	resultType    string
	resultPerson  string
	resultCompany string
	resultJSON    bool
)

func init() {
	resultListCmd.Flags().StringVar(&resultType, "type", "", "Filter by type (general, company, review, build, or job for older files)")
	resultListCmd.Flags().StringVar(&resultPerson, "person", "", "Filter by person")
	resultListCmd.Flags().StringVar(&resultCompany, "company", "", "Filter by company")
	resultListCmd.Flags().BoolVar(&resultJSON, "json", false, "Print as JSON")

	resultCmd.AddCommand(resultListCmd, resultShowCmd)
	rootCmd.AddCommand(resultCmd)
}

func runResultList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	filters := results.Filters{Type: results.ResultType(resultType)}
	if filters.Type != "" && !filters.Type.Valid() {
		return fmt.Errorf("unknown result type %q", resultType)
	}
	if resultPerson != "" {
		filters.Person = slug.Slugify(resultPerson)
	}
	if resultCompany != "" {
		filters.Company = slug.Slugify(resultCompany)
	}

	saved, err := results.NewManager(cfg).ListResults(filters)
	if err != nil {
		return err
	}
	if resultJSON {
		return printJSON(cmd, saved)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintResults(saved)
	return nil
}

func runResultShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := results.NewManager(cfg).LoadResult(args[0])
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("result not found: %s", args[0])
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), r.Content)
	return nil
}
