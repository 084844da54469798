package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var companyCmd = &cobra.Command{
	Use:     "company",
	Aliases: []string{"companies"},
	Short:   "Manage company profiles",
}

var companyAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a company from the profile template",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyAdd,
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies and their jobs",
	Args:  cobra.NoArgs,
	RunE:  runCompanyList,
}

var companyShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a company profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyShow,
}

var companyEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Replace a company profile from a file or stdin",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyEdit,
}

var companyEditFile string

func init() {
	companyEditCmd.Flags().StringVarP(&companyEditFile, "file", "f", "", "Markdown file to read (default: stdin)")

	companyCmd.AddCommand(companyAddCmd, companyListCmd, companyShowCmd, companyEditCmd)
	rootCmd.AddCommand(companyCmd)
}

func runCompanyAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	c, err := store.AddCompany(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created company %s\n  Profile: %s\n", c.Name, c.ProfileFile)
	return nil
}

func runCompanyList(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	companies, err := store.ListCompanies()
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No companies found.")
		return nil
	}
	for _, c := range companies {
		if len(c.Jobs) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.Name)
			continue
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", c.Name, strings.Join(c.Jobs, ", "))
	}
	return nil
}

func runCompanyShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	content, err := store.GetCompanyContent(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}

func runCompanyEdit(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	content, err := readContent(cmd, companyEditFile)
	if err != nil {
		return err
	}
	if err := store.UpdateCompanyContent(args[0], content); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated company %s\n", args[0])
	return nil
}
