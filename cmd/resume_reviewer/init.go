package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/observability"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the resume-data layout, templates and config file",
	Long:  "Create resume-data/ with people, companies, results and templates directories under the project root. Existing files are left untouched.",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	res, err := store.Init()
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintInit(store.Config().ProjectRoot, res)
	return nil
}
