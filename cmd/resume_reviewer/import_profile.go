package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var importProfileCmd = &cobra.Command{
	Use:   "import-profile <person>",
	Short: "Replace a person's profile with one generated from free text",
	Long:  "Convert pasted resume or LinkedIn text into a structured markdown profile and save it as the person's person.md.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportProfile,
}

var importProfileFile string

func init() {
	importProfileCmd.Flags().StringVarP(&importProfileFile, "file", "f", "", "Text file to read (default: stdin)")
	rootCmd.AddCommand(importProfileCmd)
}

func runImportProfile(cmd *cobra.Command, args []string) error {
	text, err := readContent(cmd, importProfileFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no profile text provided")
	}

	ctx := context.Background()
	svc, closeFn, err := openService(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer closeFn()

	p, err := svc.ImportProfile(ctx, args[0], text)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated profile: %s\n", p.ProfileFile)
	return nil
}
