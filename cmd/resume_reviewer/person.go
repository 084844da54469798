package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var personCmd = &cobra.Command{
	Use:     "person",
	Aliases: []string{"people"},
	Short:   "Manage people and their profiles",
}

var personAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a person from the profile template",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonAdd,
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List people",
	Args:  cobra.NoArgs,
	RunE:  runPersonList,
}

var personShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a person's profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonShow,
}

var personEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Replace a person's profile from a file or stdin",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonEdit,
}

var personEditFile string

func init() {
	personEditCmd.Flags().StringVarP(&personEditFile, "file", "f", "", "Markdown file to read (default: stdin)")

	personCmd.AddCommand(personAddCmd, personListCmd, personShowCmd, personEditCmd)
	rootCmd.AddCommand(personCmd)
}

func runPersonAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	p, err := store.AddPerson(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created person %s\n  Profile: %s\n", p.Name, p.ProfileFile)
	return nil
}

func runPersonList(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	people, err := store.ListPeople()
	if err != nil {
		return err
	}
	if len(people) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No people found.")
		return nil
	}
	for _, p := range people {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), p.Name)
	}
	return nil
}

func runPersonShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	content, err := store.GetPersonContent(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}

func runPersonEdit(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	content, err := readContent(cmd, personEditFile)
	if err != nil {
		return err
	}
	if err := store.UpdatePersonContent(args[0], content); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated person %s\n", args[0])
	return nil
}
