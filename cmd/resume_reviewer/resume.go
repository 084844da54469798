package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:     "resume",
	Aliases: []string{"resumes"},
	Short:   "Manage a person's generated resumes",
}

var resumeListCmd = &cobra.Command{
	Use:   "list [person]",
	Short: "List a person's resumes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runResumeList,
}

var resumeShowCmd = &cobra.Command{
	Use:   "show <person> <resume>",
	Short: "Print a resume",
	Args:  cobra.ExactArgs(2),
	RunE:  runResumeShow,
}

var resumeEditCmd = &cobra.Command{
	Use:   "edit <person> <resume>",
	Short: "Replace a resume from a file or stdin",
	Args:  cobra.ExactArgs(2),
	RunE:  runResumeEdit,
}

var resumeSaveCmd = &cobra.Command{
	Use:   "save <person> <company> <job>",
	Short: "Save a resume from a file or stdin under a new timestamped name",
	Args:  cobra.ExactArgs(3),
	RunE:  runResumeSave,
}

var (
	resumeEditFile string
	resumeSaveFile string
)

func init() {
	resumeEditCmd.Flags().StringVarP(&resumeEditFile, "file", "f", "", "Markdown file to read (default: stdin)")
	resumeSaveCmd.Flags().StringVarP(&resumeSaveFile, "file", "f", "", "Markdown file to read (default: stdin)")

	resumeCmd.AddCommand(resumeListCmd, resumeShowCmd, resumeEditCmd, resumeSaveCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runResumeList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	var name string
	if len(args) == 1 {
		name = args[0]
	}
	person, err := personOrDefault(store, name)
	if err != nil {
		return err
	}
	p, err := store.GetPerson(person)
	if err != nil {
		return err
	}
	resumes, err := store.ListResumes(p.Name)
	if err != nil {
		return err
	}
	if len(resumes) == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No resumes found for %s.\n", p.Name)
		return nil
	}
	for _, r := range resumes {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), r.Name)
	}
	return nil
}

func runResumeShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	content, err := store.GetResumeContent(args[0], args[1])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
	return nil
}

func runResumeEdit(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	content, err := readContent(cmd, resumeEditFile)
	if err != nil {
		return err
	}
	if err := store.UpdateResumeContent(args[0], args[1], content); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated resume %s/%s\n", args[0], args[1])
	return nil
}

func runResumeSave(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	if _, err := store.GetPerson(args[0]); err != nil {
		return err
	}
	content, err := readContent(cmd, resumeSaveFile)
	if err != nil {
		return err
	}
	path, err := store.SaveResume(args[0], args[1], args[2], content)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved resume: %s\n", path)
	return nil
}
