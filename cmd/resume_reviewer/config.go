package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/slug"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save the project configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration and project layout",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the resolved configuration to a config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigSave,
}

var (
	configSaveDir    string
	configSavePerson string
)

func init() {
	configSaveCmd.Flags().StringVar(&configSaveDir, "dir", "", "Directory to write the config file into (default: project root)")
	configSaveCmd.Flags().StringVar(&configSavePerson, "default-person", "", "Default person used when --person is omitted")

	configCmd.AddCommand(configShowCmd, configSaveCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return printJSON(cmd, map[string]any{
		"config": cfg,
		"paths":  config.Paths(cfg),
	})
}

func runConfigSave(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if configSavePerson != "" {
		cfg.DefaultPerson = slug.Slugify(configSavePerson)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir := configSaveDir
	if dir == "" {
		dir = cfg.ProjectRoot
	}
	path, err := config.Save(cfg, dir)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved config: %s\n", path)
	return nil
}
