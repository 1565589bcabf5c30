package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sina-salahshour/homer/internal/config"
	"github.com/sina-salahshour/homer/internal/logger"
	"github.com/sina-salahshour/homer/internal/platform"
	"github.com/sina-salahshour/homer/pkg/fonts"
	"github.com/spf13/cobra"
)

var (
	debug      bool
	configPath string
	manager    *fonts.Manager
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "homer",
	Short: "homer installs Nerd Fonts into your user font directory",
	Long: `Pick Nerd Fonts from the upstream catalog and install them.

Downloads and installs are recorded, so running homer again only
fetches and extracts what is still missing.

Examples:
  # Choose fonts interactively and install them
  homer

  # Show the catalog with download and install markers
  homer list

  # Remove an installed font
  homer uninstall FiraCode`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runInstall,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Choose fonts interactively and install them",
	Args:  cobra.NoArgs,
	RunE:  runInstall,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog fonts with their download and install state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		states, err := manager.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing fonts: %w", err)
		}

		installed := color.New(color.FgGreen).SprintFunc()
		downloaded := color.New(color.FgCyan).SprintFunc()
		for _, s := range states {
			line := "  - " + s.Font.FolderName
			if s.Downloaded {
				line += " " + downloaded("[downloaded]")
			}
			if s.Installed {
				line += " " + installed("[installed]")
			}
			fmt.Println(line)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which fonts are downloaded and installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := manager.Status()
		if err != nil {
			return fmt.Errorf("reading status: %w", err)
		}

		printGroup("Downloaded", record.Downloaded())
		printGroup("Installed", record.Installed())
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [font folder name]",
	Short: "Uninstall a font",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		fmt.Printf("Uninstalling %s...\n", name)
		if err := manager.Uninstall(name); err != nil {
			return fmt.Errorf("uninstalling %s: %w", name, err)
		}
		fmt.Printf("Successfully uninstalled %s\n", name)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Use this configuration file instead of the bundled one")
	_ = rootCmd.PersistentFlags().MarkHidden("config")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(uninstallCmd)
}

// setup runs before every command: logging first, then configuration.
func setup(cmd *cobra.Command, args []string) error {
	logger.Init(debug)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Debug("[DEBUG] Catalog %s, release info %s, install dir %q\n",
		cfg.Font.RepoURL, cfg.Font.RootURL, cfg.Font.FontsDirName)

	manager = fonts.NewManager(cfg, platform.New(), fonts.NewSurveySelector(), os.Stderr)
	return nil
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Bundled()
}

func runInstall(cmd *cobra.Command, args []string) error {
	if err := manager.Run(cmd.Context()); err != nil {
		return fmt.Errorf("installing fonts: %w", err)
	}
	return nil
}

func printGroup(title string, names []string) {
	fmt.Printf("%s: %d\n", title, len(names))
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}
}
