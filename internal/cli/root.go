// Package cli defines Cobra command definitions for the aegis CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aegis-dev/aegis/internal/backend"
	"github.com/aegis-dev/aegis/internal/config"
	"github.com/aegis-dev/aegis/internal/log"
	"github.com/aegis-dev/aegis/internal/tui"
	"github.com/aegis-dev/aegis/internal/tui/app"
)

var (
	verbose bool
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "aegis",
	Short: "Terminal client for the Aegis document assistant",
	Long: `Aegis is a terminal client for a document-grounded assistant.
Upload documents, ask questions about them, generate a PDF report of
the conversation, and email it - all against a running Aegis backend.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		cfg, client, err := loadClient()
		if err != nil {
			return err
		}

		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		// Event logging is best-effort; the TUI runs without it.
		logger, err := log.NewLogger(workDir)
		if err != nil {
			logger = nil
		}

		return tui.Run(app.New(cfg, client, logger))
	},
}

// loadClient reads the config (falling back to defaults) and builds the
// backend client from it.
func loadClient() (*config.Config, *backend.Client, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.ReadConfig(workDir)
	if err != nil {
		// Config not found or invalid, use defaults
		cfg = config.DefaultConfig()
	}

	return cfg, backend.New(cfg.Backend.BaseURL, cfg.Timeout()), nil
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print request details for backend calls")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(historyCmd)
}
