// Trycartridge shows the demo server banner of a Cartridge cluster.
//
// When a cluster runs in demo mode it hands out a temporary connection
// address. This tool shows that address, explains how to connect to it from
// the supported client languages, and can reset the demo session.
//
// Usage:
//
//	trycartridge [command] [flags]
//
// Running without arguments launches the terminal banner.
// See 'trycartridge --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/trycartridge/internal/config"
	"github.com/muurk/trycartridge/internal/logging"
	"github.com/muurk/trycartridge/internal/version"
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath    string
	demoURI       string
	adminURL      string
	templatesFile string
	logLevel      string
)

// settings is loaded once by the root PersistentPreRunE
var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "trycartridge",
	Short: "Cartridge demo server banner",
	Long: `Show the temporary address of a Cartridge demo server.

The banner displays the demo address, connection walkthroughs for each
supported client language and a reset action that flushes the demo session.

The address is read from the admin API (--admin-url) unless --uri is given.

If no command is specified, the terminal banner will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the terminal banner
		return runTUI(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/trycartridge/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&demoURI, "uri", "", "Demo address user:password@host:port (skips the admin API)")
	rootCmd.PersistentFlags().StringVar(&adminURL, "admin-url", "", "Cartridge admin console URL")
	rootCmd.PersistentFlags().StringVar(&templatesFile, "templates", "", "Extra connect-info templates (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

// setup initializes logging and merges the config file with flags
func setup(cmd *cobra.Command, args []string) error {
	if logLevel != "" {
		if err := logging.Initialize(logLevel); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	} else if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	s, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if adminURL != "" {
		s.AdminURL = adminURL
	}
	if templatesFile != "" {
		s.TemplatesFile = templatesFile
	}
	settings = s
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("trycartridge %s (commit: %s)\n", version.Version, version.Commit)
	},
}
