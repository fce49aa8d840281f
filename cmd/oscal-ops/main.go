package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alevsk/oscal-ops/internal/config"
	"github.com/alevsk/oscal-ops/internal/logger"
)

var (
	configPath string
	debug      bool
)

var cfg = &config.Config{}

// errUsage marks command line mistakes so main can exit with a distinct code
var errUsage = fmt.Errorf("usage error")

var rootCmd = &cobra.Command{
	Use:   "oscal-ops",
	Short: "oscal-ops - A compliance document workspace manager",
	Long: `oscal-ops manages a workspace of compliance documents such as catalogs,
profiles, and system security plans. Documents are imported from JSON or YAML
files, classified by their root key, and stored in a predictable per-kind
layout that other tooling can rely on.`,
	SilenceErrors: true, // We'll handle error printing ourselves
	SilenceUsage:  true, // We'll handle usage printing ourselves
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		// Load configuration from file or environment variable
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}

		// flags override config due to highest precedence
		if debug {
			cfg.Debug = true
		}

		// Initialize logger
		logger.Init(cfg)

		// Print configuration source
		if configPath != "" || os.Getenv(config.OscalOpsConfigPathEnvVar) != "" {
			logger.Debug().Msgf("Using config file: %s", configPath)
		} else {
			logger.Debug().Msg("Using default configuration")
		}

		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: config.yml in current directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging and additional debug information")

	// Flag parse failures are usage errors, not runtime errors
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	// Add commands
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
