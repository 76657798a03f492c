// Package cmd implements the loadouttool commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/rocket-loadout/internal/config"
	"github.com/Faultbox/rocket-loadout/internal/logger"
)

var (
	// Version is set by main.
	Version = "0.0.0"

	// Commit is set by main.
	Commit = ""
)

// app carries the loaded configuration to subcommands.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "loadouttool",
		Short: "Decode, encode and verify Rocket League loadout codes",
		Long: `loadouttool works with the compact base64 codes used to share car
cosmetics. Codes can be printed as a table, converted to editable YAML or
JSON documents and back, verified, or served over HTTP.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(a),
		newVerifyCmd(),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func versionString() string {
	if Commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := newRootCmd().Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
