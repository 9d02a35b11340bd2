// Package cli implements the swaig command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"swaig/internal/config"
	"swaig/internal/logging"
)

var (
	cfgFile       string
	currentConfig config.Config
	appVersion    = "dev"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "swaig",
		Short:         "swaig serves SignalWire AI Gateway functions over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			currentConfig = cfg
			if err := logging.Init(cfg.LogFile, cfg.Debug); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.String("username", "", "basic auth username")
	flags.String("password", "", "basic auth password")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-file", "", "also write logs to this file")
	_ = v.BindPFlag("username", flags.Lookup("username"))
	_ = v.BindPFlag("password", flags.Lookup("password"))
	_ = v.BindPFlag("debug", flags.Lookup("debug"))
	_ = v.BindPFlag("log_file", flags.Lookup("log-file"))

	root.AddCommand(
		newServeCmd(v),
		newToolsCmd(),
		newSignatureCmd(),
		newCallCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer logging.Close()
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Close()
		os.Exit(1)
	}
}

// SetVersion allows the main package to inject the build version.
func SetVersion(version string) { appVersion = version }

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "swaig %s\n", appVersion)
		},
	}
}
