package cli

import (
	"errors"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/config"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/scanner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrNoAction is returned when no action flag was given
var ErrNoAction = errors.New("no action requested")

// Exit codes
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitStructural = 2
)

// ExitCode maps an error returned by the root command to a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case models.IsStructural(err):
		return ExitStructural
	default:
		return ExitFailure
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var flagConfig models.Config
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "packaging-helper",
		Short: "Merge per-plugin packaging metadata and check upstream versions",
		Long: `packaging-helper merges the Debian metadata shipped by every plugin
directory into the files of the umbrella package.

Actions (run in this order when combined):
  --control          update <packaging-dir>/control from control.in
  --tests            update <packaging-dir>/tests/control
  --copyright        update <packaging-dir>/copyright from copyright.in
  --watch            search for upstream updates (advisory only)
  --generate-readme  update <packaging-dir>/README.Debian.plugins`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flagConfig.AnyAction() {
				_ = cmd.Usage()
				return ErrNoAction
			}

			cfg, err := resolveConfig(cmd, &flagConfig, configPath)
			if err != nil {
				return err
			}

			logrus.Debugf("Configuration: %+v", *cfg)

			sc := scanner.NewFileSystemScanner(cfg.PackagingDir, cfg.Exclude...)
			return Run(cmd.Context(), cmd.OutOrStdout(), cfg, sc)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Actions
	rootCmd.Flags().BoolVar(&flagConfig.Control, "control", false, "Update the control file")
	rootCmd.Flags().BoolVar(&flagConfig.Tests, "tests", false, "Update tests/control")
	rootCmd.Flags().BoolVar(&flagConfig.Copyright, "copyright", false, "Update the copyright file")
	rootCmd.Flags().BoolVar(&flagConfig.Watch, "watch", false, "Search for upstream updates")
	rootCmd.Flags().BoolVar(&flagConfig.GenerateReadme, "generate-readme", false, "Update README.Debian.plugins")

	// Layout flags
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file (default <base-dir>/"+config.FileName+")")
	rootCmd.Flags().StringVarP(&flagConfig.BaseDir, "base-dir", "d", ".", "Directory containing the plugin directories")
	rootCmd.Flags().StringVar(&flagConfig.PackagingDir, "packaging-dir", models.DefaultPackagingDir, "Packaging directory name inside base-dir")
	rootCmd.Flags().StringSliceVar(&flagConfig.Exclude, "exclude", nil, "Additional directory names that are not plugins")

	// Watch flags
	rootCmd.Flags().StringVar(&flagConfig.UserAgent, "user-agent", models.DefaultUserAgent, "User-Agent header for upstream requests")
	rootCmd.Flags().IntVar(&flagConfig.Workers, "workers", models.DefaultWorkers, "Concurrent upstream requests")
	rootCmd.Flags().DurationVar(&flagConfig.Timeout, "timeout", models.DefaultTimeout, "Timeout of a single upstream request")

	return rootCmd
}

// resolveConfig layers the configuration file over flag defaults and then
// re-applies flags given explicitly on the command line
func resolveConfig(cmd *cobra.Command, flagConfig *models.Config, configPath string) (*models.Config, error) {
	cfg := *flagConfig

	if configPath == "" {
		configPath = config.FindConfigFile(flagConfig.BaseDir)
	}
	if configPath != "" {
		if err := config.Load(configPath, &cfg); err != nil {
			return nil, err
		}

		flags := cmd.Flags()
		if flags.Changed("base-dir") {
			cfg.BaseDir = flagConfig.BaseDir
		}
		if flags.Changed("packaging-dir") {
			cfg.PackagingDir = flagConfig.PackagingDir
		}
		if flags.Changed("exclude") {
			cfg.Exclude = flagConfig.Exclude
		}
		if flags.Changed("user-agent") {
			cfg.UserAgent = flagConfig.UserAgent
		}
		if flags.Changed("workers") {
			cfg.Workers = flagConfig.Workers
		}
		if flags.Changed("timeout") {
			cfg.Timeout = flagConfig.Timeout
		}
	}

	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
