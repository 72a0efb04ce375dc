package main

import (
	"fmt"
	"os"

	"github.com/Nomadcxx/jellybucket/internal/bucket"
	"github.com/Nomadcxx/jellybucket/internal/config"
	"github.com/Nomadcxx/jellybucket/internal/logging"
	"github.com/Nomadcxx/jellybucket/internal/ui"
	"github.com/spf13/cobra"
)

var (
	version     = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile     string
	verbose     bool
	noColor     bool
	extrapolate bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jellybucket",
		Short: "Group years and names into library buckets",
		Long: `jellybucket maps a year or a name onto the bucket labels you configure,
so a music library can be laid out as 1960s/, 1970-79/ or A-D/.

Year buckets:  "1950", "1950s", "1950,51,52,53", "1950-59", "1960-1969"
Alpha buckets: "A-D" or a list of initials such as "ABCD"

With extrapolation enabled, years outside every configured bucket get a new
bucket in the style and width most common in the configuration.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColors()
			}
		},
	}

	originalHelpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.Name() == "jellybucket" {
			printHeader(version)
		}
		originalHelpFunc(cmd, args)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/jellybucket/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&extrapolate, "extrapolate", "x", false, "generate buckets for uncovered years (overrides config)")

	rootCmd.AddCommand(newYearCmd())
	rootCmd.AddCommand(newAlphaCmd())
	rootCmd.AddCommand(newBucketCmd())
	rootCmd.AddCommand(newFormatCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// env is what most commands need: the loaded config, a logger and the
// classifiers built from it.
type env struct {
	cfg    *config.Config
	logger *logging.Logger
	set    *bucket.Set
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("extrapolate") {
		cfg.Bucket.Extrapolate = extrapolate
	}

	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	set, err := cfg.Buckets(logger)
	if err != nil {
		logger.Close()
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, set: set}, nil
}

func (e *env) Close() error {
	return e.logger.Close()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printHeader(version)
		},
	}
}
