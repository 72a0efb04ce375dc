package main

import (
	"fmt"

	"github.com/Nomadcxx/jellybucket/internal/config"
	"github.com/Nomadcxx/jellybucket/internal/paths"
	"github.com/Nomadcxx/jellybucket/internal/ui"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage jellybucket configuration",
		Long: `Commands for managing jellybucket configuration.

The config file is stored at: ~/.config/jellybucket/config.toml

Examples:
  jellybucket config init              # Create default config file
  jellybucket config show              # Display current configuration
  jellybucket config check             # Parse every bucket label
  jellybucket config path              # Show config file path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigCheckCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return paths.ConfigPath()
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil && !force {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg != nil && cfg.Exists() && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg = config.DefaultConfig()
			cfg.Bucket.Year = []string{"1950s", "1960s", "1970s", "1980s", "1990s", "2000s"}
			cfg.Bucket.Alpha = []string{"0-9", "A-D", "E-H", "I-L", "M-P", "Q-T", "U-Z"}

			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			ui.SuccessMsg("Created config file: %s", path)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. Edit bucket_year and bucket_alpha to match your library layout")
			fmt.Println("  2. Run 'jellybucket config check' to validate the labels")
			fmt.Println("  3. Run 'jellybucket list' to review the parsed buckets")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cfg.Exists() {
				ui.WarningMsg("No config file at %s, showing defaults", cfg.Path())
			}

			out, err := cfg.ToTOML()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newConfigCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse every configured bucket label",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				ui.ErrorMsg("%v", err)
				return err
			}
			ui.SuccessMsg("%d year and %d alpha buckets OK", len(cfg.Bucket.Year), len(cfg.Bucket.Alpha))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}
