package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/clustergen/config"
	"github.com/teranos/clustergen/logger"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect dataset configuration files",
		Long: `Inspect clustergen configuration files.

Examples:
  clustergen config show clusters.toml                # Show parsed configuration
  clustergen config show clusters.toml --format json  # ... as JSON
  clustergen config validate clusters.toml            # Validate without generating`,
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show <config.toml>",
		Short: "Show the parsed configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			data, err := cfg.Marshal(format)
			if err != nil {
				return err
			}
			if format == config.FormatJSON {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# clustergen dataset configuration\n%s", data)
			return nil
		},
	}
	showCmd.Flags().StringVar(&format, "format", config.FormatTOML, "Output format: toml, json, yaml")

	validateCmd := &cobra.Command{
		Use:   "validate <config.toml>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			unknown, err := config.UnknownKeys(args[0])
			if err != nil {
				return err
			}
			for _, key := range unknown {
				logger.Warnw("Unknown config key", "key", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration is valid (%s → %s)\n", args[0], cfg.Name+config.OutputExtension)
			return nil
		},
	}

	cmd.AddCommand(showCmd)
	cmd.AddCommand(validateCmd)
	return cmd
}
