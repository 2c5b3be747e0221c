package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/kasina/internal/config"
)

// configCmd is the parent command for the config file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the kasina config file",
	Long: `Manage ~/.kasina/config.yaml (or $KASINA_ROOT/config.yaml).

Every setting can also be given as a KASINA_* environment variable,
e.g. KASINA_COMPOSE_STYLE=sleep or KASINA_OUTPUT=night.kbs.`,
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get config paths: %w", err)
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		path, err := eng.InitConfig(context.Background(), paths, configInitForce)
		if err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Wrote %s", path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get config paths: %w", err)
		}
		cfg, err := config.Load(paths.Config)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cfg)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
