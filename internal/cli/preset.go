package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/kasina/internal/engine"
)

// presetCmd is the parent command for intent presets.
var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage intent presets",
	Long: `Manage named intents stored as YAML under ~/.kasina/presets.

A preset may leave keys out; they are taken from the config file when the
preset is used with "kasina compose --preset".`,
}

var presetLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List saved presets",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.ListPresets(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if len(result.Presets) == 0 {
			PrintSection("Presets")
			PrintEmptyState("No presets found")
			return nil
		}

		PrintSection("Available Presets")
		rows := make([][]string, 0, len(result.Presets))
		for _, p := range result.Presets {
			rows = append(rows, []string{
				p.Name,
				p.Intent.Style,
				formatNumber(p.Intent.DurationMin),
				p.Intent.Intensity,
				p.Intent.Chroma,
				p.Intent.Progression,
			})
		}
		PrintTable([]string{"Name", "Style", "Minutes", "Intensity", "Chroma", "Progression"}, rows)
		return nil
	},
}

var presetSaveIntent intentFlags

var presetSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save an intent as a preset",
	Long: `Save the given intent flags, completed from the config file, as a preset.

Example:
  kasina preset save focus --style energizing --duration 20 --chroma cold`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		info, err := eng.SavePreset(context.Background(), &engine.SavePresetRequest{
			Name:     args[0],
			Intent:   presetSaveIntent.intent(),
			Duration: presetSaveIntent.durationOverride(cmd),
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(info)
		}
		PrintSuccess(fmt.Sprintf("Saved preset %s", info.Name))
		return nil
	},
}

func init() {
	presetSaveIntent.register(presetSaveCmd)

	presetCmd.AddCommand(presetLsCmd)
	presetCmd.AddCommand(presetSaveCmd)
}
