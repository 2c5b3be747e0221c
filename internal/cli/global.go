package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/kasina/internal/engine"
)

var (
	globalMode     int
	globalColorSet int
)

var globalCmd = &cobra.Command{
	Use:   "global FILE",
	Short: "Show or change the device color settings",
	Long: `Show or change the header settings of a session file.

ColorControlMode selects where the device takes its colors from:
  0  fixed device color set
  1  global color set (GlobalColorSet, 1-16)
  2  per-segment color set
  3  custom RGB from each segment's Red/Green/Blue

Without flags the current settings are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ctx := context.Background()
		mode := intFlag(cmd.Flags().Changed("mode"), globalMode)
		colorSet := intFlag(cmd.Flags().Changed("colorset"), globalColorSet)

		if mode == nil && colorSet == nil {
			shown, err := eng.Show(ctx, &engine.ShowRequest{Path: args[0]})
			if err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(shown.Session.Global)
			}
			printGlobal(shown.Session.Global)
			return nil
		}

		result, err := eng.SetGlobal(ctx, &engine.SetGlobalRequest{
			Path:     args[0],
			Mode:     mode,
			ColorSet: colorSet,
		})
		if err != nil {
			return err
		}
		return printEdit(result, "Updated device settings")
	},
}

func init() {
	globalCmd.Flags().IntVar(&globalMode, "mode", 0, "ColorControlMode (0-3)")
	globalCmd.Flags().IntVar(&globalColorSet, "colorset", 0, "GlobalColorSet (1-16)")
}
