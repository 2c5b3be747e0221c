package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/kasina/internal/engine"
)

var (
	initForce    bool
	initMode     int
	initColorSet int
)

var initCmd = &cobra.Command{
	Use:   "init FILE",
	Short: "Create an empty session file",
	Long: `Create a session file holding only the header block.

Segments can then be added by hand with "kasina segment add" or composed
into it with "kasina compose --append".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Init(context.Background(), &engine.InitRequest{
			Path:     args[0],
			Mode:     intFlag(cmd.Flags().Changed("mode"), initMode),
			ColorSet: intFlag(cmd.Flags().Changed("colorset"), initColorSet),
			Force:    initForce,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Created empty session %s", result.Path))
		fmt.Println()
		PrintInfo("Next steps:")
		fmt.Printf("  1. Add a segment:      kasina segment add %s\n", result.Path)
		fmt.Printf("  2. Compose into it:    kasina compose --append -o %s\n", result.Path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	initCmd.Flags().IntVar(&initMode, "mode", 0, "ColorControlMode (0-3)")
	initCmd.Flags().IntVar(&initColorSet, "colorset", 0, "GlobalColorSet (1-16)")
}
