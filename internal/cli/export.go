package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/kasina/internal/engine"
)

var exportForce bool

var exportCmd = &cobra.Command{
	Use:   "export FILE DEST",
	Short: "Write a session under a new name for the device",
	Long: `Check a session file and write it again, with a fresh header, to DEST.

Use "-" as DEST to write to stdout.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.ExportRequest{
			Path:  args[0],
			Dest:  args[1],
			Force: exportForce,
		}
		if args[1] == "-" {
			req.Writer = os.Stdout
		}

		result, err := eng.Export(context.Background(), req)
		if err != nil {
			return err
		}

		// stdout holds the session itself
		if req.Writer != nil {
			return nil
		}
		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Exported %s to %s (%d bytes)",
			PrintCount(result.Segments, "segment", "segments"), result.Dest, result.Bytes))
		PrintLabelValue("SHA-256", result.SHA256)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "Overwrite DEST if it exists")
}
