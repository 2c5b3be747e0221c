package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/kasina/internal/engine"
	"github.com/danieljhkim/kasina/internal/kbs"
)

// segmentCmd is the parent command for segment edits.
var segmentCmd = &cobra.Command{
	Use:     "segment",
	Aliases: []string{"seg"},
	Short:   "Edit the segments of a session file",
	Long: `Add, change, remove and reorder segments of a session file.

Segments are numbered from 1, as in the "# Segment <n>" labels of the file.
Field keys are the KBS keys: ` + strings.Join(kbs.FieldOrder, ", ") + `.`,
}

var (
	segmentAddAt  int
	segmentAddSet []string
)

var segmentAddCmd = &cobra.Command{
	Use:   "add FILE",
	Short: "Add a default segment",
	Long: `Insert a segment with default values (60 s, 8 Hz beat, 110/118 Hz,
mid brightness, volume and color, sine waveforms).

Examples:
  kasina segment add night.kbs
  kasina segment add night.kbs --at 1 --set Time=120 --set Beat=4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseAssignments(segmentAddSet)
		if err != nil {
			return err
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.AddSegment(context.Background(), &engine.AddSegmentRequest{
			Path:   args[0],
			At:     segmentAddAt,
			Fields: fields,
		})
		if err != nil {
			return err
		}
		return printEdit(result, fmt.Sprintf("Added segment %d", result.Index))
	},
}

var segmentSetCmd = &cobra.Command{
	Use:   "set FILE INDEX KEY=VALUE...",
	Short: "Change fields of a segment",
	Long: `Change one or more fields of a segment.

Example:
  kasina segment set night.kbs 3 Beat=5.5 Red=90 SndWF=Triangle`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		fields, err := parseAssignments(args[2:])
		if err != nil {
			return err
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.SetSegment(context.Background(), &engine.SetSegmentRequest{
			Path:   args[0],
			Index:  index,
			Fields: fields,
		})
		if err != nil {
			return err
		}
		return printEdit(result, fmt.Sprintf("Updated segment %d (%s)", result.Index, PrintCount(len(fields), "field", "fields")))
	},
}

var segmentRmCmd = &cobra.Command{
	Use:     "rm FILE INDEX",
	Aliases: []string{"remove"},
	Short:   "Remove a segment",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.RemoveSegment(context.Background(), &engine.RemoveSegmentRequest{
			Path:  args[0],
			Index: index,
		})
		if err != nil {
			return err
		}
		return printEdit(result, fmt.Sprintf("Removed segment %d", result.Index))
	},
}

var segmentMvCmd = &cobra.Command{
	Use:     "mv FILE FROM TO",
	Aliases: []string{"move"},
	Short:   "Move a segment to another position",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		to, err := parseIndex(args[2])
		if err != nil {
			return err
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.MoveSegment(context.Background(), &engine.MoveSegmentRequest{
			Path: args[0],
			From: from,
			To:   to,
		})
		if err != nil {
			return err
		}
		return printEdit(result, fmt.Sprintf("Moved segment %d to %d", from, to))
	},
}

func init() {
	segmentAddCmd.Flags().IntVar(&segmentAddAt, "at", 0, "Position of the new segment (default: end)")
	segmentAddCmd.Flags().StringArrayVar(&segmentAddSet, "set", nil, "Override a default value (KEY=VALUE, repeatable)")

	segmentCmd.AddCommand(segmentAddCmd)
	segmentCmd.AddCommand(segmentSetCmd)
	segmentCmd.AddCommand(segmentRmCmd)
	segmentCmd.AddCommand(segmentMvCmd)
}

// printEdit reports the state of a session file after an edit.
func printEdit(result *engine.EditResult, msg string) error {
	if jsonOutput {
		return outputJSON(result)
	}
	PrintSuccess(fmt.Sprintf("%s in %s", msg, result.Path))
	PrintLabelValue("Segments", fmt.Sprintf("%d", result.Segments))
	PrintLabelValue("Length", formatClock(result.TotalTime))
	return nil
}
