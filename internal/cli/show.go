package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/kasina/internal/engine"
	"github.com/danieljhkim/kasina/internal/session"
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Show the segments of a session file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Show(context.Background(), &engine.ShowRequest{Path: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection(fmt.Sprintf("Session: %s", result.Path))
		printGlobal(result.Session.Global)
		PrintLabelValue("Segments", fmt.Sprintf("%d", result.Session.Len()))
		PrintLabelValue("Length", formatClock(result.TotalTime))
		fmt.Println()

		if result.Session.Len() == 0 {
			PrintEmptyState("No segments")
			return nil
		}
		printSegments(result.Session.Segments, 0)
		return nil
	},
}

// timelineBarWidth is the width of the beat bar for the fastest segment.
const timelineBarWidth = 20

var timelineCmd = &cobra.Command{
	Use:   "timeline FILE",
	Short: "Lay the segments out on the session clock",
	Long: `Print when each segment starts and ends, with its beat, brightness and
color, and a bar scaled to the beat frequency.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Timeline(context.Background(), &engine.ShowRequest{Path: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection(fmt.Sprintf("Timeline: %s (%s)", result.Path, formatClock(result.TotalTime)))
		if len(result.Entries) == 0 {
			PrintEmptyState("No segments")
			return nil
		}

		var maxBeat float64
		for _, e := range result.Entries {
			maxBeat = max(maxBeat, e.Beat)
		}

		rows := make([][]string, 0, len(result.Entries))
		for _, e := range result.Entries {
			rows = append(rows, []string{
				fmt.Sprintf("%d", e.Index),
				formatClock(e.Start),
				formatClock(e.End),
				formatNumber(e.Beat),
				fmt.Sprintf("%d", e.Bright),
				fmt.Sprintf("%d/%d/%d", e.Red, e.Green, e.Blue),
				beatBar(e.Beat, maxBeat),
			})
		}
		PrintTable([]string{"#", "Start", "End", "Beat", "Bright", "RGB", ""}, rows)
		return nil
	},
}

func beatBar(beat, maxBeat float64) string {
	if maxBeat <= 0 || beat <= 0 {
		return ""
	}
	n := int(beat / maxBeat * timelineBarWidth)
	return strings.Repeat("█", max(n, 1))
}

// printGlobal prints the header settings of a session.
func printGlobal(g session.GlobalConfig) {
	PrintLabelValue("ColorControlMode", fmt.Sprintf("%d (%s)", int(g.ColorControlMode), g.ColorControlMode))
	PrintLabelValue("GlobalColorSet", fmt.Sprintf("%d", g.GlobalColorSet))
}

// printSegments prints segs as a table numbered from offset+1.
func printSegments(segs []session.Segment, offset int) {
	rows := make([][]string, 0, len(segs))
	for i, s := range segs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", offset+i+1),
			formatNumber(s.Time),
			formatNumber(s.Beat),
			fmt.Sprintf("%s/%s", formatNumber(s.LPitch), formatNumber(s.RPitch)),
			fmt.Sprintf("%d/%d", s.LAMDepth, s.SAMDepth),
			fmt.Sprintf("%d", s.Bright),
			fmt.Sprintf("%d", s.Vol),
			fmt.Sprintf("%d/%d/%d", s.Red, s.Green, s.Blue),
			fmt.Sprintf("%s/%s/%s", s.SndWF, s.SndModWF, s.LgtModWF),
		})
	}
	PrintTable([]string{"#", "Time", "Beat", "Pitch L/R", "AM L/S", "Bright", "Vol", "RGB", "Snd/SndMod/LgtMod"}, rows)
}
