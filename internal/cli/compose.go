package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/kasina/internal/composer"
	"github.com/danieljhkim/kasina/internal/engine"
)

// intentFlags holds the intent flags shared by compose and preset save.
type intentFlags struct {
	style       string
	duration    float64
	intensity   string
	chroma      string
	progression string
}

func (f *intentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.style, "style", "", "Session style ("+strings.Join(composer.Styles(), ", ")+")")
	cmd.Flags().Float64VarP(&f.duration, "duration", "d", 0, "Session length in minutes")
	cmd.Flags().StringVar(&f.intensity, "intensity", "", "Modulation depth ("+strings.Join(composer.Intensities(), ", ")+")")
	cmd.Flags().StringVar(&f.chroma, "chroma", "", "Color palette ("+strings.Join(composer.Chromas(), ", ")+")")
	cmd.Flags().StringVar(&f.progression, "progression", "", "Beat curve ("+strings.Join(composer.Progressions(), ", ")+")")

	_ = cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions(composer.Styles(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("intensity", cobra.FixedCompletions(composer.Intensities(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("chroma", cobra.FixedCompletions(composer.Chromas(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("progression", cobra.FixedCompletions(composer.Progressions(), cobra.ShellCompDirectiveNoFileComp))
}

// durationOverride returns the --duration value when it was given, so that
// an explicit 0 is rejected rather than replaced by the default.
func (f *intentFlags) durationOverride(cmd *cobra.Command) *float64 {
	if !cmd.Flags().Changed("duration") {
		return nil
	}
	d := f.duration
	return &d
}

// intent returns the explicit choices; empty fields inherit from preset or config.
func (f *intentFlags) intent() composer.Intent {
	return composer.Intent{
		Style:       f.style,
		DurationMin: f.duration,
		Intensity:   f.intensity,
		Chroma:      f.chroma,
		Progression: f.progression,
	}
}

var (
	composeIntent   intentFlags
	composeOutput   string
	composePreset   string
	composeSeed     uint64
	composeAppend   bool
	composeForce    bool
	composeDryRun   bool
	composeMode     int
	composeColorSet int
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a session from an intent",
	Long: `Generate a sequence of segments from a style, duration, intensity,
palette and progression, and write it as a KBS session file.

Omitted choices come from --preset, then from the config file. The seed used
is always reported so the same session can be composed again with --seed.

Examples:
  kasina compose --style sleep --duration 60 --intensity soft --progression fall -o night.kbs
  kasina compose --preset focus --seed 42
  kasina compose --style journey --duration 12 --append -o night.kbs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ctx := context.Background()

		req := &engine.ComposeRequest{
			Path:     composeOutput,
			Preset:   composePreset,
			Intent:   composeIntent.intent(),
			Duration: composeIntent.durationOverride(cmd),
			Mode:     intFlag(cmd.Flags().Changed("mode"), composeMode),
			ColorSet: intFlag(cmd.Flags().Changed("colorset"), composeColorSet),
			Append:   composeAppend,
			Force:    composeForce,
			DryRun:   composeDryRun,
		}
		if cmd.Flags().Changed("seed") {
			seed := composeSeed
			req.Seed = &seed
		}

		result, err := eng.Compose(ctx, req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		in := result.Intent
		if !slices.Contains(composer.Intensities(), in.Intensity) {
			PrintWarning(fmt.Sprintf("Unknown intensity %q, composed as %s", in.Intensity, composer.IntensityIntense))
		}
		if !slices.Contains(composer.Progressions(), in.Progression) {
			PrintWarning(fmt.Sprintf("Unknown progression %q, composed as %s", in.Progression, composer.ProgressionPlateau))
		}
		summary := fmt.Sprintf("%s, %s min, %s, %s, %s",
			in.Style, formatNumber(in.DurationMin), in.Intensity, in.Chroma, in.Progression)

		if result.DryRun {
			PrintInfo(fmt.Sprintf("Dry run - would write %s to %s (%s)",
				PrintCount(result.Added, "segment", "segments"), result.Path, summary))
			printSegments(result.Session.Segments[result.Session.Len()-result.Added:], result.Session.Len()-result.Added)
			PrintLabelValue("Seed", fmt.Sprintf("%d", result.Seed))
			return nil
		}

		verb := "Composed"
		if composeAppend {
			verb = "Appended"
		}
		PrintSuccess(fmt.Sprintf("%s %s into %s (%s)",
			verb, PrintCount(result.Added, "segment", "segments"), result.Path, summary))
		PrintLabelValue("Seed", fmt.Sprintf("%d", result.Seed))
		PrintLabelValue("Length", formatClock(result.Session.TotalTime()))
		return nil
	},
}

func init() {
	composeIntent.register(composeCmd)
	composeCmd.Flags().StringVarP(&composeOutput, "output", "o", "", "Session file to write (default: config output)")
	composeCmd.Flags().StringVarP(&composePreset, "preset", "p", "", "Start from a saved preset")
	composeCmd.Flags().Uint64Var(&composeSeed, "seed", 0, "Seed the random source for a reproducible session")
	composeCmd.Flags().BoolVar(&composeAppend, "append", false, "Add the segments after those already in the file")
	composeCmd.Flags().BoolVarP(&composeForce, "force", "f", false, "Overwrite an existing session file")
	composeCmd.Flags().BoolVar(&composeDryRun, "dry-run", false, "Show the composed segments without writing")
	composeCmd.Flags().IntVar(&composeMode, "mode", 0, "ColorControlMode (0-3)")
	composeCmd.Flags().IntVar(&composeColorSet, "colorset", 0, "GlobalColorSet (1-16)")
	composeCmd.MarkFlagsMutuallyExclusive("append", "force")
}
