package composer

import (
	"sort"
	"strings"

	"github.com/danieljhkim/kasina/internal/session"
)

// Range is a closed numeric interval [Lo, Hi].
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 {
	return (r.Lo + r.Hi) / 2
}

// Profile is the beat and carrier-pitch envelope of a session style.
type Profile struct {
	Beat  Range `json:"beat"`
	Pitch Range `json:"pitch"`
}

// Depths is an (L_AMDepth, S_AMDepth) pair.
type Depths struct {
	Light int `json:"light"`
	Sound int `json:"sound"`
}

// RGB is a base color on the device's 0-100 scale.
type RGB struct {
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`
}

const (
	StyleEnergizing  = "energizing"
	StylePsychedelic = "psychedelic"
	StyleSleep       = "sleep"
	StyleJourney     = "journey"

	IntensitySoft    = "soft"
	IntensityMedium  = "medium"
	IntensityIntense = "intense"

	ChromaCold    = "cold"
	ChromaWarm    = "warm"
	ChromaNeutral = "neutral"
	ChromaRainbow = "rainbow"
	ChromaDeep    = "deep"

	ProgressionRise    = "rise"
	ProgressionFall    = "fall"
	ProgressionWave    = "wave"
	ProgressionPlateau = "plateau"
)

var profiles = map[string]Profile{
	StyleEnergizing:  {Beat: Range{10, 20}, Pitch: Range{130, 220}},
	StylePsychedelic: {Beat: Range{4, 10}, Pitch: Range{110, 160}},
	StyleSleep:       {Beat: Range{2, 7}, Pitch: Range{80, 120}},
	StyleJourney:     {Beat: Range{3, 9}, Pitch: Range{90, 150}},
}

// French style names used by older session presets.
var styleAliases = map[string]string{
	"energisant":    StyleEnergizing,
	"psychedelique": StylePsychedelic,
	"sommeil":       StyleSleep,
	"voyage":        StyleJourney,
}

var intensities = map[string]Depths{
	IntensitySoft:    {Light: 40, Sound: 20},
	IntensityMedium:  {Light: 70, Sound: 40},
	IntensityIntense: {Light: 100, Sound: 60},
}

var chromas = map[string]RGB{
	ChromaCold:    {20, 60, 120},
	ChromaWarm:    {120, 60, 20},
	ChromaNeutral: {80, 80, 80},
	ChromaDeep:    {50, 10, 80},
}

var (
	soundWaveforms = []session.Waveform{session.Sine, session.Triangle, session.SawUp, session.SawDown}
	modWaveforms   = []session.Waveform{session.Sine, session.Triangle, session.Square}
	lightWaveforms = soundWaveforms
)

// Styles returns the canonical style names, sorted.
func Styles() []string { return keys(profiles) }

// Intensities returns the intensity names, sorted.
func Intensities() []string { return keys(intensities) }

// Chromas returns the palette names, fixed palettes first.
func Chromas() []string {
	return append(keys(chromas), ChromaRainbow)
}

// Progressions returns the progression shapes.
func Progressions() []string {
	return []string{ProgressionRise, ProgressionFall, ProgressionWave, ProgressionPlateau}
}

// LookupProfile returns the profile for a style name or alias.
func LookupProfile(style string) (Profile, bool) {
	name := strings.ToLower(strings.TrimSpace(style))
	if canonical, ok := styleAliases[name]; ok {
		name = canonical
	}
	p, ok := profiles[name]
	return p, ok
}

// depthsFor falls back to intense for anything it does not recognize.
func depthsFor(intensity string) Depths {
	if d, ok := intensities[strings.ToLower(strings.TrimSpace(intensity))]; ok {
		return d
	}
	return intensities[IntensityIntense]
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
