// Package composer turns a handful of high-level intents into an ordered
// list of stimulation segments.
//
// Composition is a pure function of its Intent and the random source it is
// handed. Carrier pitches, waveforms and the rainbow palette are drawn from
// that source, so a seeded source reproduces a session exactly.
package composer

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/danieljhkim/kasina/internal/session"
)

var (
	// ErrInvalidIntent indicates an unknown style or chroma.
	ErrInvalidIntent = errors.New("invalid intent")

	// ErrDegenerateDuration indicates a duration that cannot be split into segments.
	ErrDegenerateDuration = errors.New("degenerate duration")
)

const (
	// minSegments is the floor on segment count regardless of duration.
	minSegments = 4

	// minutesPerSegment is the nominal length of one segment.
	minutesPerSegment = 6

	// MaxSegments caps a single composition. It bounds DurationMin to
	// MaxSegments*6 minutes, a little under 70 days.
	MaxSegments = 16384

	// colorDrift is how far each color channel brightens by the last segment.
	colorDrift = 40
)

// Rand is the random source consumed by Compose. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Intent is what the user asks for.
type Intent struct {
	Style       string  `json:"style" yaml:"style"`
	DurationMin float64 `json:"durationMin" yaml:"duration_min"`
	Intensity   string  `json:"intensity" yaml:"intensity"`
	Chroma      string  `json:"chroma" yaml:"chroma"`
	Progression string  `json:"progression" yaml:"progression"`
}

// SegmentCount returns how many segments a session of durationMin minutes
// gets. Durations past MaxSegments*6 minutes are rejected by Compose and
// must not be passed here.
func SegmentCount(durationMin float64) int {
	n := int(math.Floor(durationMin / minutesPerSegment))
	if n < minSegments {
		return minSegments
	}
	return n
}

// Compose builds the segments for intent. It either returns every segment
// or an error; nothing is drawn from rng when the intent is rejected.
func Compose(intent Intent, rng Rand) ([]session.Segment, error) {
	prof, ok := LookupProfile(intent.Style)
	if !ok {
		return nil, fmt.Errorf("%w: unknown style %q (want one of %s)",
			ErrInvalidIntent, intent.Style, strings.Join(Styles(), ", "))
	}
	chroma := strings.ToLower(strings.TrimSpace(intent.Chroma))
	if _, ok := chromas[chroma]; !ok && chroma != ChromaRainbow {
		return nil, fmt.Errorf("%w: unknown chroma %q (want one of %s)",
			ErrInvalidIntent, intent.Chroma, strings.Join(Chromas(), ", "))
	}
	if !(intent.DurationMin > 0) || math.IsInf(intent.DurationMin, 0) {
		return nil, fmt.Errorf("%w: duration must be a positive number of minutes, got %v",
			ErrDegenerateDuration, intent.DurationMin)
	}
	if math.Floor(intent.DurationMin/minutesPerSegment) > MaxSegments {
		return nil, fmt.Errorf("%w: %v minutes needs more than %d segments",
			ErrDegenerateDuration, intent.DurationMin, MaxSegments)
	}

	base := baseColor(chroma, rng)
	depths := depthsFor(intent.Intensity)
	progression := strings.ToLower(strings.TrimSpace(intent.Progression))

	n := SegmentCount(intent.DurationMin)
	segTime := intent.DurationMin * 60 / float64(n)

	segments := make([]session.Segment, 0, n)
	for i := 0; i < n; i++ {
		p := progress(i, n)
		beat := round2(beatAt(progression, prof.Beat, p))
		lPitch := round2(prof.Pitch.Lo + rng.Float64()*(prof.Pitch.Hi-prof.Pitch.Lo))

		segments = append(segments, session.Segment{
			Time:     segTime,
			Beat:     beat,
			LPitch:   lPitch,
			RPitch:   round2(lPitch + beat),
			LAMDepth: depths.Light,
			SAMDepth: depths.Sound,
			Bright:   int(lerp(p, 40, 100)),
			Vol:      int(lerp(p, 30, 80)),
			Red:      channel(base.Red, p),
			Green:    channel(base.Green, p),
			Blue:     channel(base.Blue, p),
			SndWF:    pick(rng, soundWaveforms),
			SndModWF: pick(rng, modWaveforms),
			LgtModWF: pick(rng, lightWaveforms),
		})
	}
	return segments, nil
}

// progress is the fraction of the session elapsed at segment i.
// A single-segment session stays at 0.
func progress(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func beatAt(progression string, r Range, p float64) float64 {
	switch progression {
	case ProgressionRise:
		return lerp(p, r.Lo, r.Hi)
	case ProgressionFall:
		return lerp(p, r.Hi, r.Lo)
	case ProgressionWave:
		return lerp(math.Sin(2*math.Pi*p)*0.5+0.5, r.Lo, r.Hi)
	default:
		return r.Mid()
	}
}

func baseColor(chroma string, rng Rand) RGB {
	if chroma == ChromaRainbow {
		return RGB{Red: rng.IntN(100), Green: rng.IntN(100), Blue: rng.IntN(100)}
	}
	return chromas[chroma]
}

func channel(base int, p float64) int {
	return int(math.Min(100, float64(base)+p*colorDrift))
}

func pick(rng Rand, set []session.Waveform) session.Waveform {
	return set[rng.IntN(len(set))]
}

func lerp(p, from, to float64) float64 {
	return from + p*(to-from)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
