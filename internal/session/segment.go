// Package session holds the data model of an AVS session: the stimulation
// segments, the device-level color settings, and the ordered, editable
// collection that ties them together.
//
// A Session is owned by its caller. The composer produces segments for it,
// the editing commands mutate it in place, and the KBS serializer only reads
// it. Segment order is playback order and is never changed implicitly.
package session

import (
	"fmt"
	"math"
)

// Waveform selects the shape of a carrier or modulation signal.
type Waveform string

const (
	Sine      Waveform = "Sine"
	Square    Waveform = "Square"
	Triangle  Waveform = "Triangle"
	SawUp     Waveform = "Saw_Up"
	SawDown   Waveform = "Saw_Down"
	PinkNoise Waveform = "Pink_Noise"
)

// Waveforms lists every waveform the device understands, in canonical order.
var Waveforms = []Waveform{Sine, Square, Triangle, SawUp, SawDown, PinkNoise}

// ParseWaveform returns the waveform with the given canonical name.
func ParseWaveform(s string) (Waveform, error) {
	for _, w := range Waveforms {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown waveform %q", s)
}

// Valid reports whether w is one of the enumerated waveforms.
func (w Waveform) Valid() bool {
	_, err := ParseWaveform(string(w))
	return err == nil
}

// Segment is one stimulation interval of a session.
type Segment struct {
	// Time is the segment duration in seconds.
	Time float64 `json:"time"`

	// Beat is the entrainment beat frequency in Hz.
	Beat float64 `json:"beat"`

	// LPitch and RPitch are the left and right carrier pitches in Hz.
	// Composed segments keep RPitch = LPitch + Beat.
	LPitch float64 `json:"lPitch"`
	RPitch float64 `json:"rPitch"`

	// Amplitude-modulation depths, percent.
	LAMDepth int `json:"lAMDepth"`
	SAMDepth int `json:"sAMDepth"`

	Bright int `json:"bright"`
	Vol    int `json:"vol"`

	// Color channels on the device's 0-100 scale.
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`

	SndWF    Waveform `json:"sndWF"`
	SndModWF Waveform `json:"sndModWF"`
	LgtModWF Waveform `json:"lgtModWF"`
}

// DefaultSegment returns the segment added by a manual "add segment" action.
func DefaultSegment() Segment {
	return Segment{
		Time:     60,
		Beat:     8,
		LPitch:   110,
		RPitch:   118,
		LAMDepth: 80,
		SAMDepth: 20,
		Bright:   60,
		Vol:      50,
		Red:      50,
		Green:    50,
		Blue:     50,
		SndWF:    Sine,
		SndModWF: Sine,
		LgtModWF: Sine,
	}
}

// MissingField returns the key of the first required value s lacks, or ""
// if s is complete. A segment needs a positive duration, finite frequencies
// and a known waveform in every waveform slot.
func (s Segment) MissingField() string {
	switch {
	case !(s.Time > 0) || math.IsInf(s.Time, 0):
		return "Time"
	case !finite(s.Beat):
		return "Beat"
	case !finite(s.LPitch):
		return "L_Pitch"
	case !finite(s.RPitch):
		return "R_Pitch"
	case !s.SndWF.Valid():
		return "SndWF"
	case !s.SndModWF.Valid():
		return "SndModWF"
	case !s.LgtModWF.Valid():
		return "LgtModWF"
	}
	return ""
}

// OutOfRange returns the keys, in KBS order, whose values fall outside
// the ranges an editor may set: positive frequencies and percentages in
// [0,100]. The serializer does not enforce these.
func (s Segment) OutOfRange() []string {
	var keys []string
	positive := []struct {
		key string
		v   float64
	}{
		{"Beat", s.Beat},
		{"L_Pitch", s.LPitch},
		{"R_Pitch", s.RPitch},
	}
	for _, f := range positive {
		if !(f.v > 0) {
			keys = append(keys, f.key)
		}
	}
	percent := []struct {
		key string
		v   int
	}{
		{"L_AMDepth", s.LAMDepth},
		{"S_AMDepth", s.SAMDepth},
		{"Bright", s.Bright},
		{"Vol", s.Vol},
		{"Red", s.Red},
		{"Green", s.Green},
		{"Blue", s.Blue},
	}
	for _, f := range percent {
		if f.v < 0 || f.v > 100 {
			keys = append(keys, f.key)
		}
	}
	return keys
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
