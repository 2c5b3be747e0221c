package kbs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danieljhkim/kasina/internal/session"
)

// FieldOrder is the canonical order of segment keys in a KBS file.
// Device importers read segment lines positionally, so this list must not
// be reordered.
var FieldOrder = []string{
	"Time",
	"Beat",
	"L_Pitch",
	"R_Pitch",
	"L_AMDepth",
	"S_AMDepth",
	"Bright",
	"Vol",
	"Red",
	"Green",
	"Blue",
	"SndWF",
	"SndModWF",
	"LgtModWF",
}

// field binds a KBS key to a Segment member.
type field struct {
	format func(*session.Segment) string
	parse  func(*session.Segment, string) error
}

var fields = map[string]field{
	"Time":      floatField(func(s *session.Segment) *float64 { return &s.Time }),
	"Beat":      floatField(func(s *session.Segment) *float64 { return &s.Beat }),
	"L_Pitch":   floatField(func(s *session.Segment) *float64 { return &s.LPitch }),
	"R_Pitch":   floatField(func(s *session.Segment) *float64 { return &s.RPitch }),
	"L_AMDepth": intField(func(s *session.Segment) *int { return &s.LAMDepth }),
	"S_AMDepth": intField(func(s *session.Segment) *int { return &s.SAMDepth }),
	"Bright":    intField(func(s *session.Segment) *int { return &s.Bright }),
	"Vol":       intField(func(s *session.Segment) *int { return &s.Vol }),
	"Red":       intField(func(s *session.Segment) *int { return &s.Red }),
	"Green":     intField(func(s *session.Segment) *int { return &s.Green }),
	"Blue":      intField(func(s *session.Segment) *int { return &s.Blue }),
	"SndWF":     waveField(func(s *session.Segment) *session.Waveform { return &s.SndWF }),
	"SndModWF":  waveField(func(s *session.Segment) *session.Waveform { return &s.SndModWF }),
	"LgtModWF":  waveField(func(s *session.Segment) *session.Waveform { return &s.LgtModWF }),
}

// FormatFloat renders v rounded half away from zero to 2 decimal places,
// in shortest form: 360, 7.5, 118.25.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(Normalize(v), 'f', -1, 64)
}

// Normalize rounds v to the 2 decimal places a KBS file keeps.
func Normalize(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// Avoid printing "-0".
		return 0
	}
	return r
}

func floatField(ptr func(*session.Segment) *float64) field {
	return field{
		format: func(s *session.Segment) string { return FormatFloat(*ptr(s)) },
		parse: func(s *session.Segment, raw string) error {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("not a number: %q", raw)
			}
			*ptr(s) = v
			return nil
		},
	}
}

// maxIntValue bounds integral decimal text, whose conversion to int is
// undefined once it leaves the int range.
const maxIntValue = math.MaxInt32

// intField accepts integral decimal text such as "50.0" as well as "50".
func intField(ptr func(*session.Segment) *int) field {
	return field{
		format: func(s *session.Segment) string { return strconv.Itoa(*ptr(s)) },
		parse: func(s *session.Segment, raw string) error {
			if v, err := strconv.Atoi(raw); err == nil {
				*ptr(s) = v
				return nil
			}
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || f != math.Trunc(f) || math.Abs(f) > maxIntValue {
				return fmt.Errorf("not an integer: %q", raw)
			}
			*ptr(s) = int(f)
			return nil
		},
	}
}

func waveField(ptr func(*session.Segment) *session.Waveform) field {
	return field{
		format: func(s *session.Segment) string { return string(*ptr(s)) },
		parse: func(s *session.Segment, raw string) error {
			w, err := session.ParseWaveform(raw)
			if err != nil {
				return err
			}
			*ptr(s) = w
			return nil
		},
	}
}

// FieldValue returns the KBS rendering of key for seg.
func FieldValue(seg session.Segment, key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return f.format(&seg), nil
}

// SetField parses raw as the value of key and stores it in seg.
func SetField(seg *session.Segment, key, raw string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownField, key, strings.Join(FieldOrder, ", "))
	}
	if err := f.parse(seg, strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}
