package session

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange indicates a segment position outside the session.
	ErrIndexOutOfRange = errors.New("segment index out of range")

	// ErrInvalidGlobalConfig indicates device-level settings outside their ranges.
	ErrInvalidGlobalConfig = errors.New("invalid global config")
)

// ColorControlMode selects where the device takes segment colors from.
type ColorControlMode int

const (
	ColorFixedSet      ColorControlMode = 0
	ColorGlobalSet     ColorControlMode = 1
	ColorPerSegmentSet ColorControlMode = 2
	ColorCustomRGB     ColorControlMode = 3
)

// String returns a human-readable name for the mode.
func (m ColorControlMode) String() string {
	switch m {
	case ColorFixedSet:
		return "fixed device set"
	case ColorGlobalSet:
		return "global set"
	case ColorPerSegmentSet:
		return "per-segment set"
	case ColorCustomRGB:
		return "custom RGB"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// GlobalConfig holds the session-wide device settings.
type GlobalConfig struct {
	ColorControlMode ColorControlMode `json:"colorControlMode"`
	GlobalColorSet   int              `json:"globalColorSet"`
}

// DefaultGlobalConfig returns custom RGB colors with the first color set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		ColorControlMode: ColorCustomRGB,
		GlobalColorSet:   1,
	}
}

// Validate checks the mode is 0-3 and the color set is 1-16.
func (g GlobalConfig) Validate() error {
	if g.ColorControlMode < ColorFixedSet || g.ColorControlMode > ColorCustomRGB {
		return fmt.Errorf("%w: ColorControlMode %d not in 0-3", ErrInvalidGlobalConfig, int(g.ColorControlMode))
	}
	if g.GlobalColorSet < 1 || g.GlobalColorSet > 16 {
		return fmt.Errorf("%w: GlobalColorSet %d not in 1-16", ErrInvalidGlobalConfig, g.GlobalColorSet)
	}
	return nil
}

// Session is a GlobalConfig plus the ordered segments played by the device.
type Session struct {
	Global   GlobalConfig `json:"global"`
	Segments []Segment    `json:"segments"`
}

// New creates an empty session with the given global settings.
func New(global GlobalConfig) *Session {
	return &Session{
		Global:   global,
		Segments: []Segment{},
	}
}

// Len returns the number of segments.
func (s *Session) Len() int {
	return len(s.Segments)
}

// TotalTime returns the summed duration of all segments in seconds.
func (s *Session) TotalTime() float64 {
	var total float64
	for _, seg := range s.Segments {
		total += seg.Time
	}
	return total
}

// Append adds segments to the end of the session in the given order.
func (s *Session) Append(segs ...Segment) {
	s.Segments = append(s.Segments, segs...)
}

// Insert places seg at position at (0-based), shifting later segments.
// at == Len() appends.
func (s *Session) Insert(at int, seg Segment) error {
	if at < 0 || at > len(s.Segments) {
		return fmt.Errorf("%w: insert at %d, session has %d segments", ErrIndexOutOfRange, at, len(s.Segments))
	}
	s.Segments = append(s.Segments, Segment{})
	copy(s.Segments[at+1:], s.Segments[at:])
	s.Segments[at] = seg
	return nil
}

// Remove deletes the segment at position at and returns it.
func (s *Session) Remove(at int) (Segment, error) {
	if err := s.check(at); err != nil {
		return Segment{}, err
	}
	removed := s.Segments[at]
	s.Segments = append(s.Segments[:at], s.Segments[at+1:]...)
	return removed, nil
}

// Move relocates the segment at from so that it ends up at position to.
func (s *Session) Move(from, to int) error {
	if err := s.check(from); err != nil {
		return err
	}
	if err := s.check(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	seg := s.Segments[from]
	s.Segments = append(s.Segments[:from], s.Segments[from+1:]...)
	s.Segments = append(s.Segments, Segment{})
	copy(s.Segments[to+1:], s.Segments[to:])
	s.Segments[to] = seg
	return nil
}

// Update applies fn to the segment at position at. The segment is only
// replaced if fn succeeds.
func (s *Session) Update(at int, fn func(*Segment) error) error {
	if err := s.check(at); err != nil {
		return err
	}
	seg := s.Segments[at]
	if err := fn(&seg); err != nil {
		return err
	}
	s.Segments[at] = seg
	return nil
}

func (s *Session) check(at int) error {
	if at < 0 || at >= len(s.Segments) {
		return fmt.Errorf("%w: index %d, session has %d segments", ErrIndexOutOfRange, at, len(s.Segments))
	}
	return nil
}
