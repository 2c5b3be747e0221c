package session

import (
	"errors"
	"reflect"
	"testing"
)

// beats returns the Beat of every segment, which tests use as an identity.
func beats(s *Session) []float64 {
	out := make([]float64, len(s.Segments))
	for i, seg := range s.Segments {
		out[i] = seg.Beat
	}
	return out
}

func withBeats(bs ...float64) *Session {
	s := New(DefaultGlobalConfig())
	for _, b := range bs {
		seg := DefaultSegment()
		seg.Beat = b
		s.Append(seg)
	}
	return s
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSession_Insert(t *testing.T) {
	tests := []struct {
		name    string
		at      int
		want    []float64
		wantErr bool
	}{
		{name: "front", at: 0, want: []float64{9, 1, 2, 3}},
		{name: "middle", at: 2, want: []float64{1, 2, 9, 3}},
		{name: "end appends", at: 3, want: []float64{1, 2, 3, 9}},
		{name: "negative", at: -1, wantErr: true},
		{name: "past end", at: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withBeats(1, 2, 3)
			seg := DefaultSegment()
			seg.Beat = 9

			err := s.Insert(tt.at, seg)
			if tt.wantErr {
				if !errors.Is(err, ErrIndexOutOfRange) {
					t.Fatalf("Insert(%d) error = %v, want ErrIndexOutOfRange", tt.at, err)
				}
				if got := beats(s); !equalFloats(got, []float64{1, 2, 3}) {
					t.Errorf("failed Insert mutated session: %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Insert(%d) error = %v", tt.at, err)
			}
			if got := beats(s); !equalFloats(got, tt.want) {
				t.Errorf("after Insert(%d) beats = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestSession_Remove(t *testing.T) {
	s := withBeats(1, 2, 3)

	removed, err := s.Remove(1)
	if err != nil {
		t.Fatalf("Remove(1) error = %v", err)
	}
	if removed.Beat != 2 {
		t.Errorf("removed Beat = %v, want 2", removed.Beat)
	}
	if got := beats(s); !equalFloats(got, []float64{1, 3}) {
		t.Errorf("beats after Remove = %v, want [1 3]", got)
	}

	if _, err := s.Remove(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Remove(2) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSession_Move(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []float64
		wantErr  bool
	}{
		{name: "forward", from: 0, to: 2, want: []float64{2, 3, 1, 4}},
		{name: "backward", from: 3, to: 1, want: []float64{1, 4, 2, 3}},
		{name: "same position", from: 2, to: 2, want: []float64{1, 2, 3, 4}},
		{name: "to last", from: 1, to: 3, want: []float64{1, 3, 4, 2}},
		{name: "from out of range", from: 4, to: 0, wantErr: true},
		{name: "to out of range", from: 0, to: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withBeats(1, 2, 3, 4)
			err := s.Move(tt.from, tt.to)
			if tt.wantErr {
				if !errors.Is(err, ErrIndexOutOfRange) {
					t.Fatalf("Move error = %v, want ErrIndexOutOfRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Move error = %v", err)
			}
			if got := beats(s); !equalFloats(got, tt.want) {
				t.Errorf("beats = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_Update(t *testing.T) {
	s := withBeats(1, 2)

	t.Run("applies change", func(t *testing.T) {
		err := s.Update(0, func(seg *Segment) error {
			seg.Beat = 5
			return nil
		})
		if err != nil {
			t.Fatalf("Update error = %v", err)
		}
		if s.Segments[0].Beat != 5 {
			t.Errorf("Beat = %v, want 5", s.Segments[0].Beat)
		}
	})

	t.Run("failed change is discarded", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.Update(1, func(seg *Segment) error {
			seg.Beat = 99
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Update error = %v, want boom", err)
		}
		if s.Segments[1].Beat != 2 {
			t.Errorf("Beat = %v, want unchanged 2", s.Segments[1].Beat)
		}
	})
}

func TestSession_TotalTime(t *testing.T) {
	s := New(DefaultGlobalConfig())
	if s.TotalTime() != 0 {
		t.Errorf("empty TotalTime = %v, want 0", s.TotalTime())
	}
	s.Append(DefaultSegment(), DefaultSegment())
	if s.TotalTime() != 120 {
		t.Errorf("TotalTime = %v, want 120", s.TotalTime())
	}
}

func TestGlobalConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     GlobalConfig
		wantErr bool
	}{
		{name: "default", cfg: DefaultGlobalConfig()},
		{name: "lowest", cfg: GlobalConfig{ColorControlMode: 0, GlobalColorSet: 1}},
		{name: "highest", cfg: GlobalConfig{ColorControlMode: 3, GlobalColorSet: 16}},
		{name: "mode too high", cfg: GlobalConfig{ColorControlMode: 4, GlobalColorSet: 1}, wantErr: true},
		{name: "mode negative", cfg: GlobalConfig{ColorControlMode: -1, GlobalColorSet: 1}, wantErr: true},
		{name: "colorset zero", cfg: GlobalConfig{ColorControlMode: 3, GlobalColorSet: 0}, wantErr: true},
		{name: "colorset too high", cfg: GlobalConfig{ColorControlMode: 3, GlobalColorSet: 17}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidGlobalConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidGlobalConfig", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestSegment_MissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Segment)
		want   string
	}{
		{name: "complete", mutate: func(*Segment) {}, want: ""},
		{name: "zero time", mutate: func(s *Segment) { s.Time = 0 }, want: "Time"},
		{name: "negative time", mutate: func(s *Segment) { s.Time = -1 }, want: "Time"},
		{name: "empty sound waveform", mutate: func(s *Segment) { s.SndWF = "" }, want: "SndWF"},
		{name: "unknown mod waveform", mutate: func(s *Segment) { s.SndModWF = "Wobble" }, want: "SndModWF"},
		{name: "empty light waveform", mutate: func(s *Segment) { s.LgtModWF = "" }, want: "LgtModWF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := DefaultSegment()
			tt.mutate(&seg)
			if got := seg.MissingField(); got != tt.want {
				t.Errorf("MissingField() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSegment_OutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Segment)
		want   []string
	}{
		{name: "default", mutate: func(*Segment) {}, want: nil},
		{name: "bounds", mutate: func(s *Segment) { s.Bright, s.Vol, s.Red = 0, 100, 100 }, want: nil},
		{name: "zero beat", mutate: func(s *Segment) { s.Beat = 0 }, want: []string{"Beat"}},
		{name: "negative pitch", mutate: func(s *Segment) { s.LPitch = -110 }, want: []string{"L_Pitch"}},
		{name: "bright over 100", mutate: func(s *Segment) { s.Bright = 101 }, want: []string{"Bright"}},
		{
			name:   "several in key order",
			mutate: func(s *Segment) { s.Blue, s.LAMDepth, s.Beat = -1, 900, -3 },
			want:   []string{"Beat", "L_AMDepth", "Blue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := DefaultSegment()
			tt.mutate(&seg)
			if got := seg.OutOfRange(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("OutOfRange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseWaveform(t *testing.T) {
	for _, w := range Waveforms {
		got, err := ParseWaveform(string(w))
		if err != nil || got != w {
			t.Errorf("ParseWaveform(%q) = %q, %v", w, got, err)
		}
	}
	if _, err := ParseWaveform("sine"); err == nil {
		t.Error("ParseWaveform is case-sensitive, expected error for \"sine\"")
	}
}
