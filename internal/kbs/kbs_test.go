package kbs

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/kasina/internal/composer"
	"github.com/danieljhkim/kasina/internal/session"
)

var generated = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

const defaultSegmentBlock = `Time: 60
Beat: 8
L_Pitch: 110
R_Pitch: 118
L_AMDepth: 80
S_AMDepth: 20
Bright: 60
Vol: 50
Red: 50
Green: 50
Blue: 50
SndWF: Sine
SndModWF: Sine
LgtModWF: Sine
`

func TestMarshal_EmptySession(t *testing.T) {
	s := session.New(session.GlobalConfig{ColorControlMode: 3, GlobalColorSet: 1})

	got, err := Marshal(generated, s)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	want := "# Kasina Studio session, generated 2024-01-15 10:30:00\n" +
		"ColorControlMode: 3\n" +
		"GlobalColorSet: 1\n" +
		"\n"
	if string(got) != want {
		t.Errorf("Marshal() =\n%q\nwant\n%q", got, want)
	}
}

func TestMarshal_Layout(t *testing.T) {
	s := session.New(session.GlobalConfig{ColorControlMode: 1, GlobalColorSet: 12})
	second := session.DefaultSegment()
	second.Time = 90.5
	second.Beat = 4.25
	second.SndWF = session.PinkNoise
	s.Append(session.DefaultSegment(), second)

	got, err := Marshal(generated, s)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	secondBlock := strings.NewReplacer(
		"Time: 60", "Time: 90.5",
		"Beat: 8", "Beat: 4.25",
		"SndWF: Sine", "SndWF: Pink_Noise",
	).Replace(defaultSegmentBlock)

	want := "# Kasina Studio session, generated 2024-01-15 10:30:00\n" +
		"ColorControlMode: 1\n" +
		"GlobalColorSet: 12\n" +
		"\n" +
		"# Segment 1\n" + defaultSegmentBlock + "\n" +
		"# Segment 2\n" + secondBlock + "\n"
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestMarshal_KeyOrder(t *testing.T) {
	s := session.New(session.DefaultGlobalConfig())
	s.Append(session.DefaultSegment())

	got, err := Marshal(generated, s)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(string(got), "\n")
	// header (3) + blank + "# Segment 1"
	body := lines[5 : 5+len(FieldOrder)]
	for i, line := range body {
		key, _, _ := strings.Cut(line, ":")
		if key != FieldOrder[i] {
			t.Errorf("line %d key = %q, want %q", i, key, FieldOrder[i])
		}
	}
}

func TestMarshal_Idempotent(t *testing.T) {
	segs, err := composer.Compose(composer.Intent{
		Style: "psychedelic", DurationMin: 45, Intensity: "intense", Chroma: "rainbow", Progression: "wave",
	}, composer.NewRand(17))
	if err != nil {
		t.Fatal(err)
	}
	s := session.New(session.DefaultGlobalConfig())
	s.Append(segs...)

	first, err := Marshal(generated, s)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Marshal(generated, s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("serializing the same session twice produced different bytes")
	}
}

func TestMarshal_MalformedSegment(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*session.Segment)
		key    string
	}{
		{name: "zero time", mutate: func(s *session.Segment) { s.Time = 0 }, key: "Time"},
		{name: "NaN beat", mutate: func(s *session.Segment) { s.Beat = math.NaN() }, key: "Beat"},
		{name: "missing waveform", mutate: func(s *session.Segment) { s.LgtModWF = "" }, key: "LgtModWF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session.New(session.DefaultGlobalConfig())
			bad := session.DefaultSegment()
			tt.mutate(&bad)
			s.Append(session.DefaultSegment(), bad)

			var buf bytes.Buffer
			err := Encode(&buf, generated, s)
			if !errors.Is(err, ErrMalformedSegment) {
				t.Fatalf("Encode error = %v, want ErrMalformedSegment", err)
			}
			if !strings.Contains(err.Error(), "segment 2") || !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error %q should name segment 2 and %s", err, tt.key)
			}
			if buf.Len() != 0 {
				t.Errorf("Encode wrote %d bytes for a malformed session", buf.Len())
			}
		})
	}
}

func TestMarshal_InvalidGlobalConfig(t *testing.T) {
	s := session.New(session.GlobalConfig{ColorControlMode: 5, GlobalColorSet: 1})
	if _, err := Marshal(generated, s); !errors.Is(err, session.ErrInvalidGlobalConfig) {
		t.Errorf("Marshal error = %v, want ErrInvalidGlobalConfig", err)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 360, want: "360"},
		{in: 7.5, want: "7.5"},
		{in: 118.254, want: "118.25"},
		{in: 0.125, want: "0.13"},
		{in: 1.0 / 3, want: "0.33"},
		{in: -0.001, want: "0"},
		{in: 144.9999, want: "145"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	s := session.New(session.GlobalConfig{ColorControlMode: 2, GlobalColorSet: 7})
	s.Append(
		session.Segment{
			Time: 120, Beat: 3.333, LPitch: 101.126, RPitch: 104.459,
			LAMDepth: 55, SAMDepth: 10, Bright: 0, Vol: 100,
			Red: 0, Green: 100, Blue: 33,
			SndWF: session.Square, SndModWF: session.SawDown, LgtModWF: session.PinkNoise,
		},
		session.DefaultSegment(),
	)

	data, err := Marshal(generated, s)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	got, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	if got.Global != s.Global {
		t.Errorf("Global = %+v, want %+v", got.Global, s.Global)
	}
	if got.Len() != s.Len() {
		t.Fatalf("parsed %d segments, want %d", got.Len(), s.Len())
	}
	for i := range s.Segments {
		for _, key := range FieldOrder {
			want, _ := FieldValue(s.Segments[i], key)
			have, _ := FieldValue(got.Segments[i], key)
			if want != have {
				t.Errorf("segment %d %s = %q, want %q", i+1, key, have, want)
			}
		}
	}
	if got.Segments[0].Beat != 3.33 || got.Segments[0].LPitch != 101.13 {
		t.Errorf("floats not normalized to 2 dp: Beat=%v L_Pitch=%v", got.Segments[0].Beat, got.Segments[0].LPitch)
	}

	again, err := Marshal(generated, got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("re-serialized output differs:\n%s\nvs\n%s", data, again)
	}
}

func TestRoundTrip_Empty(t *testing.T) {
	s := session.New(session.GlobalConfig{ColorControlMode: 3, GlobalColorSet: 1})
	data, err := Marshal(generated, s)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got.Len() != 0 || got.Global != s.Global {
		t.Errorf("Parse() = %+v, want empty session with %+v", got, s.Global)
	}
}

func TestParse_Lenient(t *testing.T) {
	input := "# exported elsewhere\r\n" +
		"ColorControlMode: 3\r\n" +
		"GlobalColorSet: 1\r\n" +
		"\r\n" +
		"\r\n" +
		"# Segment 1\r\n" +
		strings.ReplaceAll(strings.ReplaceAll(defaultSegmentBlock, "Red: 50", "Red: 50.0"), "\n", "\r\n") +
		"\r\n" +
		"# trailing note\r\n"

	s, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("parsed %d segments, want 1", s.Len())
	}
	if s.Segments[0] != session.DefaultSegment() {
		t.Errorf("segment = %+v, want %+v", s.Segments[0], session.DefaultSegment())
	}
}

func TestParse_Errors(t *testing.T) {
	header := "# h\nColorControlMode: 3\nGlobalColorSet: 1\n\n"

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "empty file", input: "", want: ErrMalformedHeader},
		{name: "missing colorset", input: "# h\nColorControlMode: 3\n\n", want: ErrMalformedHeader},
		{name: "non-integer mode", input: "ColorControlMode: three\nGlobalColorSet: 1\n", want: ErrMalformedHeader},
		{name: "unknown header key", input: "ColorControlMode: 3\nGlobalColorSet: 1\nTempo: 4\n", want: ErrMalformedHeader},
		{name: "colorset out of range", input: "ColorControlMode: 3\nGlobalColorSet: 40\n", want: session.ErrInvalidGlobalConfig},
		{
			name:  "missing key",
			input: header + "# Segment 1\n" + strings.Replace(defaultSegmentBlock, "Vol: 50\n", "", 1),
			want:  ErrMalformedSegment,
		},
		{
			name:  "duplicate key",
			input: header + "# Segment 1\n" + defaultSegmentBlock + "Beat: 9\n",
			want:  ErrMalformedSegment,
		},
		{
			name:  "unknown key",
			input: header + "# Segment 1\n" + defaultSegmentBlock + "Tempo: 9\n",
			want:  ErrMalformedSegment,
		},
		{
			name:  "fractional int",
			input: header + "# Segment 1\n" + strings.Replace(defaultSegmentBlock, "Vol: 50", "Vol: 50.5", 1),
			want:  ErrMalformedSegment,
		},
		{
			name:  "unknown waveform",
			input: header + "# Segment 1\n" + strings.Replace(defaultSegmentBlock, "SndWF: Sine", "SndWF: Wobble", 1),
			want:  ErrMalformedSegment,
		},
		{
			name:  "zero time",
			input: header + "# Segment 1\n" + strings.Replace(defaultSegmentBlock, "Time: 60", "Time: 0", 1),
			want:  ErrMalformedSegment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSetField(t *testing.T) {
	seg := session.DefaultSegment()

	if err := SetField(&seg, "Beat", " 6.5 "); err != nil {
		t.Fatalf("SetField Beat error = %v", err)
	}
	if seg.Beat != 6.5 {
		t.Errorf("Beat = %v, want 6.5", seg.Beat)
	}
	if err := SetField(&seg, "LgtModWF", "Saw_Down"); err != nil {
		t.Fatalf("SetField LgtModWF error = %v", err)
	}
	if seg.LgtModWF != session.SawDown {
		t.Errorf("LgtModWF = %v, want Saw_Down", seg.LgtModWF)
	}
	if err := SetField(&seg, "beat", "1"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("SetField(beat) error = %v, want ErrUnknownField", err)
	}
	if err := SetField(&seg, "Red", "lots"); err == nil {
		t.Error("SetField(Red, lots) should fail")
	}

	for _, raw := range []string{"50.0", "-7.0"} {
		if err := SetField(&seg, "Vol", raw); err != nil {
			t.Errorf("SetField(Vol, %s) error = %v", raw, err)
		}
	}
	for _, raw := range []string{"1e30", "-1e30", "2147483648.0", "+Inf", "NaN", "50.5"} {
		seg := session.DefaultSegment()
		if err := SetField(&seg, "Bright", raw); err == nil {
			t.Errorf("SetField(Bright, %s) should fail", raw)
		}
		if seg.Bright != 60 {
			t.Errorf("SetField(Bright, %s) changed Bright to %d", raw, seg.Bright)
		}
	}
}
