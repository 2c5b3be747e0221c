// Package kbs reads and writes KBS session files, the line-oriented
// "Key: Value" text format the light/sound device plays back.
//
// A file is a header block followed by one block per segment, each block
// terminated by a blank line:
//
//	# Kasina Studio session, generated 2024-01-15 10:30:00
//	ColorControlMode: 3
//	GlobalColorSet: 1
//
//	# Segment 1
//	Time: 360
//	Beat: 7
//	...
//	LgtModWF: Sine
//
// Segment keys always appear in FieldOrder. Floats are written with at most
// two decimal places, so a file read back and written again is unchanged
// apart from its header comment.
package kbs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/danieljhkim/kasina/internal/session"
)

var (
	// ErrMalformedSegment indicates a segment lacking or carrying an unusable value.
	ErrMalformedSegment = errors.New("malformed segment")

	// ErrMalformedHeader indicates a broken header block.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrUnknownField indicates a key that is not a segment field.
	ErrUnknownField = errors.New("unknown segment field")
)

// TimestampLayout is the layout of the generation time in the header comment.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	headerComment     = "# Kasina Studio session, generated "
	segmentComment    = "# Segment "
	keyColorMode      = "ColorControlMode"
	keyGlobalColorSet = "GlobalColorSet"
)

// Marshal renders s as a KBS file generated at the given time.
func Marshal(generated time.Time, s *session.Session) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, generated, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes s to w. Every segment is checked before the first byte is
// written, so a malformed session produces no output at all.
func Encode(w io.Writer, generated time.Time, s *session.Session) error {
	if err := Check(s); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%s\n", headerComment, generated.Format(TimestampLayout))
	fmt.Fprintf(bw, "%s: %d\n", keyColorMode, int(s.Global.ColorControlMode))
	fmt.Fprintf(bw, "%s: %d\n\n", keyGlobalColorSet, s.Global.GlobalColorSet)

	for i := range s.Segments {
		fmt.Fprintf(bw, "%s%d\n", segmentComment, i+1)
		for _, key := range FieldOrder {
			fmt.Fprintf(bw, "%s: %s\n", key, fields[key].format(&s.Segments[i]))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Check validates the global settings and every segment of s.
func Check(s *session.Session) error {
	if err := s.Global.Validate(); err != nil {
		return err
	}
	for i, seg := range s.Segments {
		if key := seg.MissingField(); key != "" {
			return fmt.Errorf("%w: segment %d has no usable %s", ErrMalformedSegment, i+1, key)
		}
	}
	return nil
}
