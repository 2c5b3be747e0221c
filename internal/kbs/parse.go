package kbs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danieljhkim/kasina/internal/session"
)

// block is a run of non-blank lines.
type block struct {
	line  int // 1-based line number of the first line
	pairs []pair
}

type pair struct {
	line       int
	key, value string
}

// Parse reads a KBS file. The first block is the header; every later block
// holding at least one key is a segment. Comment lines are ignored, which
// also means the "# Segment <n>" labels are not checked against position.
func Parse(r io.Reader) (*session.Session, error) {
	blocks, err := readBlocks(r)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedHeader)
	}

	global, err := parseHeader(blocks[0])
	if err != nil {
		return nil, err
	}

	s := session.New(global)
	for _, b := range blocks[1:] {
		seg, err := parseSegment(b, s.Len()+1)
		if err != nil {
			return nil, err
		}
		s.Append(seg)
	}
	return s, nil
}

func readBlocks(r io.Reader) ([]block, error) {
	var (
		blocks []block
		cur    *block
		lineNo int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		if line == "" {
			if cur != nil {
				blocks = append(blocks, *cur)
				cur = nil
			}
			continue
		}
		if cur == nil {
			cur = &block{line: lineNo}
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"Key: Value\", got %q", lineNo, line)
		}
		cur.pairs = append(cur.pairs, pair{
			line:  lineNo,
			key:   strings.TrimSpace(key),
			value: strings.TrimSpace(value),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}

	// Blocks made only of comments carry nothing; the header is kept so
	// that a missing key is reported against it.
	out := blocks[:0]
	for i, b := range blocks {
		if i == 0 || len(b.pairs) > 0 {
			out = append(out, b)
		}
	}
	return out, nil
}

func parseHeader(b block) (session.GlobalConfig, error) {
	var (
		global           session.GlobalConfig
		haveMode, haveCS bool
	)
	for _, p := range b.pairs {
		if p.key != keyColorMode && p.key != keyGlobalColorSet {
			return global, fmt.Errorf("%w: line %d: unknown key %q", ErrMalformedHeader, p.line, p.key)
		}
		v, err := strconv.Atoi(p.value)
		if err != nil {
			return global, fmt.Errorf("%w: line %d: %s must be an integer, got %q", ErrMalformedHeader, p.line, p.key, p.value)
		}
		switch p.key {
		case keyColorMode:
			if haveMode {
				return global, fmt.Errorf("%w: line %d: duplicate %s", ErrMalformedHeader, p.line, p.key)
			}
			global.ColorControlMode = session.ColorControlMode(v)
			haveMode = true
		case keyGlobalColorSet:
			if haveCS {
				return global, fmt.Errorf("%w: line %d: duplicate %s", ErrMalformedHeader, p.line, p.key)
			}
			global.GlobalColorSet = v
			haveCS = true
		}
	}
	if !haveMode {
		return global, fmt.Errorf("%w: missing %s", ErrMalformedHeader, keyColorMode)
	}
	if !haveCS {
		return global, fmt.Errorf("%w: missing %s", ErrMalformedHeader, keyGlobalColorSet)
	}
	if err := global.Validate(); err != nil {
		return global, err
	}
	return global, nil
}

func parseSegment(b block, n int) (session.Segment, error) {
	var seg session.Segment
	seen := make(map[string]bool, len(FieldOrder))

	for _, p := range b.pairs {
		if seen[p.key] {
			return seg, fmt.Errorf("%w: segment %d, line %d: duplicate %s", ErrMalformedSegment, n, p.line, p.key)
		}
		if err := SetField(&seg, p.key, p.value); err != nil {
			return seg, fmt.Errorf("%w: segment %d, line %d: %w", ErrMalformedSegment, n, p.line, err)
		}
		seen[p.key] = true
	}

	for _, key := range FieldOrder {
		if !seen[key] {
			return seg, fmt.Errorf("%w: segment %d (line %d) is missing %s", ErrMalformedSegment, n, b.line, key)
		}
	}
	if key := seg.MissingField(); key != "" {
		return seg, fmt.Errorf("%w: segment %d (line %d) has no usable %s", ErrMalformedSegment, n, b.line, key)
	}
	return seg, nil
}
