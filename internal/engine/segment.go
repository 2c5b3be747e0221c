package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/danieljhkim/kasina/internal/kbs"
	"github.com/danieljhkim/kasina/internal/session"
)

// AddSegment inserts a default segment, optionally with some fields changed.
func (e *Engine) AddSegment(ctx context.Context, req *AddSegmentRequest) (*EditResult, error) {
	s, err := e.load(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	seg := session.DefaultSegment()
	if err := applyFields(&seg, req.Fields); err != nil {
		return nil, err
	}

	at := s.Len()
	if req.At != 0 {
		if at, err = position(req.At); err != nil {
			return nil, err
		}
	}
	if err := s.Insert(at, seg); err != nil {
		return nil, err
	}
	return e.commit(ctx, req.Path, s, at+1)
}

// SetSegment changes fields of one segment.
func (e *Engine) SetSegment(ctx context.Context, req *SetSegmentRequest) (*EditResult, error) {
	if len(req.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to set", ErrValidation)
	}
	at, err := position(req.Index)
	if err != nil {
		return nil, err
	}
	s, err := e.load(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	err = s.Update(at, func(seg *session.Segment) error {
		return applyFields(seg, req.Fields)
	})
	if err != nil {
		return nil, err
	}
	return e.commit(ctx, req.Path, s, req.Index)
}

// RemoveSegment deletes one segment.
func (e *Engine) RemoveSegment(ctx context.Context, req *RemoveSegmentRequest) (*EditResult, error) {
	at, err := position(req.Index)
	if err != nil {
		return nil, err
	}
	s, err := e.load(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	if _, err := s.Remove(at); err != nil {
		return nil, err
	}
	return e.commit(ctx, req.Path, s, req.Index)
}

// MoveSegment moves one segment to a new position.
func (e *Engine) MoveSegment(ctx context.Context, req *MoveSegmentRequest) (*EditResult, error) {
	from, err := position(req.From)
	if err != nil {
		return nil, err
	}
	to, err := position(req.To)
	if err != nil {
		return nil, err
	}
	s, err := e.load(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	if err := s.Move(from, to); err != nil {
		return nil, err
	}
	return e.commit(ctx, req.Path, s, req.To)
}

// SetGlobal changes the device-level settings of a session file.
func (e *Engine) SetGlobal(ctx context.Context, req *SetGlobalRequest) (*EditResult, error) {
	if req.Mode == nil && req.ColorSet == nil {
		return nil, fmt.Errorf("%w: nothing to change", ErrValidation)
	}
	s, err := e.load(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	if s.Global, err = overlayGlobal(s.Global, req.Mode, req.ColorSet); err != nil {
		return nil, err
	}
	return e.commit(ctx, req.Path, s, 0)
}

func (e *Engine) commit(ctx context.Context, path string, s *session.Session, index int) (*EditResult, error) {
	if _, err := e.save(ctx, path, s); err != nil {
		return nil, err
	}
	return &EditResult{
		Path:      path,
		Index:     index,
		Segments:  s.Len(),
		TotalTime: s.TotalTime(),
	}, nil
}

// position converts a 1-based segment number to a slice index.
func position(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: segment numbers start at 1, got %d", ErrValidation, n)
	}
	return n - 1, nil
}

// applyFields sets fields in key order so the first bad key reported is stable.
// Values already in the file are not range checked, only the ones being set.
func applyFields(seg *session.Segment, fields map[string]string) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := kbs.SetField(seg, k, fields[k]); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if key := seg.MissingField(); key != "" {
		return fmt.Errorf("%w: %s has no usable value", ErrValidation, key)
	}
	for _, key := range seg.OutOfRange() {
		if _, set := fields[key]; set {
			return fmt.Errorf("%w: %s %s is out of range", ErrValidation, key, fields[key])
		}
	}
	return nil
}
