package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/danieljhkim/kasina/internal/composer"
	"github.com/danieljhkim/kasina/internal/session"
)

// Compose builds segments from intent and writes them to a session file.
// With Append the segments are merged after the existing ones; otherwise
// a new session is written, refusing to replace a file unless Force is set.
func (e *Engine) Compose(ctx context.Context, req *ComposeRequest) (*ComposeResult, error) {
	path := req.Path
	if path == "" {
		path = e.cfg.Output
	}
	if req.Append && req.Force {
		return nil, fmt.Errorf("%w: --append and --force are mutually exclusive", ErrValidation)
	}

	intent, err := e.resolveIntent(req.Preset, req.Intent, req.Duration)
	if err != nil {
		return nil, err
	}

	exists, err := e.fs.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check session file: %w", err)
	}

	var s *session.Session
	switch {
	case req.Append:
		if s, err = e.load(ctx, path); err != nil {
			return nil, err
		}
		if s.Global, err = overlayGlobal(s.Global, req.Mode, req.ColorSet); err != nil {
			return nil, err
		}
	case exists && !req.Force:
		return nil, fmt.Errorf("%w: %s (use --force to overwrite or --append to extend)", ErrExists, path)
	default:
		global, err := overlayGlobal(e.cfg.GlobalConfig(), req.Mode, req.ColorSet)
		if err != nil {
			return nil, err
		}
		s = session.New(global)
	}

	rng, seed := e.rng(req.Seed)
	segs, err := composer.Compose(intent, rng)
	if err != nil {
		return nil, err
	}
	s.Append(segs...)

	e.logger.Debug("composed session",
		"style", intent.Style,
		"duration_min", intent.DurationMin,
		"intensity", intent.Intensity,
		"chroma", intent.Chroma,
		"progression", intent.Progression,
		"seed", seed,
		"segments", len(segs),
	)

	result := &ComposeResult{
		Path:    path,
		Intent:  intent,
		Seed:    seed,
		Added:   len(segs),
		Session: s,
		DryRun:  req.DryRun,
	}
	if req.DryRun {
		if _, err := e.render(s); err != nil {
			return nil, err
		}
		return result, nil
	}
	if _, err := e.save(ctx, path, s); err != nil {
		return nil, err
	}
	return result, nil
}

// resolveIntent layers config defaults, then the preset, then explicit values.
func (e *Engine) resolveIntent(preset string, explicit composer.Intent, duration *float64) (composer.Intent, error) {
	intent := e.cfg.Intent()
	if preset != "" {
		loaded, err := e.presets.Load(preset, intent)
		if errors.Is(err, fs.ErrNotExist) {
			return intent, fmt.Errorf("%w: preset %q", ErrNotFound, preset)
		}
		if err != nil {
			return intent, err
		}
		intent = loaded
	}
	return overlayIntent(intent, explicit, duration), nil
}

// overlayIntent applies the non-empty fields of over to base. A non-nil
// duration wins over both, so an explicit zero is kept and later rejected.
func overlayIntent(base, over composer.Intent, duration *float64) composer.Intent {
	if over.Style != "" {
		base.Style = over.Style
	}
	if over.DurationMin != 0 {
		base.DurationMin = over.DurationMin
	}
	if over.Intensity != "" {
		base.Intensity = over.Intensity
	}
	if over.Chroma != "" {
		base.Chroma = over.Chroma
	}
	if over.Progression != "" {
		base.Progression = over.Progression
	}
	if duration != nil {
		base.DurationMin = *duration
	}
	return base
}

// Init writes an empty session file.
func (e *Engine) Init(ctx context.Context, req *InitRequest) (*EditResult, error) {
	exists, err := e.fs.Exists(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to check session file: %w", err)
	}
	if exists && !req.Force {
		return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, req.Path)
	}

	global, err := overlayGlobal(e.cfg.GlobalConfig(), req.Mode, req.ColorSet)
	if err != nil {
		return nil, err
	}
	s := session.New(global)
	if _, err := e.save(ctx, req.Path, s); err != nil {
		return nil, err
	}
	return &EditResult{Path: req.Path}, nil
}

// overlayGlobal applies the given overrides to g and validates the result.
func overlayGlobal(g session.GlobalConfig, mode, colorSet *int) (session.GlobalConfig, error) {
	if mode != nil {
		g.ColorControlMode = session.ColorControlMode(*mode)
	}
	if colorSet != nil {
		g.GlobalColorSet = *colorSet
	}
	if err := g.Validate(); err != nil {
		return g, err
	}
	return g, nil
}
