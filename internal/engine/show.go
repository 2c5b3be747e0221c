package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/kasina/internal/composer"
	"github.com/danieljhkim/kasina/internal/config"
)

// Show reads a session file.
func (e *Engine) Show(ctx context.Context, req *ShowRequest) (*ShowResult, error) {
	s, err := e.load(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	return &ShowResult{
		Path:      req.Path,
		Session:   s,
		TotalTime: s.TotalTime(),
	}, nil
}

// Timeline lays the segments of a session file end to end.
func (e *Engine) Timeline(ctx context.Context, req *ShowRequest) (*TimelineResult, error) {
	s, err := e.load(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, s.Len())
	var t float64
	for i, seg := range s.Segments {
		entries = append(entries, TimelineEntry{
			Index:  i + 1,
			Start:  t,
			End:    t + seg.Time,
			Beat:   seg.Beat,
			Bright: seg.Bright,
			Red:    seg.Red,
			Green:  seg.Green,
			Blue:   seg.Blue,
		})
		t += seg.Time
	}
	return &TimelineResult{Path: req.Path, Entries: entries, TotalTime: t}, nil
}

// Export renders a session file again, with a fresh header, to Dest or Writer.
// The bytes are passed through untouched.
func (e *Engine) Export(ctx context.Context, req *ExportRequest) (*ExportResult, error) {
	s, err := e.load(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	if req.Writer != nil {
		data, err := e.render(s)
		if err != nil {
			return nil, err
		}
		if _, err := req.Writer.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write export: %w", err)
		}
		return &ExportResult{Dest: "-", Bytes: len(data), Segments: s.Len(), SHA256: e.hasher.Sum(data)}, nil
	}

	if req.Dest == "" {
		return nil, fmt.Errorf("%w: export destination is required", ErrValidation)
	}
	if filepath.Clean(req.Dest) == filepath.Clean(req.Path) {
		return nil, fmt.Errorf("%w: export destination is the source file", ErrValidation)
	}
	exists, err := e.fs.Exists(req.Dest)
	if err != nil {
		return nil, fmt.Errorf("failed to check export destination: %w", err)
	}
	if exists && !req.Force {
		return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, req.Dest)
	}

	data, err := e.save(ctx, req.Dest, s)
	if err != nil {
		return nil, err
	}

	// Removable media can fail silently; read the copy back.
	sum := e.hasher.Sum(data)
	written, err := e.fs.ReadFile(req.Dest)
	if err != nil {
		return nil, fmt.Errorf("failed to verify export: %w", err)
	}
	if got := e.hasher.Sum(written); got != sum {
		return nil, fmt.Errorf("export verification failed: %s has digest %s, want %s", req.Dest, got, sum)
	}
	e.logger.Debug("verified export", "dest", req.Dest, "sha256", sum)

	return &ExportResult{Dest: req.Dest, Bytes: len(data), Segments: s.Len(), SHA256: sum}, nil
}

// ListPresets returns every saved preset resolved over the config defaults.
func (e *Engine) ListPresets(ctx context.Context) (*ListPresetsResult, error) {
	names, err := e.presets.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	result := &ListPresetsResult{Presets: make([]PresetInfo, 0, len(names))}
	for _, name := range names {
		intent, err := e.presets.Load(name, e.cfg.Intent())
		if err != nil {
			e.logger.Warn("skipping unreadable preset", "name", name, "error", err)
			continue
		}
		result.Presets = append(result.Presets, PresetInfo{Name: name, Intent: intent})
	}
	return result, nil
}

// SavePreset stores an intent under a name for "compose --preset".
func (e *Engine) SavePreset(ctx context.Context, req *SavePresetRequest) (*PresetInfo, error) {
	intent := overlayIntent(e.cfg.Intent(), req.Intent, req.Duration)
	// A trial composition rejects unknown styles and palettes up front.
	if _, err := composer.Compose(intent, composer.NewRand(0)); err != nil {
		return nil, err
	}
	if err := e.presets.Save(req.Name, intent); err != nil {
		return nil, err
	}
	return &PresetInfo{Name: req.Name, Intent: intent}, nil
}

// InitConfig writes the commented default config file.
func (e *Engine) InitConfig(ctx context.Context, paths *config.Paths, force bool) (string, error) {
	exists, err := e.fs.Exists(paths.Config)
	if err != nil {
		return "", fmt.Errorf("failed to check config file: %w", err)
	}
	if exists && !force {
		return "", fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, paths.Config)
	}
	if err := e.fs.AtomicWrite(paths.Config, []byte(config.DefaultFile), 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return paths.Config, nil
}
