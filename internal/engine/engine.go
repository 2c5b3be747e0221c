// Package engine provides the core operations behind the kasina CLI.
//
// The engine sits between the commands and the pure packages. It loads a
// session file, hands the in-memory session to the composer or to an edit,
// and writes the result back through the KBS serializer.
//
// Key components:
//   - Engine: Main orchestrator holding the filesystem, clock and config
//   - Compose: Intent resolution (config, preset, flags) and composition
//   - Segment edits: Add/Set/Remove/Move on a session file
//   - Show/Timeline/Export: Read-only views and delivery of a session,
//     with a SHA-256 digest of the delivered bytes
package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/danieljhkim/kasina/internal/clock"
	"github.com/danieljhkim/kasina/internal/composer"
	"github.com/danieljhkim/kasina/internal/config"
	"github.com/danieljhkim/kasina/internal/fsops"
	"github.com/danieljhkim/kasina/internal/hash"
	"github.com/danieljhkim/kasina/internal/kbs"
	"github.com/danieljhkim/kasina/internal/session"
)

// Engine orchestrates all kasina operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs      fsops.FS
	hasher  hash.Hasher
	clock   clock.Clock
	cfg     *config.Config
	presets *config.PresetStore
	logger  *slog.Logger

	// newSeed supplies a seed when neither the request nor the config fixes one.
	newSeed func() uint64
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	cfg *config.Config,
	presets *config.PresetStore,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		fs:      fs,
		hasher:  hasher,
		clock:   clk,
		cfg:     cfg,
		presets: presets,
		logger:  logger,
		newSeed: rand.Uint64,
	}
}

// load reads and parses the session file at path.
func (e *Engine) load(ctx context.Context, path string) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	exists, err := e.fs.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check session file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: session file %s", ErrNotFound, path)
	}

	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	s, err := kbs.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	e.logger.Debug("loaded session", "path", path, "segments", s.Len())
	return s, nil
}

// save serializes s with a fresh header timestamp and writes it atomically.
func (e *Engine) save(ctx context.Context, path string, s *session.Session) ([]byte, error) {
	data, err := e.render(s)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.fs.AtomicWrite(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write session file: %w", err)
	}
	e.logger.Debug("wrote session", "path", path, "segments", s.Len(), "bytes", len(data))
	return data, nil
}

func (e *Engine) render(s *session.Session) ([]byte, error) {
	return kbs.Marshal(e.now(), s)
}

func (e *Engine) now() time.Time {
	return e.clock.Now()
}

// rng returns a seeded composer source and the seed it used.
func (e *Engine) rng(seed *uint64) (composer.Rand, uint64) {
	var s uint64
	switch {
	case seed != nil:
		s = *seed
	case e.cfg.Compose.Seed != 0:
		s = e.cfg.Compose.Seed
	default:
		s = e.newSeed()
	}
	return composer.NewRand(s), s
}
