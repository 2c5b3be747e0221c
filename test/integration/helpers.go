package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/kasina/internal/clock"
	"github.com/danieljhkim/kasina/internal/config"
	"github.com/danieljhkim/kasina/internal/engine"
	"github.com/danieljhkim/kasina/internal/fsops"
	"github.com/danieljhkim/kasina/internal/hash"
)

// generated is the header timestamp of every session written in these tests.
var generated = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// setupTestEngine builds an engine on the real filesystem under a temp dir.
// It returns the engine, the fake clock and the directory for session files.
func setupTestEngine(t *testing.T) (*engine.Engine, *clock.FakeClock, string) {
	t.Helper()
	root := t.TempDir()

	paths := config.PathsAt(filepath.Join(root, ".kasina"))
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("failed to create kasina dirs: %v", err)
	}
	cfg, err := config.Load(paths.Config)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	fs := fsops.NewRealFS()
	clk := clock.NewFakeClock(generated)
	eng := engine.New(fs, hash.NewSHA256Hasher(), clk, cfg, config.NewPresetStore(fs, paths), nil)

	dir := filepath.Join(root, "sessions")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create sessions dir: %v", err)
	}
	return eng, clk, dir
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return data
}
