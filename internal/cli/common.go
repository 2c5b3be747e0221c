package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/danieljhkim/kasina/internal/clock"
	"github.com/danieljhkim/kasina/internal/config"
	"github.com/danieljhkim/kasina/internal/engine"
	"github.com/danieljhkim/kasina/internal/fsops"
	"github.com/danieljhkim/kasina/internal/hash"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfg, err := config.Load(paths.Config)
	if err != nil {
		return nil, err
	}

	clk, err := clock.FromEnv()
	if err != nil {
		return nil, err
	}

	fs := fsops.NewRealFS()
	presets := config.NewPresetStore(fs, paths)
	return engine.New(fs, hash.NewSHA256Hasher(), clk, cfg, presets, newLogger()), nil
}

// newLogger returns the stderr logger; --verbose lowers the level to debug.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// parseAssignments splits KEY=VALUE arguments into a field map.
func parseAssignments(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected KEY=VALUE, got %q", arg)
		}
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("%s is set twice", key)
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields, nil
}

// parseIndex parses a 1-based segment number argument.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("segment number must be a positive integer, got %q", arg)
	}
	return n, nil
}

// intFlag returns a pointer to the flag value when it was given explicitly.
func intFlag(changed bool, v int) *int {
	if !changed {
		return nil
	}
	return &v
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
