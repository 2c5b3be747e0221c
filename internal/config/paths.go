// Package config manages kasina configuration and filesystem paths.
//
// The default root is ~/.kasina/, holding config.yaml and a presets/
// directory of saved composition intents. The root can be moved with the
// KASINA_ROOT environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv overrides the root directory.
const RootEnv = "KASINA_ROOT"

// Paths contains all the filesystem paths used by kasina.
type Paths struct {
	// Root is the base directory for all kasina data (default: ~/.kasina)
	Root string

	// Config is the path to the config file
	Config string

	// Presets is the directory holding <name>.yaml intent presets
	Presets string
}

// DefaultPaths returns the default paths for kasina.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(RootEnv)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".kasina")
	}
	return PathsAt(root), nil
}

// PathsAt lays out the kasina paths under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:    root,
		Config:  filepath.Join(root, "config.yaml"),
		Presets: filepath.Join(root, "presets"),
	}
}

// PresetPath returns the file holding the named preset.
func (p *Paths) PresetPath(name string) string {
	return filepath.Join(p.Presets, name+PresetExt)
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Presets} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
