package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/kasina/internal/composer"
	"github.com/danieljhkim/kasina/internal/fsops"
)

// PresetExt is the extension of preset files.
const PresetExt = ".yaml"

// PresetStore reads and writes named intent presets under Paths.Presets.
type PresetStore struct {
	fs    fsops.FS
	paths *Paths
}

// NewPresetStore creates a PresetStore.
func NewPresetStore(fs fsops.FS, paths *Paths) *PresetStore {
	return &PresetStore{fs: fs, paths: paths}
}

// List returns the preset names, sorted.
func (s *PresetStore) List() ([]string, error) {
	files, err := s.fs.ListFiles(s.paths.Presets, PresetExt)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = strings.TrimSuffix(f, PresetExt)
	}
	return names, nil
}

// Load reads the named preset over base. Keys the preset leaves out keep
// their value from base.
func (s *PresetStore) Load(name string, base composer.Intent) (composer.Intent, error) {
	if err := s.fs.ValidateIdentifier(name); err != nil {
		return base, fmt.Errorf("invalid preset name: %w", err)
	}
	path := s.paths.PresetPath(name)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read preset %q: %w", name, err)
	}

	intent := base
	if err := yaml.Unmarshal(data, &intent); err != nil {
		return base, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}
	return intent, nil
}

// Save writes intent as the named preset, replacing any previous one.
func (s *PresetStore) Save(name string, intent composer.Intent) error {
	if err := s.fs.ValidateIdentifier(name); err != nil {
		return fmt.Errorf("invalid preset name: %w", err)
	}
	data, err := yaml.Marshal(&intent)
	if err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	if err := s.fs.AtomicWrite(s.paths.PresetPath(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write preset %q: %w", name, err)
	}
	return nil
}
