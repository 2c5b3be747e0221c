package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/danieljhkim/kasina/internal/composer"
	"github.com/danieljhkim/kasina/internal/session"
)

// EnvPrefix prefixes environment overrides, e.g. KASINA_COMPOSE_STYLE.
const EnvPrefix = "KASINA"

// Config is the user configuration read from config.yaml.
type Config struct {
	// Global holds the device settings written into new sessions.
	Global GlobalSettings `mapstructure:"global" yaml:"global" json:"global"`

	// Compose holds the intent used when compose flags are omitted.
	Compose ComposeSettings `mapstructure:"compose" yaml:"compose" json:"compose"`

	// Output is the file name compose writes when -o is omitted.
	Output string `mapstructure:"output" yaml:"output" json:"output"`
}

// GlobalSettings mirrors session.GlobalConfig in config-file form.
type GlobalSettings struct {
	ColorControlMode int `mapstructure:"color_control_mode" yaml:"color_control_mode" json:"colorControlMode"`
	GlobalColorSet   int `mapstructure:"global_colorset" yaml:"global_colorset" json:"globalColorSet"`
}

// ComposeSettings is the default composition intent.
type ComposeSettings struct {
	Style       string  `mapstructure:"style" yaml:"style" json:"style"`
	DurationMin float64 `mapstructure:"duration_min" yaml:"duration_min" json:"durationMin"`
	Intensity   string  `mapstructure:"intensity" yaml:"intensity" json:"intensity"`
	Chroma      string  `mapstructure:"chroma" yaml:"chroma" json:"chroma"`
	Progression string  `mapstructure:"progression" yaml:"progression" json:"progression"`

	// Seed fixes the random source; 0 draws a fresh seed per run.
	Seed uint64 `mapstructure:"seed" yaml:"seed" json:"seed"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	g := session.DefaultGlobalConfig()
	return &Config{
		Global: GlobalSettings{
			ColorControlMode: int(g.ColorControlMode),
			GlobalColorSet:   g.GlobalColorSet,
		},
		Compose: ComposeSettings{
			Style:       composer.StyleJourney,
			DurationMin: 30,
			Intensity:   composer.IntensityMedium,
			Chroma:      composer.ChromaNeutral,
			Progression: composer.ProgressionRise,
		},
		Output: "session.kbs",
	}
}

// GlobalConfig converts the settings to the session model.
func (c *Config) GlobalConfig() session.GlobalConfig {
	return session.GlobalConfig{
		ColorControlMode: session.ColorControlMode(c.Global.ColorControlMode),
		GlobalColorSet:   c.Global.GlobalColorSet,
	}
}

// Intent converts the compose defaults to a composer intent.
func (c *Config) Intent() composer.Intent {
	return composer.Intent{
		Style:       c.Compose.Style,
		DurationMin: c.Compose.DurationMin,
		Intensity:   c.Compose.Intensity,
		Chroma:      c.Compose.Chroma,
		Progression: c.Compose.Progression,
	}
}

// Load reads the config file at path on top of DefaultConfig. A missing
// file is not an error. KASINA_* environment variables override both,
// e.g. KASINA_OUTPUT=night.kbs or KASINA_COMPOSE_STYLE=sleep.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("global.color_control_mode", defaults.Global.ColorControlMode)
	v.SetDefault("global.global_colorset", defaults.Global.GlobalColorSet)
	v.SetDefault("compose.style", defaults.Compose.Style)
	v.SetDefault("compose.duration_min", defaults.Compose.DurationMin)
	v.SetDefault("compose.intensity", defaults.Compose.Intensity)
	v.SetDefault("compose.chroma", defaults.Compose.Chroma)
	v.SetDefault("compose.progression", defaults.Compose.Progression)
	v.SetDefault("compose.seed", defaults.Compose.Seed)
	v.SetDefault("output", defaults.Output)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.GlobalConfig().Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultFile is the commented config written by "kasina config init".
const DefaultFile = `# kasina configuration

# Device settings written into new sessions.
global:
  # 0 fixed device set, 1 global set, 2 per-segment set, 3 custom RGB
  color_control_mode: 3
  # 1-16
  global_colorset: 1

# Intent used when compose flags are omitted.
compose:
  style: journey          # energizing, psychedelic, sleep, journey
  duration_min: 30
  intensity: medium       # soft, medium, intense
  chroma: neutral         # cold, warm, neutral, rainbow, deep
  progression: rise       # rise, fall, wave, plateau
  seed: 0                 # 0 draws a fresh seed on every run

# File compose writes when -o is omitted.
output: session.kbs
`
