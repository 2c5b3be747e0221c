package engine

import (
	"github.com/danieljhkim/kasina/internal/composer"
	"github.com/danieljhkim/kasina/internal/session"
)

// ComposeResult represents the outcome of a composition.
type ComposeResult struct {
	// Path is the session file written (or that would be written)
	Path string `json:"path"`

	// Intent is the fully resolved intent
	Intent composer.Intent `json:"intent"`

	// Seed reproduces this composition with --seed
	Seed uint64 `json:"seed"`

	// Added is the number of composed segments
	Added int `json:"added"`

	// Session is the session as written
	Session *session.Session `json:"session"`

	// DryRun is set when nothing was written
	DryRun bool `json:"dryRun"`
}

// EditResult represents the state of a session file after an edit.
type EditResult struct {
	Path string `json:"path"`

	// Index is the 1-based segment the edit touched, 0 for session-wide edits
	Index int `json:"index,omitempty"`

	Segments int `json:"segments"`

	// TotalTime is the session length in seconds
	TotalTime float64 `json:"totalTime"`
}

// ShowResult represents a session file read back.
type ShowResult struct {
	Path      string           `json:"path"`
	Session   *session.Session `json:"session"`
	TotalTime float64          `json:"totalTime"`
}

// TimelineEntry places one segment on the session clock.
type TimelineEntry struct {
	Index  int     `json:"index"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Beat   float64 `json:"beat"`
	Bright int     `json:"bright"`
	Red    int     `json:"red"`
	Green  int     `json:"green"`
	Blue   int     `json:"blue"`
}

// TimelineResult is the text stand-in for a beat/brightness/color chart.
type TimelineResult struct {
	Path      string          `json:"path"`
	Entries   []TimelineEntry `json:"entries"`
	TotalTime float64         `json:"totalTime"`
}

// ExportResult represents a delivered session.
type ExportResult struct {
	Dest     string `json:"dest"`
	Bytes    int    `json:"bytes"`
	Segments int    `json:"segments"`

	// SHA256 is the digest of the delivered bytes
	SHA256 string `json:"sha256"`
}

// PresetInfo is one saved preset.
type PresetInfo struct {
	Name   string          `json:"name"`
	Intent composer.Intent `json:"intent"`
}

// ListPresetsResult lists saved presets.
type ListPresetsResult struct {
	Presets []PresetInfo `json:"presets"`
}
