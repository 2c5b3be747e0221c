package engine

import (
	"io"

	"github.com/danieljhkim/kasina/internal/composer"
)

// ComposeRequest represents a request to compose a session from intent.
type ComposeRequest struct {
	// Path is the session file to write (default: config output)
	Path string

	// Preset is an optional preset name layered over the config defaults
	Preset string

	// Intent holds explicit choices; zero-valued fields inherit from the
	// preset or config
	Intent composer.Intent

	// Duration replaces Intent.DurationMin when set, zero included
	Duration *float64

	// Mode and ColorSet override the device settings from config
	Mode     *int
	ColorSet *int

	// Seed fixes the random source
	Seed *uint64

	// Append merges the composed segments into an existing session file
	Append bool

	// Force allows overwriting an existing session file
	Force bool

	// DryRun composes without writing
	DryRun bool
}

// InitRequest represents a request to create an empty session file.
type InitRequest struct {
	Path     string
	Mode     *int
	ColorSet *int
	Force    bool
}

// AddSegmentRequest represents a request to add a default segment.
type AddSegmentRequest struct {
	Path string

	// At is the 1-based position of the new segment; 0 appends
	At int

	// Fields overrides default values, keyed by KBS key
	Fields map[string]string
}

// SetSegmentRequest represents a request to change fields of one segment.
type SetSegmentRequest struct {
	Path string

	// Index is the 1-based segment number
	Index int

	// Fields maps KBS keys to new values
	Fields map[string]string
}

// RemoveSegmentRequest represents a request to delete one segment.
type RemoveSegmentRequest struct {
	Path  string
	Index int
}

// MoveSegmentRequest represents a request to reorder one segment.
type MoveSegmentRequest struct {
	Path string
	From int
	To   int
}

// SetGlobalRequest represents a request to change the device settings.
type SetGlobalRequest struct {
	Path     string
	Mode     *int
	ColorSet *int
}

// ShowRequest represents a request to read a session file.
type ShowRequest struct {
	Path string
}

// ExportRequest represents a request to deliver a session under a new name.
type ExportRequest struct {
	Path string

	// Dest is the file to write; ignored when Writer is set
	Dest string

	// Writer receives the rendered bytes instead of Dest
	Writer io.Writer

	// Force allows overwriting Dest
	Force bool
}

// SavePresetRequest represents a request to store an intent under a name.
type SavePresetRequest struct {
	Name string

	// Intent holds explicit choices; zero-valued fields inherit from config
	Intent composer.Intent

	// Duration replaces Intent.DurationMin when set, zero included
	Duration *float64
}
