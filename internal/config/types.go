package config

import "time"

// Frames configures the UI loop.
type Frames struct {
	// IntervalMS is the frame interval used when the host has no refresh
	// timer of its own.
	IntervalMS int `yaml:"interval_ms"`
}

// Interval returns the frame interval as a duration.
func (f Frames) Interval() time.Duration {
	return time.Duration(f.IntervalMS) * time.Millisecond
}

// Popout configures the debugger's secondary surface.
type Popout struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// TTY is the terminal device the popout is painted on. Empty means the
	// debugger stays in the corner of the primary screen.
	TTY string `yaml:"tty"`
}

// Inspect configures the value inspector.
type Inspect struct {
	MaxDepth int `yaml:"max_depth"`
}

// Gate configures the input gate.
type Gate struct {
	DetailsID string `yaml:"details_id"`
	OverlayID string `yaml:"overlay_id"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level"`
	// File receives log output while the terminal host owns the screen.
	File string `yaml:"file"`
}

// History configures history export and import.
type History struct {
	// Dir is where exported histories are written.
	Dir string `yaml:"dir"`
	// Import is the file the debugger loads when asked to import.
	Import string `yaml:"import"`
}

// Config represents the .overlook/config.yaml file.
type Config struct {
	Frames  Frames  `yaml:"frames"`
	Popout  Popout  `yaml:"popout"`
	Inspect Inspect `yaml:"inspect"`
	Gate    Gate    `yaml:"gate"`
	Log     Log     `yaml:"log"`
	History History `yaml:"history"`
}
