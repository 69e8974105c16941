package logformat

import (
	"strings"
)

// Level represents a log severity level
type Level int

const (
	LevelUnknown Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// Patterns maps each level to the substrings that identify it.
type Patterns struct {
	Trace []string
	Debug []string
	Info  []string
	Warn  []string
	Error []string
	Fatal []string
}

// LevelDetector detects log levels from line content
type LevelDetector struct {
	patterns map[Level][]string
}

// NewLevelDetector creates a detector from patterns
func NewLevelDetector(p Patterns) *LevelDetector {
	return &LevelDetector{
		patterns: map[Level][]string{
			LevelTrace: p.Trace,
			LevelDebug: p.Debug,
			LevelInfo:  p.Info,
			LevelWarn:  p.Warn,
			LevelError: p.Error,
			LevelFatal: p.Fatal,
		},
	}
}

// Detect returns the log level for a line
func (d *LevelDetector) Detect(line string) Level {
	// Check in order of severity (most specific first)
	for _, level := range []Level{LevelFatal, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace} {
		for _, pattern := range d.patterns[level] {
			if strings.Contains(line, pattern) {
				return level
			}
		}
	}
	return LevelUnknown
}
