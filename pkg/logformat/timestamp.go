package logformat

import (
	"regexp"
	"strconv"
	"time"
)

// TimestampParser detects and parses timestamps from log lines
type TimestampParser struct {
	patterns []timestampPattern
}

type timestampPattern struct {
	regex  *regexp.Regexp
	layout string
}

// NewTimestampParser creates a parser with common timestamp formats
func NewTimestampParser() *TimestampParser {
	return &TimestampParser{
		patterns: []timestampPattern{
			// ISO 8601 / RFC 3339 variants
			// 2024-01-15T10:30:45.123Z
			{
				regex:  regexp.MustCompile(`(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{3})?(?:Z|[+-]\d{2}:\d{2})?)`),
				layout: time.RFC3339,
			},
			// Common log format with milliseconds
			// 2024-01-15 10:30:45.123
			{
				regex:  regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3})`),
				layout: "2006-01-02 15:04:05.000",
			},
			// Common log format without milliseconds
			{
				regex:  regexp.MustCompile(`(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`),
				layout: "2006-01-02 15:04:05",
			},
			// Syslog format
			// Jan 15 10:30:45
			{
				regex:  regexp.MustCompile(`([A-Z][a-z]{2} \d{1,2} \d{2}:\d{2}:\d{2})`),
				layout: "Jan 2 15:04:05",
			},
			// Unix timestamp (seconds)
			{
				regex:  regexp.MustCompile(`^(\d{10})(?:\D|$)`),
				layout: "unix",
			},
		},
	}
}

// Parse extracts the first recognizable timestamp from a line, or nil
// if none matched.
func (p *TimestampParser) Parse(line string) *time.Time {
	for _, pattern := range p.patterns {
		match := pattern.regex.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		if pattern.layout == "unix" {
			secs, err := strconv.ParseInt(match[1], 10, 64)
			if err != nil {
				continue
			}
			t := time.Unix(secs, 0)
			return &t
		}

		t, err := time.Parse(pattern.layout, match[1])
		if err != nil {
			continue
		}
		return &t
	}
	return nil
}
