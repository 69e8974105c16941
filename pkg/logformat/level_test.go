package logformat

import "testing"

func testPatterns() Patterns {
	return Patterns{
		Trace: []string{"[TRC]", "TRACE"},
		Debug: []string{"[DBG]", "DEBUG"},
		Info:  []string{"[INF]", "INFO"},
		Warn:  []string{"[WRN]", "WARN"},
		Error: []string{"[ERR]", "ERROR"},
		Fatal: []string{"[FTL]", "FATAL"},
	}
}

func TestDetect(t *testing.T) {
	d := NewLevelDetector(testPatterns())

	cases := []struct {
		name string
		line string
		want Level
	}{
		{"info", "2024-01-15 10:30:45 [INF] started", LevelInfo},
		{"error", "2024-01-15 10:30:45 ERROR connection lost", LevelError},
		{"fatal_wins", "FATAL error in handler", LevelFatal},
		{"plain", "just some text", LevelUnknown},
		{"warn", "[WRN] disk almost full", LevelWarn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.Detect(tc.line); got != tc.want {
				t.Fatalf("Detect(%q) = %v, want %v", tc.line, got, tc.want)
			}
		})
	}
}
