package logformat

import "testing"

func TestTimestampParse(t *testing.T) {
	p := NewTimestampParser()

	cases := []struct {
		name     string
		line     string
		wantHour int
		wantMin  int
	}{
		{"rfc3339", "2024-01-15T10:30:45Z [INF] started", 10, 30},
		{"common_ms", "2024-01-15 14:05:09.123 worker done", 14, 5},
		{"common", "2024-01-15 09:00:01 boot", 9, 0},
		{"syslog", "Jan 15 23:59:58 kernel: oops", 23, 59},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Parse(tc.line)
			if got == nil {
				t.Fatalf("Parse(%q) = nil", tc.line)
			}
			if got.Hour() != tc.wantHour || got.Minute() != tc.wantMin {
				t.Fatalf("Parse(%q) = %v, want %02d:%02d", tc.line, got, tc.wantHour, tc.wantMin)
			}
		})
	}
}

func TestTimestampParseNoMatch(t *testing.T) {
	p := NewTimestampParser()
	if got := p.Parse("no timestamp here"); got != nil {
		t.Fatalf("Parse = %v, want nil", got)
	}
}
