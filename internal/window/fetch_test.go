package window

import (
	"fmt"
	"testing"

	"github.com/user/rless/internal/remote"
)

func contents(start, end int) []string {
	out := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, fmt.Sprintf("line %d", n))
	}
	return out
}

func TestNormalizeRangeKey(t *testing.T) {
	fetch := &Fetch{Intent: IntentAfter}
	res := &remote.SampleResult{
		Samples: map[string][]string{"11-20": contents(11, 20)},
	}

	lines, total := normalize(fetch, res)
	if total != nil {
		t.Fatalf("total = %d, want nil", *total)
	}
	if len(lines) != 10 {
		t.Fatalf("len(lines) = %d, want 10", len(lines))
	}
	for i, l := range lines {
		if l.Number != 11+i {
			t.Fatalf("lines[%d].Number = %d, want %d", i, l.Number, 11+i)
		}
	}
}

func TestNormalizePivotWithContext(t *testing.T) {
	// Pivot 100 with 5 lines of context on each side
	fetch := &Fetch{Intent: IntentCenter, Context: 5}
	res := &remote.SampleResult{
		Samples:       map[string][]string{"100": contents(95, 105)},
		BeforeContext: 5,
		AfterContext:  5,
	}

	lines, _ := normalize(fetch, res)
	if len(lines) != 11 {
		t.Fatalf("len(lines) = %d, want 11", len(lines))
	}
	if lines[0].Number != 95 || lines[10].Number != 105 {
		t.Fatalf("line range = [%d-%d], want [95-105]", lines[0].Number, lines[10].Number)
	}
	if lines[5].Content != "line 100" {
		t.Fatalf("pivot content = %q, want %q", lines[5].Content, "line 100")
	}
}

func TestNormalizeDiscardsNonPositive(t *testing.T) {
	// Pivot 3 with a claimed 5 lines of leading context would start at
	// line -2; those entries must be dropped.
	fetch := &Fetch{Intent: IntentCenter, Context: 5}
	res := &remote.SampleResult{
		Samples:       map[string][]string{"3": {"a", "b", "c", "d", "e", "f", "g", "h"}},
		BeforeContext: 5,
	}

	lines, _ := normalize(fetch, res)
	if len(lines) != 5 {
		t.Fatalf("len(lines) = %d, want 5", len(lines))
	}
	if lines[0].Number != 1 {
		t.Fatalf("first line = %d, want 1", lines[0].Number)
	}
}

func TestNormalizeToEndDiscoversTotal(t *testing.T) {
	// The "-1" sentinel comes back resolved to the real last line.
	fetch := &Fetch{Intent: IntentToEnd, Context: 500}
	res := &remote.SampleResult{
		Samples:       map[string][]string{"10000": contents(9500, 10000)},
		BeforeContext: 500,
	}

	lines, total := normalize(fetch, res)
	if total == nil || *total != 10000 {
		t.Fatalf("total = %v, want 10000", total)
	}
	if lines[len(lines)-1].Number != 10000 {
		t.Fatalf("last line = %d, want 10000", lines[len(lines)-1].Number)
	}
}

func TestParseKeyLine(t *testing.T) {
	cases := []struct {
		key  string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{"100-200", 100, true},
		{"1-1", 1, true},
		{"-1", -1, true},
		{"abc", 0, false},
		{"a-b", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			got, ok := parseKeyLine(tc.key)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("parseKeyLine(%q) = (%d, %v), want (%d, %v)", tc.key, got, ok, tc.want, tc.ok)
			}
		})
	}
}
