package window

import (
	"fmt"
	"testing"
)

func linesRange(start, end int) []Line {
	lines := make([]Line, 0, end-start+1)
	for n := start; n <= end; n++ {
		lines = append(lines, Line{Number: n, Content: fmt.Sprintf("line %d", n)})
	}
	return lines
}

func assertWindow(t *testing.T, f *File, start, end int) {
	t.Helper()
	if f.StartLine != start || f.EndLine != end {
		t.Fatalf("window = [%d-%d], want [%d-%d]", f.StartLine, f.EndLine, start, end)
	}
	if len(f.Lines) != end-start+1 {
		t.Fatalf("len(Lines) = %d, want %d", len(f.Lines), end-start+1)
	}
}

func TestMergeSortsAndDeduplicates(t *testing.T) {
	f := newFile("a.log")

	f.merge([]Line{
		{Number: 3, Content: "three"},
		{Number: 1, Content: "one"},
		{Number: 2, Content: "two"},
		{Number: 3, Content: "three again"},
	})

	if len(f.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(f.Lines))
	}
	for i, l := range f.Lines {
		if l.Number != i+1 {
			t.Fatalf("Lines[%d].Number = %d, want %d", i, l.Number, i+1)
		}
	}
	// Last writer wins for a duplicated number
	if f.Lines[2].Content != "three again" {
		t.Fatalf("Lines[2].Content = %q, want %q", f.Lines[2].Content, "three again")
	}
	if f.StartLine != 1 || f.EndLine != 3 {
		t.Fatalf("window = [%d-%d], want [1-3]", f.StartLine, f.EndLine)
	}
}

func TestMergeStrictlyIncreasing(t *testing.T) {
	f := newFile("a.log")

	// Arbitrary interleaved merges must keep numbers strictly increasing
	f.merge(linesRange(500, 600))
	f.merge(linesRange(450, 520))
	f.merge(linesRange(590, 700))
	f.merge(linesRange(450, 700))

	prev := 0
	for _, l := range f.Lines {
		if l.Number <= prev {
			t.Fatalf("line numbers not strictly increasing: %d after %d", l.Number, prev)
		}
		prev = l.Number
	}
	assertWindow(t, f, 450, 700)
}

func TestMergeIdempotent(t *testing.T) {
	f := newFile("a.log")

	batch := linesRange(10, 20)
	f.merge(batch)
	before := len(f.Lines)

	if prepended := f.merge(batch); prepended != 0 {
		t.Fatalf("re-merge prepended = %d, want 0", prepended)
	}
	if len(f.Lines) != before {
		t.Fatalf("re-merge changed line count: %d -> %d", before, len(f.Lines))
	}
}

func TestMergeReportsPrependedCount(t *testing.T) {
	f := newFile("a.log")

	if prepended := f.merge(linesRange(100, 200)); prepended != 0 {
		t.Fatalf("initial merge prepended = %d, want 0", prepended)
	}
	if prepended := f.merge(linesRange(50, 99)); prepended != 50 {
		t.Fatalf("prepend merge prepended = %d, want 50", prepended)
	}
	if prepended := f.merge(linesRange(201, 300)); prepended != 0 {
		t.Fatalf("append merge prepended = %d, want 0", prepended)
	}
	assertWindow(t, f, 50, 300)
}

func TestMergeDropsNonPositiveNumbers(t *testing.T) {
	f := newFile("a.log")

	f.merge([]Line{{Number: -1, Content: "x"}, {Number: 0, Content: "y"}, {Number: 1, Content: "one"}})

	if len(f.Lines) != 1 || f.Lines[0].Number != 1 {
		t.Fatalf("Lines = %v, want only line 1", f.Lines)
	}
}

func TestEmptyFileDefaults(t *testing.T) {
	f := newFile("a.log")
	if f.StartLine != 1 || f.EndLine != 0 {
		t.Fatalf("empty window = [%d-%d], want [1-0]", f.StartLine, f.EndLine)
	}
	if f.Contains(1) {
		t.Fatalf("empty window should contain nothing")
	}
}

func TestRefreshBoundaries(t *testing.T) {
	f := newFile("a.log")
	f.merge(linesRange(1, 10))
	f.refreshBoundaries()
	if !f.ReachedStart {
		t.Fatalf("expected ReachedStart at line 1")
	}
	if f.ReachedEnd {
		t.Fatalf("did not expect ReachedEnd without a known total")
	}

	total := 10
	f.TotalLines = &total
	f.refreshBoundaries()
	if !f.ReachedEnd {
		t.Fatalf("expected ReachedEnd once the window covers the total")
	}
}
