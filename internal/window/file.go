package window

import (
	"sort"
	"time"
)

// Line is one materialized line of a remote file. Numbers are 1-based.
type Line struct {
	Number  int
	Content string
}

// File holds the loaded window of a single open file: the contiguous
// run of lines currently in memory, boundary flags, and transient
// loading/scrolling state. Records are owned by a Store and mutated
// only through its operations.
type File struct {
	Path string

	// Lines is sorted by Number, with no duplicates.
	Lines []Line

	// StartLine and EndLine are the window edges. An empty window has
	// StartLine=1, EndLine=0.
	StartLine int
	EndLine   int

	// TotalLines is the known line count of the whole file, nil until
	// the index or a jump-to-end discovers it.
	TotalLines *int

	// FileSize is a size hint supplied on open, nil if unknown.
	FileSize *int64

	ReachedStart bool
	ReachedEnd   bool

	// Loading is true while a fetch for this file is in flight. At
	// most one fetch per file is ever in flight.
	Loading bool

	// Err holds the last fetch failure, cleared on the next attempt.
	Err string

	// ScrollToLine asks the presentation layer to scroll to a line.
	// ScrollingToTarget stays set until the scroll is reported done;
	// directional loads are suppressed meanwhile.
	ScrollToLine      *int
	ScrollingToTarget bool

	IsCompressed      bool
	CompressionFormat string

	// HighlightOverride forces a syntax lexer for this file, empty
	// means detect from the filename.
	HighlightOverride string

	pendingJump     *int
	scrollAdjust    int
	lastLoad        time.Time
	lastScroll      *ScrollMetrics
	lastScrollLines int
}

func newFile(path string) *File {
	return &File{
		Path:      path,
		StartLine: 1,
		EndLine:   0,
	}
}

// merge inserts lines into the window, deduplicating by line number
// (last writer wins) and keeping the sequence sorted. It returns how
// many lines were inserted before the previous window start, which the
// scroll reconciler uses for prepend compensation. Merging the same
// lines twice is a no-op.
func (f *File) merge(lines []Line) (prepended int) {
	if len(lines) == 0 {
		return 0
	}

	prevStart := f.StartLine
	hadLines := len(f.Lines) > 0

	byNumber := make(map[int]string, len(f.Lines)+len(lines))
	for _, l := range f.Lines {
		byNumber[l.Number] = l.Content
	}
	for _, l := range lines {
		if l.Number < 1 {
			continue
		}
		byNumber[l.Number] = l.Content
	}

	merged := make([]Line, 0, len(byNumber))
	for num, content := range byNumber {
		merged = append(merged, Line{Number: num, Content: content})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Number < merged[j].Number })

	f.Lines = merged
	if len(merged) == 0 {
		f.StartLine, f.EndLine = 1, 0
		return 0
	}
	f.StartLine = merged[0].Number
	f.EndLine = merged[len(merged)-1].Number

	if hadLines && f.StartLine < prevStart {
		for _, l := range merged {
			if l.Number >= prevStart {
				break
			}
			prepended++
		}
	}
	return prepended
}

// Contains reports whether a line number lies inside the loaded window.
func (f *File) Contains(line int) bool {
	return len(f.Lines) > 0 && line >= f.StartLine && line <= f.EndLine
}

// refreshBoundaries derives the boundary flags from the merged window.
// Flags only ever tighten here; an EOF reported by the service is
// recorded separately and never un-set by a merge.
func (f *File) refreshBoundaries() {
	if len(f.Lines) > 0 && f.StartLine == 1 {
		f.ReachedStart = true
	}
	if f.TotalLines != nil && f.EndLine >= *f.TotalLines {
		f.ReachedEnd = true
	}
}
