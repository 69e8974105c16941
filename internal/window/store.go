package window

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/user/rless/internal/notify"
	"github.com/user/rless/internal/remote"
)

// Config parameterizes fetch sizing and backpressure.
type Config struct {
	// PageSize is the line count of directional and from-start loads.
	PageSize int
	// ContextRadius is the symmetric context for jump fetches.
	ContextRadius int
	// CoolDown suppresses scroll-triggered loads for this long after
	// any successful load.
	CoolDown time.Duration
	// EdgeThreshold is the scroll-offset distance from an edge below
	// which a directional load fires.
	EdgeThreshold int
}

// DefaultConfig returns the standard fetch sizing.
func DefaultConfig() Config {
	return Config{
		PageSize:      1000,
		ContextRadius: 500,
		CoolDown:      time.Second,
		EdgeThreshold: 200,
	}
}

// Store owns the window state of every open file, keyed by path. All
// mutation goes through its operations; each operation is a synchronous
// state transition. Operations that need data return a *Fetch for the
// caller to execute, with the completion fed back through Apply.
// A nil Fetch means nothing to do.
//
// Per file at most one fetch is in flight at a time; load intents that
// arrive while a file is loading are dropped, not queued.
type Store struct {
	cfg      Config
	files    map[string]*File
	notifier notify.Notifier
	now      func() time.Time
}

// NewStore creates an empty registry.
func NewStore(cfg Config, notifier notify.Notifier) *Store {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	if cfg.ContextRadius <= 0 {
		cfg.ContextRadius = cfg.PageSize / 2
	}
	if notifier == nil {
		notifier = notify.Discard()
	}
	return &Store{
		cfg:      cfg,
		files:    make(map[string]*File),
		notifier: notifier,
		now:      time.Now,
	}
}

// File returns the record for a path, or nil if not open. The record
// is owned by the Store; callers read, never mutate.
func (s *Store) File(path string) *File {
	return s.files[path]
}

// Paths returns the open file paths in sorted order.
func (s *Store) Paths() []string {
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// OpenOptions carries the optional parameters of Open.
type OpenOptions struct {
	// JumpLine is the line to land on after the initial load.
	JumpLine *int
	// FileSizeHint is the file size if the caller already knows it.
	FileSizeHint *int64
	// HighlightOverride forces a syntax lexer for this file.
	HighlightOverride string
}

// Open registers a file and returns its initial fetch: the first page
// when no jump line is given, otherwise a context window around the
// jump line. Opening an already-open file never re-fetches; it only
// refreshes the scroll target if one was given.
func (s *Store) Open(path string, opts OpenOptions) *Fetch {
	if f, ok := s.files[path]; ok {
		if opts.JumpLine != nil && f.Contains(*opts.JumpLine) {
			line := *opts.JumpLine
			f.ScrollToLine = &line
			f.ScrollingToTarget = true
		}
		return nil
	}

	f := newFile(path)
	f.FileSize = opts.FileSizeHint
	f.HighlightOverride = opts.HighlightOverride
	f.Loading = true
	s.files[path] = f

	if opts.JumpLine == nil {
		return &Fetch{
			Path:      path,
			Intent:    IntentFromStart,
			Keys:      []string{rangeKey(1, s.cfg.PageSize)},
			WantIndex: true,
		}
	}

	line := *opts.JumpLine
	f.pendingJump = &line
	return &Fetch{
		Path:      path,
		Intent:    IntentCenter,
		Keys:      []string{fmt.Sprintf("%d", line)},
		Context:   s.cfg.ContextRadius,
		WantIndex: true,
	}
}

// Close removes a file. Completions of in-flight fetches for a closed
// path are discarded when they arrive.
func (s *Store) Close(path string) {
	delete(s.files, path)
}

// LoadMore extends the window by one page in the given direction. It
// refuses when the boundary in that direction is already reached, and
// when a fetch is in flight.
func (s *Store) LoadMore(path string, dir Direction) *Fetch {
	f, ok := s.files[path]
	if !ok {
		return nil
	}
	if dir == Before && f.ReachedStart {
		return nil
	}
	if dir == After && f.ReachedEnd {
		return nil
	}
	if f.Loading {
		return nil
	}

	f.Loading = true
	f.Err = ""

	if dir == Before {
		end := f.StartLine - 1
		if end < 1 {
			// Nothing above line 1.
			f.Loading = false
			f.ReachedStart = true
			return nil
		}
		start := end - s.cfg.PageSize + 1
		if start < 1 {
			start = 1
		}
		return &Fetch{
			Path:   path,
			Intent: IntentBefore,
			Keys:   []string{rangeKey(start, end)},
		}
	}

	start := f.EndLine + 1
	return &Fetch{
		Path:   path,
		Intent: IntentAfter,
		Keys:   []string{rangeKey(start, start+s.cfg.PageSize-1)},
	}
}

// JumpToLine scrolls a file to a line, fetching first when the line
// lies outside the loaded window. A jump inside the window never
// issues a request.
func (s *Store) JumpToLine(path string, line int) *Fetch {
	f, ok := s.files[path]
	if !ok {
		return s.Open(path, OpenOptions{JumpLine: &line})
	}

	if f.Contains(line) {
		target := line
		f.ScrollToLine = &target
		f.ScrollingToTarget = true
		return nil
	}

	if f.Loading {
		return nil
	}

	target := line
	f.pendingJump = &target
	f.Loading = true
	f.Err = ""
	return &Fetch{
		Path:    path,
		Intent:  IntentCenter,
		Keys:    []string{fmt.Sprintf("%d", line)},
		Context: s.cfg.ContextRadius,
	}
}

// JumpToEnd loads the tail of the file via the last-line sentinel and
// scrolls there. The resolved sentinel also discovers the total line
// count.
func (s *Store) JumpToEnd(path string) *Fetch {
	f, ok := s.files[path]
	if !ok || f.Loading {
		return nil
	}

	last := -1
	f.pendingJump = &last
	f.Loading = true
	f.Err = ""
	return &Fetch{
		Path:    path,
		Intent:  IntentToEnd,
		Keys:    []string{remote.LastLineKey},
		Context: s.cfg.PageSize / 2,
	}
}

// ClearScrollPosition is called by the presentation layer once a
// programmatic scroll has finished.
func (s *Store) ClearScrollPosition(path string) {
	f, ok := s.files[path]
	if !ok {
		return
	}
	f.ScrollToLine = nil
	f.ScrollingToTarget = false
}

// Apply feeds a fetch completion back into the store. Errors are
// translated into state transitions, never propagated: a binary file
// closes the record and emits one notification, an out-of-bounds reply
// becomes a boundary flag or a from-start fallback, anything else
// lands in the file's Err field. On success the lines are merged, and
// Apply may return a follow-up fetch (the from-start fallback, or a
// chained after-load for viewports still too short to scroll).
func (s *Store) Apply(fetch *Fetch, res *remote.SampleResult, err error) *Fetch {
	f, ok := s.files[fetch.Path]
	if !ok {
		// Closed while the fetch was in flight.
		return nil
	}

	if err != nil {
		return s.applyError(f, fetch, err)
	}

	lines, total := normalize(fetch, res)
	if total != nil {
		f.TotalLines = total
	}
	if res.LineCount != nil && f.TotalLines == nil {
		f.TotalLines = res.LineCount
	}
	f.IsCompressed = res.IsCompressed
	f.CompressionFormat = res.CompressionFormat

	// A centered fetch that lands away from the loaded window replaces
	// it; merging would leave a gap in the middle.
	if fetch.Intent == IntentCenter || fetch.Intent == IntentToEnd {
		s.resetIfDisjoint(f, lines)
	}

	prepended := f.merge(lines)
	f.Loading = false
	f.Err = ""
	f.lastLoad = s.now()
	f.refreshBoundaries()

	switch {
	case f.pendingJump != nil:
		target := *f.pendingJump
		if target == -1 {
			target = f.EndLine
		}
		f.pendingJump = nil
		f.ScrollToLine = &target
		f.ScrollingToTarget = true
	case fetch.Intent == IntentBefore && prepended > 0 && !f.ScrollingToTarget:
		// Prepend compensation: the presentation layer shifts its
		// offset by this many lines so the view does not move.
		f.scrollAdjust += prepended
	}

	return s.chainAfterLoad(f)
}

func (s *Store) applyError(f *File, fetch *Fetch, err error) *Fetch {
	if errors.Is(err, remote.ErrBinaryFile) {
		delete(s.files, f.Path)
		s.notifier.Notify(notify.Notification{
			Level:   notify.LevelError,
			Message: fmt.Sprintf("%s is a binary file and cannot be viewed", f.Path),
		})
		return nil
	}

	if errors.Is(err, remote.ErrOutOfBounds) {
		switch fetch.Intent {
		case IntentBefore:
			f.Loading = false
			f.ReachedStart = true
		case IntentAfter:
			f.Loading = false
			f.ReachedEnd = true
		case IntentFromStart:
			// Even the first page is out of bounds: the file is empty.
			f.Loading = false
			f.ReachedStart = true
			f.ReachedEnd = true
		default:
			// Center or to-end past the file's length: the file is
			// shorter than expected or the jump target is invalid.
			// Fall back to loading from the top.
			f.pendingJump = nil
			f.ScrollToLine = nil
			f.ScrollingToTarget = false
			return &Fetch{
				Path:      f.Path,
				Intent:    IntentFromStart,
				Keys:      []string{rangeKey(1, s.cfg.PageSize)},
				WantIndex: fetch.WantIndex,
			}
		}
		return nil
	}

	f.Loading = false
	f.Err = err.Error()
	return nil
}

// resetIfDisjoint drops the loaded window when the fetched lines
// neither overlap nor adjoin it.
func (s *Store) resetIfDisjoint(f *File, lines []Line) {
	if len(f.Lines) == 0 || len(lines) == 0 {
		return
	}
	lo, hi := lines[0].Number, lines[0].Number
	for _, l := range lines[1:] {
		if l.Number < lo {
			lo = l.Number
		}
		if l.Number > hi {
			hi = l.Number
		}
	}
	if hi < f.StartLine-1 || lo > f.EndLine+1 {
		f.Lines = nil
		f.StartLine, f.EndLine = 1, 0
		f.ReachedStart, f.ReachedEnd = false, false
	}
}

// chainAfterLoad re-checks the bottom trigger with the last reported
// viewport metrics. When the loaded content still does not fill the
// viewport, another after-load is chained so short viewports become
// scrollable without further user input. The metrics predate the load,
// so the current content extent is extrapolated from the per-line
// height they imply.
func (s *Store) chainAfterLoad(f *File) *Fetch {
	if f.ReachedEnd || f.ScrollingToTarget || f.lastScroll == nil {
		return nil
	}

	perLine := 1
	if f.lastScrollLines > 0 && f.lastScroll.ScrollHeight > f.lastScrollLines {
		perLine = f.lastScroll.ScrollHeight / f.lastScrollLines
	}
	if len(f.Lines)*perLine > f.lastScroll.ClientHeight {
		return nil
	}
	return s.LoadMore(f.Path, After)
}
