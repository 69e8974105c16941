package window

// ConsumeScrollAdjust returns how far the presentation layer must shift
// its scroll offset to keep the view steady after content was prepended,
// and resets the pending adjustment. Zero means nothing to compensate.
// The adjustment is expressed in lines; the presentation layer converts
// to its own unit.
func (s *Store) ConsumeScrollAdjust(path string) int {
	f, ok := s.files[path]
	if !ok {
		return 0
	}
	adjust := f.scrollAdjust
	f.scrollAdjust = 0
	return adjust
}

// CenterLine computes which loaded line sits closest to the vertical
// center of the viewport described by m. An empty window yields the
// window start. Used to persist the current position externally.
func (s *Store) CenterLine(path string, m ScrollMetrics) int {
	f, ok := s.files[path]
	if !ok {
		return 1
	}
	if len(f.Lines) == 0 {
		return f.StartLine
	}

	lineHeight := m.ScrollHeight / len(f.Lines)
	if lineHeight < 1 {
		lineHeight = 1
	}
	center := m.ScrollTop + m.ClientHeight/2
	idx := center / lineHeight
	if idx < 0 {
		idx = 0
	}
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}
	return f.Lines[idx].Number
}
