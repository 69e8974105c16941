package window

// ScrollMetrics is the viewport telemetry the presentation layer
// reports: the scroll offset, the full content extent, and the visible
// extent, all in the same unit (pixels, rows). The controller makes no
// assumption about which rendering technology produced them.
type ScrollMetrics struct {
	ScrollTop    int
	ScrollHeight int
	ClientHeight int
}

// topOffset is the distance from the top edge.
func (m ScrollMetrics) topOffset() int {
	if m.ScrollTop < 0 {
		return 0
	}
	return m.ScrollTop
}

// bottomOffset is the distance from the bottom edge.
func (m ScrollMetrics) bottomOffset() int {
	off := m.ScrollHeight - m.ClientHeight - m.ScrollTop
	if off < 0 {
		return 0
	}
	return off
}

// HandleScroll consumes a viewport telemetry report and decides whether
// a directional load should fire. Loads are suppressed while a fetch is
// in flight, while a programmatic scroll-to-line is pending, and during
// the cool-down after a completed load. A load fires when the offset
// from an edge falls below the configured threshold, or is exactly
// zero (fully scrolled to that edge).
func (s *Store) HandleScroll(path string, m ScrollMetrics) *Fetch {
	f, ok := s.files[path]
	if !ok {
		return nil
	}

	metrics := m
	f.lastScroll = &metrics
	f.lastScrollLines = len(f.Lines)

	if f.Loading || f.ScrollingToTarget {
		return nil
	}
	if s.cfg.CoolDown > 0 && !f.lastLoad.IsZero() && s.now().Sub(f.lastLoad) < s.cfg.CoolDown {
		return nil
	}

	if s.nearEdge(m.topOffset()) && !f.ReachedStart {
		return s.LoadMore(path, Before)
	}
	if s.nearEdge(m.bottomOffset()) && !f.ReachedEnd {
		return s.LoadMore(path, After)
	}
	return nil
}

func (s *Store) nearEdge(offset int) bool {
	return offset == 0 || offset < s.cfg.EdgeThreshold
}
