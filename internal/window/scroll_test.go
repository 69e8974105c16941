package window

import (
	"testing"
	"time"
)

func TestCenterLine(t *testing.T) {
	fx := newFixture(t, testConfig(), 10000)
	fx.run(t, fx.store.Open("app.log", OpenOptions{}))

	cases := []struct {
		name string
		m    ScrollMetrics
		want int
	}{
		// One unit per line: the centered line is top + half the view.
		{"top_of_window", ScrollMetrics{ScrollTop: 0, ScrollHeight: 1000, ClientHeight: 40}, 21},
		{"mid_window", ScrollMetrics{ScrollTop: 480, ScrollHeight: 1000, ClientHeight: 40}, 501},
		{"bottom_clamped", ScrollMetrics{ScrollTop: 990, ScrollHeight: 1000, ClientHeight: 40}, 1000},
		// Taller units per line (pixel-based viewports).
		{"pixel_units", ScrollMetrics{ScrollTop: 0, ScrollHeight: 10000, ClientHeight: 400}, 21},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fx.store.CenterLine("app.log", tc.m); got != tc.want {
				t.Fatalf("CenterLine = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCenterLineEmptyWindow(t *testing.T) {
	fx := newFixture(t, testConfig(), 10000)
	fx.store.Open("app.log", OpenOptions{})

	// Still loading, nothing materialized.
	if got := fx.store.CenterLine("app.log", ScrollMetrics{}); got != 1 {
		t.Fatalf("CenterLine on empty window = %d, want 1", got)
	}
	if got := fx.store.CenterLine("missing.log", ScrollMetrics{}); got != 1 {
		t.Fatalf("CenterLine on unknown file = %d, want 1", got)
	}
}

func TestCenterLineOffsetWindow(t *testing.T) {
	fx := newFixture(t, testConfig(), 10000)
	fx.run(t, fx.store.JumpToLine("app.log", 5000))

	// Window is 4500..5500; line numbering starts at the window start.
	got := fx.store.CenterLine("app.log", ScrollMetrics{ScrollTop: 0, ScrollHeight: 1001, ClientHeight: 40})
	if got != 4520 {
		t.Fatalf("CenterLine = %d, want 4520", got)
	}
}

func TestConsumeScrollAdjustUnknownFile(t *testing.T) {
	fx := newFixture(t, testConfig(), 10000)
	if got := fx.store.ConsumeScrollAdjust("missing.log"); got != 0 {
		t.Fatalf("ConsumeScrollAdjust = %d, want 0", got)
	}
}

func TestBoundaryIdempotence(t *testing.T) {
	// Once a boundary flag is set, repeated loads in that direction
	// stay no-ops regardless of interleaved activity.
	fx := newFixture(t, testConfig(), 1000)
	fx.run(t, fx.store.Open("app.log", OpenOptions{}))

	fetch := fx.store.LoadMore("app.log", After)
	res, err := fx.service.respond(fetch)
	fx.store.Apply(fetch, res, err) // EOF: sets ReachedEnd

	for i := 0; i < 3; i++ {
		if fetch := fx.store.LoadMore("app.log", After); fetch != nil {
			t.Fatalf("load %d issued past the end boundary", i)
		}
		fx.advance(2 * time.Second)
		m := ScrollMetrics{ScrollTop: 960, ScrollHeight: 1000, ClientHeight: 40}
		if fetch := fx.store.HandleScroll("app.log", m); fetch != nil {
			t.Fatalf("scroll load %d issued past the end boundary", i)
		}
	}
}
