package ui

import (
	"strings"
	"testing"

	"github.com/user/rless/internal/window"
)

func testFile(start, end int) *window.File {
	f := &window.File{Path: "app.log", StartLine: start, EndLine: end}
	for n := start; n <= end; n++ {
		f.Lines = append(f.Lines, window.Line{Number: n, Content: "content"})
	}
	return f
}

func TestViewportClamp(t *testing.T) {
	v := newViewport(80, 10)
	f := testFile(1, 100)

	v.scrollDown(f, 200)
	if v.offset != 90 {
		t.Fatalf("offset = %d, want clamped to 90", v.offset)
	}
	v.scrollUp(f, 500)
	if v.offset != 0 {
		t.Fatalf("offset = %d, want clamped to 0", v.offset)
	}
}

func TestViewportCenterOn(t *testing.T) {
	v := newViewport(80, 10)
	f := testFile(4500, 5500)

	v.centerOn(f, 5000)
	// Line 5000 is index 500 in the window; the top of a 10-row view
	// centered there is 495.
	if v.offset != 495 {
		t.Fatalf("offset = %d, want 495", v.offset)
	}
	if got := v.topLine(f); got != 4995 {
		t.Fatalf("topLine = %d, want 4995", got)
	}
}

func TestViewportMetrics(t *testing.T) {
	v := newViewport(80, 24)
	f := testFile(1, 50)
	v.offset = 7

	m := v.metrics(f)
	if m.ScrollTop != 7 || m.ScrollHeight != 50 || m.ClientHeight != 24 {
		t.Fatalf("metrics = %+v", m)
	}
}

func TestViewportRenderPadsShortWindow(t *testing.T) {
	v := newViewport(80, 5)
	v.showLineNumbers = false
	f := testFile(1, 2)

	out := v.render(f)
	rows := strings.Split(out, "\n")
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	if rows[4] != "~" {
		t.Fatalf("padding row = %q, want ~", rows[4])
	}
}

func TestViewportRenderLoading(t *testing.T) {
	v := newViewport(80, 5)
	f := &window.File{Path: "app.log", StartLine: 1, Loading: true}

	if out := v.render(f); !strings.Contains(out, "Loading") {
		t.Fatalf("render = %q, want loading indicator", out)
	}
}
