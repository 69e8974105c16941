package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/rless/internal/render"
	"github.com/user/rless/internal/window"
)

// viewport displays a slice of a file's loaded window. It scrolls over
// the materialized lines only; pulling more lines into the window is
// the store's business, driven by the telemetry this viewport reports.
type viewport struct {
	renderer render.Renderer

	width  int
	height int

	// offset indexes into the window's line slice (0 = first loaded line)
	offset int

	lineNumberStyle lipgloss.Style
	loadingStyle    lipgloss.Style

	showLineNumbers bool
}

func newViewport(width, height int) *viewport {
	return &viewport{
		width:           width,
		height:          height,
		showLineNumbers: true,
		lineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		loadingStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		renderer:        render.NewPlainRenderer(),
	}
}

func (v *viewport) setRenderer(r render.Renderer) {
	v.renderer = r
}

func (v *viewport) setSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *viewport) scrollDown(f *window.File, n int) {
	v.offset += n
	v.clamp(f)
}

func (v *viewport) scrollUp(f *window.File, n int) {
	v.offset -= n
	v.clamp(f)
}

func (v *viewport) pageDown(f *window.File) {
	v.scrollDown(f, v.height-1)
}

func (v *viewport) pageUp(f *window.File) {
	v.scrollUp(f, v.height-1)
}

// centerOn places a loaded line number in the middle of the view.
func (v *viewport) centerOn(f *window.File, line int) {
	if f == nil || len(f.Lines) == 0 {
		return
	}
	idx := line - f.StartLine
	v.offset = idx - v.height/2
	v.clamp(f)
}

// shift moves the offset without clamping against the (possibly stale)
// window, used for prepend compensation.
func (v *viewport) shift(n int) {
	v.offset += n
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *viewport) clamp(f *window.File) {
	max := 0
	if f != nil {
		max = len(f.Lines) - v.height
	}
	if max < 0 {
		max = 0
	}
	if v.offset > max {
		v.offset = max
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// metrics reports the scroll telemetry for the boundary controller, in
// rows: offset from the top, total loaded rows, and visible rows.
func (v *viewport) metrics(f *window.File) window.ScrollMetrics {
	total := 0
	if f != nil {
		total = len(f.Lines)
	}
	return window.ScrollMetrics{
		ScrollTop:    v.offset,
		ScrollHeight: total,
		ClientHeight: v.height,
	}
}

// render draws the visible slice of the window.
func (v *viewport) render(f *window.File) string {
	if f == nil || len(f.Lines) == 0 {
		if f != nil && f.Loading {
			return v.loadingStyle.Render("Loading...")
		}
		return ""
	}

	end := v.offset + v.height
	if end > len(f.Lines) {
		end = len(f.Lines)
	}
	visible := f.Lines[v.offset:end]

	lineNumWidth := len(fmt.Sprintf("%d", f.EndLine))
	if f.TotalLines != nil {
		lineNumWidth = len(fmt.Sprintf("%d", *f.TotalLines))
	}

	var builder strings.Builder
	for i, line := range visible {
		if i > 0 {
			builder.WriteString("\n")
		}
		if v.showLineNumbers {
			builder.WriteString(v.lineNumberStyle.Render(fmt.Sprintf("%*d ", lineNumWidth, line.Number)))
		}
		builder.WriteString(v.renderer.Render(line.Content))
	}

	// Pad with empty lines if needed
	for i := len(visible); i < v.height; i++ {
		if i > 0 || len(visible) > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("~")
	}

	return builder.String()
}

// topLine returns the absolute number of the first visible line.
func (v *viewport) topLine(f *window.File) int {
	if f == nil || len(f.Lines) == 0 {
		return 1
	}
	idx := v.offset
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}
	return f.Lines[idx].Number
}
