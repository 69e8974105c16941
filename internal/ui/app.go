package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/rless/internal/config"
	"github.com/user/rless/internal/notify"
	"github.com/user/rless/internal/remote"
	"github.com/user/rless/internal/render"
	"github.com/user/rless/internal/window"
	"github.com/user/rless/pkg/logformat"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeGoto
)

// fetchDoneMsg delivers a completed fetch back into the update loop.
// Completions are applied in the order they arrive.
type fetchDoneMsg struct {
	fetch *window.Fetch
	res   *remote.SampleResult
	err   error
}

// ModelOptions configures the viewer
type ModelOptions struct {
	Path              string
	JumpLine          int // 0 means start of file
	FileSizeHint      int64
	HighlightOverride string
}

// Model is the main application model
type Model struct {
	cfg    *config.Config
	store  *window.Store
	client *remote.Client
	vp     *viewport

	path      string
	opts      ModelOptions
	gotoInput textinput.Model
	mode      Mode

	timestamps *logformat.TimestampParser
	notice     *notify.Notification

	width  int
	height int
}

// NewModel creates the viewer for one remote file
func NewModel(cfg *config.Config, opts ModelOptions) *Model {
	m := &Model{
		cfg:        cfg,
		client:     remote.NewClient(cfg.Server.URL, cfg.Server.Timeout()),
		vp:         newViewport(80, 24),
		path:       opts.Path,
		opts:       opts,
		timestamps: logformat.NewTimestampParser(),
	}

	m.store = window.NewStore(window.Config{
		PageSize:      cfg.Fetch.PageSize,
		ContextRadius: cfg.Fetch.ContextRadius,
		CoolDown:      cfg.Fetch.CoolDown(),
		EdgeThreshold: cfg.Fetch.EdgeThreshold,
	}, notify.Func(func(n notify.Notification) {
		notice := n
		m.notice = &notice
	}))

	if render.IsSyntaxHighlightable(opts.Path) || opts.HighlightOverride != "" {
		m.vp.setRenderer(render.NewSyntaxRenderer(opts.Path, opts.HighlightOverride, cfg.Theme.SyntaxTheme))
	} else {
		m.vp.setRenderer(render.NewLogLevelRenderer(cfg))
	}
	m.vp.showLineNumbers = cfg.Display.ShowLineNumbers

	ti := textinput.New()
	ti.Placeholder = "Line number..."
	ti.CharLimit = 16
	m.gotoInput = ti

	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	openOpts := window.OpenOptions{HighlightOverride: m.opts.HighlightOverride}
	if m.opts.JumpLine > 0 {
		line := m.opts.JumpLine
		openOpts.JumpLine = &line
	}
	if m.opts.FileSizeHint > 0 {
		size := m.opts.FileSizeHint
		openOpts.FileSizeHint = &size
	}
	return m.execute(m.store.Open(m.path, openOpts))
}

// execute runs a fetch against the service as an async command.
func (m *Model) execute(fetch *window.Fetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	client := m.client
	return func() tea.Msg {
		res, err := client.Sample(context.Background(), fetch.Path, fetch.Keys, fetch.Context)
		if err == nil && fetch.WantIndex {
			// Best-effort: the index endpoint may not exist.
			if idx, idxErr := client.GetIndex(context.Background(), fetch.Path); idxErr == nil {
				count := idx.LineCount
				res.LineCount = &count
			}
		}
		return fetchDoneMsg{fetch: fetch, res: res, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve 2 lines for status bar
		m.vp.setSize(msg.Width, msg.Height-2)
		m.vp.clamp(m.store.File(m.path))
		return m, nil

	case fetchDoneMsg:
		next := m.store.Apply(msg.fetch, msg.res, msg.err)
		m.syncViewport()
		// Refresh the telemetry so the boundary controller sees the
		// post-load extent.
		return m, tea.Batch(m.execute(next), m.reportScroll())
	}

	return m, nil
}

// syncViewport reconciles the viewport offset with the store after a
// load: shift by the prepend compensation, then honor a pending
// scroll-to-line target.
func (m *Model) syncViewport() {
	f := m.store.File(m.path)
	if f == nil {
		return
	}

	if adjust := m.store.ConsumeScrollAdjust(m.path); adjust != 0 {
		m.vp.shift(adjust)
	}

	if f.ScrollToLine != nil {
		m.vp.centerOn(f, *f.ScrollToLine)
		// Terminal scrolling is instant, so the scroll "animation" is
		// already complete.
		m.store.ClearScrollPosition(m.path)
	}

	m.vp.clamp(f)
}

// reportScroll feeds the current viewport position to the boundary
// controller and executes whatever load it decides on.
func (m *Model) reportScroll() tea.Cmd {
	f := m.store.File(m.path)
	if f == nil {
		return nil
	}
	return m.execute(m.store.HandleScroll(m.path, m.vp.metrics(f)))
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeGoto {
		return m.handleGotoKey(msg)
	}

	f := m.store.File(m.path)

	switch msg.String() {
	case "q", "ctrl+c":
		m.store.Close(m.path)
		return m, tea.Quit

	case "j", "down":
		m.vp.scrollDown(f, 1)
	case "k", "up":
		m.vp.scrollUp(f, 1)

	case "d", "ctrl+d", "f", "pgdown", " ":
		m.vp.pageDown(f)
	case "u", "ctrl+u", "b", "pgup":
		m.vp.pageUp(f)

	case "g", "home":
		return m, m.execute(m.store.JumpToLine(m.path, 1))
	case "G", "end":
		return m, m.execute(m.store.JumpToEnd(m.path))

	case ":":
		m.mode = ModeGoto
		m.gotoInput.SetValue("")
		m.gotoInput.Focus()
		return m, textinput.Blink

	case "n":
		m.vp.showLineNumbers = !m.vp.showLineNumbers
	}

	return m, m.reportScroll()
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		var line int
		fmt.Sscanf(m.gotoInput.Value(), "%d", &line)
		m.mode = ModeNormal
		m.gotoInput.Blur()
		if line > 0 {
			cmd := m.execute(m.store.JumpToLine(m.path, line))
			m.syncViewport()
			return m, cmd
		}
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.gotoInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	f := m.store.File(m.path)

	builder.WriteString(m.vp.render(f))
	builder.WriteString("\n")

	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(m.cfg.Theme.StatusBar)).
		Foreground(lipgloss.Color(m.cfg.Theme.StatusBarText)).
		Width(m.width)

	var status string
	switch {
	case m.mode == ModeGoto:
		status = ":" + m.gotoInput.View()
	case m.notice != nil:
		style := statusStyle
		if m.notice.Level == notify.LevelError {
			style = style.Foreground(lipgloss.Color(m.cfg.Theme.ErrorText))
		}
		builder.WriteString(style.Render(" " + m.notice.Message))
		builder.WriteString("\n")
		builder.WriteString(m.helpLine())
		return builder.String()
	default:
		status = m.statusLine(f)
	}

	builder.WriteString(statusStyle.Render(status))
	builder.WriteString("\n")
	builder.WriteString(m.helpLine())

	return builder.String()
}

func (m *Model) statusLine(f *window.File) string {
	if f == nil {
		return " " + m.path
	}

	center := m.store.CenterLine(m.path, m.vp.metrics(f))

	total := "?"
	if f.TotalLines != nil {
		total = fmt.Sprintf("%d", *f.TotalLines)
	}
	lineInfo := fmt.Sprintf("L%d/%s", center, total)

	var extras []string
	if f.IsCompressed {
		extras = append(extras, f.CompressionFormat)
	}
	if f.Loading {
		extras = append(extras, "loading...")
	}
	if f.Err != "" {
		extras = append(extras, "error: "+f.Err)
	}
	if ts := m.centerTimestamp(f, center); ts != "" {
		extras = append(extras, ts)
	}

	status := fmt.Sprintf(" %s  %s  [%d-%d]", m.path, lineInfo, f.StartLine, f.EndLine)
	if len(extras) > 0 {
		status += "  " + strings.Join(extras, "  ")
	}
	return status
}

// centerTimestamp extracts a display timestamp from the centered line.
func (m *Model) centerTimestamp(f *window.File, line int) string {
	if !f.Contains(line) {
		return ""
	}
	content := f.Lines[line-f.StartLine].Content
	if t := m.timestamps.Parse(content); t != nil {
		return t.Format("15:04:05")
	}
	return ""
}

func (m *Model) helpLine() string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return helpStyle.Render("j/k:scroll  f/b:page  g/G:top/bottom  ::goto line  n:line numbers  q:quit")
}
