package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/rless/internal/config"
	"github.com/user/rless/internal/ui"
)

func main() {
	serverFlag := flag.String("s", "", "Content server URL (overrides config)")
	lineFlag := flag.Int("l", 0, "Jump to line number on open")
	lexerFlag := flag.String("L", "", "Force a syntax lexer (e.g. go, json)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rless [-s url] [-l line] [-L lexer] <path>\n")
		fmt.Fprintf(os.Stderr, "  -s\tContent server URL (overrides config)\n")
		fmt.Fprintf(os.Stderr, "  -l\tJump to line number on open\n")
		fmt.Fprintf(os.Stderr, "  -L\tForce a syntax lexer (e.g. go, json)\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverFlag != "" {
		cfg.Server.URL = *serverFlag
	}

	model := ui.NewModel(cfg, ui.ModelOptions{
		Path:              flag.Arg(0),
		JumpLine:          *lineFlag,
		HighlightOverride: *lexerFlag,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
