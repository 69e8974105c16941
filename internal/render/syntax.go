package render

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
)

// SyntaxRenderer applies syntax highlighting based on file type
type SyntaxRenderer struct {
	lexerName   string
	syntaxTheme string
}

// NewSyntaxRenderer creates a syntax highlighting renderer for the
// given filename. override, when non-empty, names the lexer directly
// instead of matching on the filename.
func NewSyntaxRenderer(filename, override, theme string) *SyntaxRenderer {
	lexerName := "plaintext"
	if override != "" {
		lexerName = override
	} else if lexer := lexers.Match(filename); lexer != nil {
		lexerName = lexer.Config().Name
	}
	if theme == "" {
		theme = "monokai"
	}

	return &SyntaxRenderer{
		lexerName:   lexerName,
		syntaxTheme: theme,
	}
}

// Render applies syntax highlighting to a line
func (r *SyntaxRenderer) Render(content string) string {
	if content == "" {
		return ""
	}

	var buf bytes.Buffer
	err := quick.Highlight(&buf, content, r.lexerName, "terminal16m", r.syntaxTheme)
	if err != nil {
		return content
	}

	// Remove any newlines that quick.Highlight adds
	highlighted := buf.String()
	highlighted = strings.ReplaceAll(highlighted, "\n", "")
	highlighted = strings.ReplaceAll(highlighted, "\r", "")
	return highlighted
}

// IsSyntaxHighlightable returns true if the file type supports syntax highlighting
func IsSyntaxHighlightable(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))

	syntaxExts := map[string]bool{
		".go": true, ".rs": true, ".py": true, ".js": true, ".ts": true,
		".c": true, ".cpp": true, ".h": true, ".java": true, ".rb": true,
		".sh": true, ".bash": true, ".yaml": true, ".yml": true,
		".json": true, ".toml": true, ".xml": true, ".sql": true,
		".md": true, ".html": true, ".css": true,
	}
	if syntaxExts[ext] {
		return true
	}

	base := strings.ToLower(filepath.Base(filename))
	specialFiles := map[string]bool{
		"makefile": true, "dockerfile": true,
	}
	return specialFiles[base]
}
