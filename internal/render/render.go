// Package render formats token streams and lexical errors for a terminal.
package render

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/cabewaldrop/pglex/internal/sql/lexer"
)

// Palette colours, shared by the CLI prompt.
var (
	ColorKeyword = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7C3AED"}
	ColorIdent   = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#10B981"}
	ColorPunct   = lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#F59E0B"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#FF5F56", Dark: "#EF4444"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#94A3B8"}
)

// Renderer turns lexer output into display strings.
type Renderer struct {
	plain   bool
	keyword lipgloss.Style
	ident   lipgloss.Style
	punct   lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

// New creates a Renderer. A plain renderer emits no styling at all.
func New(plain bool) *Renderer {
	return &Renderer{
		plain:   plain,
		keyword: lipgloss.NewStyle().Foreground(ColorKeyword).Bold(true),
		ident:   lipgloss.NewStyle().Foreground(ColorIdent),
		punct:   lipgloss.NewStyle().Foreground(ColorPunct),
		err:     lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

// Token renders a single token.
func (r *Renderer) Token(tok lexer.Token) string {
	switch {
	case tok.IsKeyword():
		return r.style(r.keyword, tok.Type.String())
	case tok.Type == lexer.TokenComma:
		return r.style(r.punct, tok.Type.String())
	default:
		return r.style(r.ident, fmt.Sprintf("IDENT %q", tok.Text))
	}
}

// Tokens renders one token per line, numbered, followed by a count.
func (r *Renderer) Tokens(tokens []lexer.Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		sb.WriteString(r.style(r.muted, fmt.Sprintf("%3d", i)))
		sb.WriteString("  ")
		sb.WriteString(r.Token(tok))
		sb.WriteByte('\n')
	}

	noun := "tokens"
	if len(tokens) == 1 {
		noun = "token"
	}
	sb.WriteString(r.style(r.muted, fmt.Sprintf("(%d %s)", len(tokens), noun)))
	sb.WriteByte('\n')
	return sb.String()
}

// Error renders err. Lexical errors show src with a caret under the
// failing offset.
func (r *Renderer) Error(src string, err error) string {
	var sb strings.Builder
	sb.WriteString(r.style(r.err, "error: "+err.Error()))
	sb.WriteByte('\n')

	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) || lexErr.Pos < 0 || lexErr.Pos > len(src) {
		return sb.String()
	}

	col := utf8.RuneCountInString(src[:lexErr.Pos])
	sb.WriteString("  ")
	sb.WriteString(src)
	sb.WriteByte('\n')
	sb.WriteString("  ")
	sb.WriteString(strings.Repeat(" ", col))
	sb.WriteString(r.style(r.err, "^"))
	sb.WriteByte('\n')
	return sb.String()
}
