package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabewaldrop/pglex/internal/sql/lexer"
)

func TestTokensPlain(t *testing.T) {
	r := New(true)

	out := r.Tokens([]lexer.Token{lexer.Select(), lexer.Ident("*"), lexer.From(), lexer.Ident("t")})

	expected := "  0  SELECT\n" +
		"  1  IDENT \"*\"\n" +
		"  2  FROM\n" +
		"  3  IDENT \"t\"\n" +
		"(4 tokens)\n"
	assert.Equal(t, expected, out)
}

func TestTokensSingular(t *testing.T) {
	out := New(true).Tokens([]lexer.Token{lexer.Comma()})

	assert.True(t, strings.HasSuffix(out, "(1 token)\n"), out)
}

func TestTokensStyledKeepsText(t *testing.T) {
	out := New(false).Tokens([]lexer.Token{lexer.Select(), lexer.Comma(), lexer.Ident("col")})

	assert.Contains(t, out, "SELECT")
	assert.Contains(t, out, "COMMA")
	assert.Contains(t, out, `IDENT "col"`)
}

func TestErrorCaret(t *testing.T) {
	src := "select a,,b;"
	_, err := lexer.NewString(src, lexer.WithPolicy(lexer.Strict)).Tokenize()
	require.Error(t, err)

	out := New(true).Error(src, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "error: invalid token"))
	assert.Equal(t, "  "+src, lines[1])
	assert.Equal(t, "  "+strings.Repeat(" ", 9)+"^", lines[2])
}

func TestErrorCaretCountsRunes(t *testing.T) {
	src := "select é,,b;"
	_, err := lexer.NewString(src, lexer.WithPolicy(lexer.Strict)).Tokenize()
	require.Error(t, err)

	lines := strings.Split(strings.TrimRight(New(true).Error(src, err), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "  "+strings.Repeat(" ", 9)+"^", lines[2])
}

func TestErrorGeneric(t *testing.T) {
	out := New(true).Error("select a;", errors.New("boom"))

	assert.Equal(t, "error: boom\n", out)
}
