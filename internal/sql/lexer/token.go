package lexer

import "fmt"

// TokenType represents the kind of a token.
type TokenType int

const (
	// Keywords
	TokenSelect TokenType = iota
	TokenFrom

	// Punctuation
	TokenComma // ,

	// Everything else
	TokenIdent // column names, table names, *
)

// Token is a classified lexical unit. Tokens carry no source position;
// offsets are only tracked while lexing.
type Token struct {
	Type TokenType
	Text string // set for TokenIdent only
}

// Select returns the SELECT keyword token.
func Select() Token { return Token{Type: TokenSelect} }

// From returns the FROM keyword token.
func From() Token { return Token{Type: TokenFrom} }

// Comma returns the comma token.
func Comma() Token { return Token{Type: TokenComma} }

// Ident returns an identifier token holding text unmodified.
func Ident(text string) Token { return Token{Type: TokenIdent, Text: text} }

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Type == TokenSelect || t.Type == TokenFrom
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	if t.Type == TokenIdent {
		return fmt.Sprintf("IDENT(%q)", t.Text)
	}
	return t.Type.String()
}

func (t TokenType) String() string {
	switch t {
	case TokenSelect:
		return "SELECT"
	case TokenFrom:
		return "FROM"
	case TokenComma:
		return "COMMA"
	case TokenIdent:
		return "IDENT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
}
