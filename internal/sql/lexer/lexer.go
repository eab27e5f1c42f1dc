// Package lexer implements a lexical analyzer for the SELECT ... FROM ...
// skeleton of a SQL statement.
//
// The lexer reads position-tagged characters through a Cursor and splits
// them at commas, spaces and the terminating semicolon:
//
//	select first_col, second_col from schema.table;
//
// becomes
//
//	[SELECT] [IDENT:first_col] [COMMA] [IDENT:second_col] [FROM] [IDENT:schema.table]
//
// Keyword matching is exact and case-sensitive. Callers lower-case their
// input before lexing.
package lexer

import (
	"errors"
	"log/slog"
	"strings"
)

// Policy decides how strictly accumulated text is classified.
type Policy int

const (
	// Permissive accepts every non-keyword buffer, the empty one
	// included, as an identifier.
	Permissive Policy = iota
	// Strict rejects empty buffers with InvalidToken.
	Strict
)

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"select": TokenSelect,
	"from":   TokenFrom,
}

// Classify turns accumulated text into a token. "select" and "from" are
// keywords; any other text becomes an identifier carrying it unmodified.
// Under Strict the empty string is an InvalidToken error.
func Classify(text string, policy Policy) (Token, error) {
	if tt, ok := keywords[text]; ok {
		return Token{Type: tt}, nil
	}
	if text == "" && policy == Strict {
		return Token{}, &Error{Kind: InvalidToken}
	}
	return Ident(text), nil
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithPolicy sets the classification policy. The default is Permissive.
func WithPolicy(p Policy) Option {
	return func(l *Lexer) { l.policy = p }
}

// WithLogger attaches a logger that receives debug records for every
// emitted token.
func WithLogger(log *slog.Logger) Option {
	return func(l *Lexer) {
		if log != nil {
			l.log = log
		}
	}
}

// Lexer tokenizes one input. It is not reusable.
type Lexer struct {
	cur      *Cursor
	policy   Policy
	log      *slog.Logger
	consumed bool
}

// New creates a Lexer over stream.
func New(stream Stream, opts ...Option) *Lexer {
	l := &Lexer{
		cur: NewCursor(stream),
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewString creates a Lexer over s.
func NewString(s string, opts ...Option) *Lexer {
	return New(FromString(s), opts...)
}

// Tokenize runs a single forward pass over the input. It stops at the
// first semicolon or when the stream is exhausted. A classification error
// aborts the pass and no tokens are returned.
//
// Text left in the buffer when the stream runs out without a terminator
// is not emitted.
func (l *Lexer) Tokenize() ([]Token, error) {
	if l.consumed {
		return nil, ErrConsumed
	}
	l.consumed = true

	var (
		tokens []Token
		acc    strings.Builder
	)

	emit := func(tok Token) {
		l.log.Debug("token", "type", tok.Type.String(), "text", tok.Text)
		tokens = append(tokens, tok)
	}

	flush := func() error {
		tok, err := Classify(acc.String(), l.policy)
		if err != nil {
			var lexErr *Error
			if errors.As(err, &lexErr) {
				lexErr.Pos = l.cur.CurrPos()
				lexErr.Text = acc.String()
			}
			l.log.Debug("tokenize aborted", "pos", l.cur.CurrPos(), "err", err)
			return err
		}
		emit(tok)
		acc.Reset()
		return nil
	}

	for !l.cur.Done() {
		ch := l.cur.Curr()
		switch ch {
		case ',':
			if acc.Len() > 0 || !l.commaFollowsIdent(tokens) {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			emit(Comma())
		case ' ', ';':
			// Only an empty buffer fails classification today, so this
			// flush cannot fail until a policy also rejects non-empty text.
			if acc.Len() > 0 {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			if ch == ';' {
				l.log.Debug("tokenize done", "reason", "terminator", "pos", l.cur.CurrPos(), "tokens", len(tokens))
				return tokens, nil
			}
		default:
			acc.WriteRune(ch)
		}
		l.cur.Advance()
	}

	l.log.Debug("tokenize done", "reason", "eof", "tokens", len(tokens), "dropped", acc.Len())
	return tokens, nil
}

// commaFollowsIdent reports whether an empty buffer at a comma can be
// skipped: under Strict, "a , b" is a comma after an identifier that was
// already emitted at the preceding space.
func (l *Lexer) commaFollowsIdent(tokens []Token) bool {
	if l.policy != Strict || len(tokens) == 0 {
		return false
	}
	return tokens[len(tokens)-1].Type == TokenIdent
}
