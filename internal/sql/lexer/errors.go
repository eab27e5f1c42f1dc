package lexer

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates lexical failures.
type ErrorKind int

const (
	// InvalidToken means an accumulated buffer could not be classified.
	InvalidToken ErrorKind = iota + 1
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "invalid token"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// ErrInvalidToken matches any Error of kind InvalidToken via errors.Is.
var ErrInvalidToken = errors.New("invalid token")

// ErrConsumed is returned when Tokenize is called on a lexer whose input
// has already been consumed.
var ErrConsumed = errors.New("lexer already consumed its input")

// Error is a lexical error. Pos is the offset reported by the stream for
// the character at which classification failed.
type Error struct {
	Kind ErrorKind
	Pos  int
	Text string
}

func (e *Error) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s at offset %d", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%s %q at offset %d", e.Kind, e.Text, e.Pos)
}

// Is lets errors.Is match an *Error against ErrInvalidToken.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidToken && e.Kind == InvalidToken
}
