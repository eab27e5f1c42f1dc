package web

import (
	"errors"

	"github.com/cabewaldrop/pglex/internal/sql/lexer"
)

// GetErrorHint returns a helpful hint for a lexical error, or an empty
// string if none applies.
func GetErrorHint(err error) string {
	// Strict classification only rejects the empty buffer before a comma.
	if errors.Is(err, lexer.ErrInvalidToken) {
		return "Remove the stray comma or put a column name before it."
	}
	return ""
}
