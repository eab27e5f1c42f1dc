package web

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxStatementBytes bounds the size of a statement accepted by the API.
const MaxStatementBytes = 64 << 10

// namePattern matches a plain or dot-qualified SQL name:
//
//	users, user_table, schema.table, _private.t1
var namePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)

// IsValidName reports whether an identifier token's text is a
// well-formed (optionally qualified) name or the "*" wildcard.
//
//	IsValidName("users")        // true
//	IsValidName("schema.table") // true
//	IsValidName("*")            // true
//	IsValidName("123start")     // false
//	IsValidName("a..b")         // false
//	IsValidName("")             // false
func IsValidName(s string) bool {
	if s == "*" {
		return true
	}
	return namePattern.MatchString(s)
}

// ValidateTokenizeRequest checks a request before it reaches the lexer.
func ValidateTokenizeRequest(req TokenizeRequest) error {
	if strings.TrimSpace(req.SQL) == "" {
		return errors.New("sql field is required")
	}
	if len(req.SQL) > MaxStatementBytes {
		return fmt.Errorf("sql exceeds %d bytes", MaxStatementBytes)
	}
	return nil
}
