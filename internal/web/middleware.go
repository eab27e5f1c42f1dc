package web

import (
	"context"
	"net/http"

	"github.com/cabewaldrop/pglex/internal/sql/lexer"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const policyKey contextKey = "policy"

// WithPolicy returns middleware that stores the default lexer policy in
// the request context. Handlers read it back with GetPolicy.
//
//	router.Use(WithPolicy(lexer.Strict))
func WithPolicy(p lexer.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), policyKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPolicy returns the policy stored by WithPolicy, or Permissive when
// the middleware was not applied.
func GetPolicy(r *http.Request) lexer.Policy {
	p, ok := r.Context().Value(policyKey).(lexer.Policy)
	if !ok {
		return lexer.Permissive
	}
	return p
}
