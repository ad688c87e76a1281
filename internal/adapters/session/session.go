// Package session provides small ports.SessionChecker implementations. The
// core only consumes a yes/no answer; how the hosting layer establishes the
// session (hosted auth provider, reverse proxy, tests) is its own business.
package session

import "context"

// CheckerFunc adapts a plain function to ports.SessionChecker.
type CheckerFunc func(ctx context.Context) bool

// HasSession reports whether the current request is authenticated.
func (f CheckerFunc) HasSession(ctx context.Context) bool { return f(ctx) }

// Static answers every check with a fixed decision. Useful when the hosting
// layer has already authenticated the request before it reaches the core.
type Static struct {
	Authenticated bool
}

// HasSession reports the fixed decision.
func (s Static) HasSession(ctx context.Context) bool { return s.Authenticated }

type ctxKey struct{}

// WithToken stores a session token on the context for a TokenChecker
// further down the call chain.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenChecker accepts requests whose context carries the expected token.
type TokenChecker struct {
	token string
}

// NewTokenChecker creates a checker for the given shared token. An empty
// token rejects everything.
func NewTokenChecker(token string) *TokenChecker {
	return &TokenChecker{token: token}
}

// HasSession reports whether the context carries the expected token.
func (t *TokenChecker) HasSession(ctx context.Context) bool {
	if t.token == "" {
		return false
	}
	got, _ := ctx.Value(ctxKey{}).(string)
	return got == t.token
}
