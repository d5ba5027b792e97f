// Package credential resolves the API key used for text generation.
package credential

import (
	"context"
	"os"
	"strings"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

// Env reads the key from the first non-empty environment variable.
type Env struct {
	vars   []string
	lookup func(string) (string, bool)
}

func NewEnv(vars ...string) *Env {
	return &Env{vars: vars, lookup: os.LookupEnv}
}

func (e *Env) Lookup(ctx context.Context) (string, bool) {
	for _, name := range e.vars {
		if v, ok := e.lookup(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// Chain returns the key from the first source that has one.
type Chain []domain.CredentialSource

func (c Chain) Lookup(ctx context.Context) (string, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if key, ok := src.Lookup(ctx); ok && key != "" {
			return key, true
		}
	}
	return "", false
}

// Static always returns the same key; an empty key means "none".
type Static string

func (s Static) Lookup(ctx context.Context) (string, bool) {
	return string(s), s != ""
}

var (
	_ domain.CredentialSource = (*Env)(nil)
	_ domain.CredentialSource = Chain(nil)
	_ domain.CredentialSource = Static("")
)
