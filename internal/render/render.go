// Package render instantiates stubs by literal placeholder substitution.
//
// Substitution is driven by a token table rather than a sequence of replace
// calls. Tokens are matched longest first in a single pass over the stub, so
// DummyInterface never eats the prefix of DummyInterfaceNamespace and the
// output does not depend on the order the table was built in.
package render

import (
	"regexp"
	"sort"
	"strings"

	"github.com/conneroisu/modforge/internal/errors"
	"github.com/conneroisu/modforge/internal/naming"
	"github.com/conneroisu/modforge/internal/stubs"
)

// placeholderPattern matches anything spelled like a stub placeholder.
var placeholderPattern = regexp.MustCompile(`\b(?:Dummy[A-Za-z]*|dummy[a-z]*)`)

// Renderer loads stubs and renders them for a module.
type Renderer struct {
	loader stubs.Loader
}

// New creates a renderer reading stubs from loader.
func New(loader stubs.Loader) *Renderer {
	return &Renderer{loader: loader}
}

// RenderKind loads the stub of kind and renders it for the module behind n.
func (r *Renderer) RenderKind(kind naming.Kind, n naming.Namer) (string, error) {
	stub, err := r.loader.Load(kind)
	if err != nil {
		return "", errors.NewStubReadError(stubs.FileName(kind), err).WithArtifact(string(kind))
	}
	return Render(kind, stub, TokensFor(kind, n))
}

// Render substitutes tokens into stub. Every placeholder in the stub must be
// declared in tokens and the result must contain no placeholder; otherwise an
// UnresolvedPlaceholder error is returned.
func Render(kind naming.Kind, stub string, tokens Tokens) (string, error) {
	if unknown := undeclared(stub, tokens); len(unknown) > 0 {
		return "", errors.NewUnresolvedPlaceholderError(string(kind), unknown)
	}

	content := Substitute(stub, tokens)

	if leftover := Placeholders(content); len(leftover) > 0 {
		return "", errors.NewUnresolvedPlaceholderError(string(kind), leftover)
	}

	return content, nil
}

// Substitute replaces every token of the table in stub, longest token first.
func Substitute(stub string, tokens Tokens) string {
	ordered := make([]Token, 0, len(tokens))
	for token := range tokens {
		ordered = append(ordered, token)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	pairs := make([]string, 0, len(ordered)*2)
	for _, token := range ordered {
		pairs = append(pairs, string(token), tokens[token])
	}

	return strings.NewReplacer(pairs...).Replace(stub)
}

// Placeholders returns the distinct placeholder spellings found in content,
// sorted.
func Placeholders(content string) []string {
	seen := make(map[string]bool)
	var found []string
	for _, match := range placeholderPattern.FindAllString(content, -1) {
		if !seen[match] {
			seen[match] = true
			found = append(found, match)
		}
	}
	sort.Strings(found)
	return found
}

func undeclared(stub string, tokens Tokens) []string {
	var unknown []string
	for _, placeholder := range Placeholders(stub) {
		if !tokens.Has(placeholder) {
			unknown = append(unknown, placeholder)
		}
	}
	return unknown
}
