// Package lex implements the lexer engine: RegexPreprocessor, NfaBuilder,
// NfaTable, SubsetConstructor, and DfaMinimizer, plus a Compile entry point
// that chains all of them but NfaTable into a runtime scanner.
package lex

import (
	"sort"
	"strings"

	"github.com/dekarrin/gobio/internal/icerrors"
)

// RegexPreprocessor expands a lexical spec's regex syntax sugar into the
// reduced form NfaBuilder consumes: named-variable substitution and ASCII
// shorthand character classes. Supported regex syntax is deliberately
// narrow per this toolkit's scope: literals, `.`, bracket classes
// (`[abc]`, `[a-z]`, negated `[^...]`), grouping, alternation `|`, and the
// repetition operators `*`, `+`, `?`. Backreferences, anchors, and
// general Unicode classes are out of scope.
type RegexPreprocessor struct {
	// Vars holds named sub-patterns a lexical spec can define once and
	// reference elsewhere by their bare name (e.g. `letter`, `digit`).
	Vars map[string]string
}

// NewRegexPreprocessor returns a RegexPreprocessor with no variables bound.
func NewRegexPreprocessor() *RegexPreprocessor {
	return &RegexPreprocessor{Vars: map[string]string{}}
}

// Define binds a named sub-pattern for later whole-word substitution.
func (p *RegexPreprocessor) Define(name, pattern string) {
	if p.Vars == nil {
		p.Vars = map[string]string{}
	}
	p.Vars[name] = pattern
}

var asciiShorthand = map[string]string{
	`\d`: "[0-9]",
	`\w`: "[A-Za-z0-9_]",
	`\s`: "[ \t\n\r]",
}

// Preprocess expands variable references and ASCII shorthand classes in
// pattern, returning a regex string containing only the reduced syntax
// NfaBuilder understands.
func (p *RegexPreprocessor) Preprocess(pattern string) (string, error) {
	expanded := pattern
	const maxExpansions = 64
	for i := 0; i < maxExpansions; i++ {
		next, did := p.expandVarsOnce(expanded)
		if !did {
			break
		}
		expanded = next
		if i == maxExpansions-1 {
			return "", icerrors.New(icerrors.RegexSyntax, "variable substitution did not terminate (possible cycle) in %q", pattern)
		}
	}

	for shorthand, expansion := range asciiShorthand {
		expanded = strings.ReplaceAll(expanded, shorthand, expansion)
	}

	return expanded, nil
}

// expandVarsOnce scans s left to right for a whole-word occurrence of a
// bound variable name, replacing it with its parenthesized definition.
// A match is whole-word when neither adjacent character is alphanumeric
// or `_`. At a given position, the longest matching variable name wins,
// so a short name is never substituted over part of a longer one.
func (p *RegexPreprocessor) expandVarsOnce(s string) (string, bool) {
	if len(p.Vars) == 0 {
		return s, false
	}

	names := make([]string, 0, len(p.Vars))
	for name := range p.Vars {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	runes := []rune(s)
	var sb strings.Builder
	did := false

	for i := 0; i < len(runes); {
		matched := false
		for _, name := range names {
			nr := []rune(name)
			end := i + len(nr)
			if end > len(runes) || string(runes[i:end]) != name {
				continue
			}
			if i > 0 && isWordChar(runes[i-1]) {
				continue
			}
			if end < len(runes) && isWordChar(runes[end]) {
				continue
			}
			sb.WriteString("(" + p.Vars[name] + ")")
			i = end
			did = true
			matched = true
			break
		}
		if !matched {
			sb.WriteRune(runes[i])
			i++
		}
	}

	return sb.String(), did
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Validate reports a RegexSyntax error if pattern has unbalanced brackets
// or parentheses, without fully parsing it; NfaBuilder performs the full
// structural parse.
func Validate(pattern string) error {
	depthParen, depthBracket := 0, 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++ // the escaped character is a literal, not a bracket or paren
		case '(':
			depthParen++
		case ')':
			depthParen--
			if depthParen < 0 {
				return icerrors.New(icerrors.RegexSyntax, "unbalanced ')' at position %d in %q", i, pattern)
			}
		case '[':
			depthBracket++
		case ']':
			depthBracket--
			if depthBracket < 0 {
				return icerrors.New(icerrors.RegexSyntax, "unbalanced ']' at position %d in %q", i, pattern)
			}
		}
	}
	if depthParen != 0 {
		return icerrors.New(icerrors.RegexSyntax, "unbalanced '(' in %q", pattern)
	}
	if depthBracket != 0 {
		return icerrors.New(icerrors.RegexSyntax, "unbalanced '[' in %q", pattern)
	}
	return nil
}
