package lex

import (
	"io"
	"strings"

	"github.com/dekarrin/gobio/internal/automaton"
	"github.com/dekarrin/gobio/internal/icerrors"
	"github.com/dekarrin/gobio/internal/types"
)

// Rule is one named lexical rule: the token class it produces, the regex
// pattern (pre-RegexPreprocessor expansion) that matches it, and its
// declaration-order priority. Compile does not read Priority: it breaks
// maximal-munch ties between two rules matching the same longest lexeme by
// each rule's index in the slice it is given (the earlier rule wins), which
// for SpecLoader's output is the same order as Priority.
type Rule struct {
	Class    types.TokenClass
	Pattern  string
	Priority int
	// Code is the rule's token code, assigned by a `_IDENTnumber`/
	// `_IDENTnumberS` lexical-spec declaration (SpecLoader). Hand-built
	// rules that don't need one may leave it zero.
	Code int
	// Discard, if true, means tokens of this class are recognized (so they
	// can't be accidentally matched as part of a longer token) but are not
	// emitted onto the resulting TokenStream, e.g. whitespace and comments.
	// SpecLoader's text format has no directive for this; it is set only
	// by callers constructing Rule values directly.
	Discard bool
}

// CompiledLexer is the runtime artifact of compiling a set of lexical
// rules: a minimized DFA plus the rule metadata needed to turn an accept
// state into an emitted Token.
type CompiledLexer struct {
	dfa      automaton.DFA[PatternTag]
	alphabet []string
	rules    map[string]Rule
}

// Compile runs the full lexer-engine pipeline over rules: RegexPreprocessor
// expansion, NfaBuilder construction (one tagged fragment per rule, unioned
// together), SubsetConstructor, and DfaMinimizer, returning a CompiledLexer
// ready to scan source text.
func Compile(rules []Rule, vars map[string]string) (*CompiledLexer, error) {
	if len(rules) == 0 {
		return nil, icerrors.New(icerrors.SpecSyntax, "no lexical rules given")
	}

	pre := NewRegexPreprocessor()
	for name, pattern := range vars {
		pre.Define(name, pattern)
	}

	builder := NewNfaBuilder()
	ruleByName := map[string]Rule{}

	var combined *automaton.NFA[PatternTag]
	for i, r := range rules {
		ruleByName[r.Class.ID()] = r

		expanded, err := pre.Preprocess(r.Pattern)
		if err != nil {
			return nil, err
		}

		frag, _, err := builder.Build(expanded, PatternTag{RuleName: r.Class.ID(), Priority: i})
		if err != nil {
			return nil, icerrors.Wrap(icerrors.RegexSyntax, err, "rule %q", r.Class.ID())
		}

		if combined == nil {
			combined = &frag
			continue
		}

		joined := combined.Join(frag, nil, nil, nil, nil)
		newStart := builder.NewState()
		joined.AddState(newStart, false)
		joined.AddTransition(newStart, automaton.Epsilon, "1:"+combined.Start)
		joined.AddTransition(newStart, automaton.Epsilon, "2:"+frag.Start)
		joined.Start = newStart
		combined = &joined
	}

	subset := NewSubsetConstructor().Build(*combined)
	alphabet := combined.InputSymbols().Elements()
	minimized := NewDfaMinimizer().Minimize(subset, alphabet)

	return &CompiledLexer{dfa: minimized, alphabet: alphabet, rules: ruleByName}, nil
}

// DFAString renders the minimized DFA driving c, for inspection/teaching
// output (e.g. cmd/gobio's `lex` subcommand).
func (c *CompiledLexer) DFAString() string {
	return c.dfa.String()
}

// RuleCode returns the token code assigned to the rule that produces
// class (via a `_IDENTnumber`/`_IDENTnumberS` lexical-spec declaration),
// and whether class names a rule of c at all.
func (c *CompiledLexer) RuleCode(class string) (int, bool) {
	r, ok := c.rules[class]
	if !ok {
		return 0, false
	}
	return r.Code, true
}

// Lex scans r's full contents and returns the resulting TokenStream via
// maximal-munch matching: at each position, the longest prefix matched by
// some rule is consumed, ties broken by declaration order, and Discard
// rules are recognized but not emitted.
func (c *CompiledLexer) Lex(r io.Reader) (types.TokenStream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, icerrors.Wrap(icerrors.MissingInput, err, "reading lexer input")
	}
	src := string(data)

	lineStarts := splitLines(src)

	var toks []types.Token
	pos := 0
	line, col := 1, 1

	for pos < len(src) {
		matchLen, tag := c.longestMatch(src[pos:])
		if matchLen == 0 {
			fullLine := lineAt(lineStarts, line)
			return nil, icerrors.NewAt(icerrors.SpecSyntax, icerrors.Position{Line: line, Col: col, FullLine: fullLine},
				"no lexical rule matches input starting at %q", previewOf(src[pos:]))
		}

		lexeme := src[pos : pos+matchLen]
		rule, ok := c.rules[tag.RuleName]
		if !ok {
			return nil, icerrors.New(icerrors.SpecSyntax, "matched unknown rule %q", tag.RuleName)
		}

		if !rule.Discard {
			fullLine := lineAt(lineStarts, line)
			toks = append(toks, types.NewToken(rule.Class, lexeme, line, col, fullLine))
		}

		for _, ch := range lexeme {
			if ch == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		pos += matchLen
	}

	return types.NewSliceStream(toks), nil
}

// longestMatch walks c.dfa over s from its start, returning the length of
// the longest prefix that ends on an accepting state and that state's
// winning PatternTag, or (0, zero) if no prefix matches.
func (c *CompiledLexer) longestMatch(s string) (int, PatternTag) {
	state := c.dfa.Start
	bestLen := 0
	var bestTag PatternTag

	if c.dfa.IsAccepting(state) {
		bestLen = 0
		bestTag = c.dfa.GetValue(state)
	}

	for i, ch := range s {
		sym := string(ch)
		next := c.dfa.Next(state, sym)
		if next == "" {
			break
		}
		state = next
		if c.dfa.IsAccepting(state) {
			bestLen = i + len(sym)
			bestTag = c.dfa.GetValue(state)
		}
	}

	return bestLen, bestTag
}

func splitLines(src string) []string {
	return strings.Split(src, "\n")
}

func lineAt(lines []string, n int) string {
	if n-1 < 0 || n-1 >= len(lines) {
		return ""
	}
	return lines[n-1]
}

func previewOf(s string) string {
	const maxLen = 20
	line, _, _ := strings.Cut(s, "\n")
	if len(line) > maxLen {
		return line[:maxLen] + "..."
	}
	return line
}
