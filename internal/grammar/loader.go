package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/gobio/internal/types"
)

// GrammarLoader parses the module's grammar text format and builds a
// Grammar from it.
//
// Format:
//
//	NonTermA | NonTermB | NonTermC
//	plus | id | lparen | rparen
//	NonTermA -> NonTermB plus NonTermA
//	NonTermA -> NonTermB
//	NonTermB -> lparen NonTermA rparen
//	NonTermB -> id
//	NonTermC -> @
//
// Line 1 is every nonterminal, separated by `|`. Line 2 is every terminal,
// separated by `|`. Every remaining line is one production,
// `LHS -> sym1 sym2 …`; the `|`-separated disjunction form is NOT
// accepted here — each alternative of a rule is its own line. `@` alone
// on the right-hand side denotes the empty production. The first
// production's left-hand side is taken as the grammar's start symbol.
// Nonterminals are conventionally uppercase and terminals lowercase,
// matching a lexical spec's token-rule names (SpecLoader).
type GrammarLoader struct{}

// NewGrammarLoader returns a GrammarLoader.
func NewGrammarLoader() GrammarLoader {
	return GrammarLoader{}
}

// LoadString parses a grammar from a string.
func (l GrammarLoader) LoadString(src string) (Grammar, error) {
	return l.Load(strings.NewReader(src))
}

// Load parses a grammar from r.
func (l GrammarLoader) Load(r io.Reader) (Grammar, error) {
	lines, err := collectNonEmptyLines(r)
	if err != nil {
		return Grammar{}, err
	}
	if len(lines) < 2 {
		return Grammar{}, fmt.Errorf("grammar text must have a nonterminal line and a terminal line")
	}

	nonTermList := splitBar(lines[0])
	termList := splitBar(lines[1])
	if len(nonTermList) == 0 {
		return Grammar{}, fmt.Errorf("nonterminal line declares no nonterminals")
	}

	nonTerms := map[string]bool{}
	for _, nt := range nonTermList {
		nonTerms[nt] = true
	}

	g := New()
	for _, t := range termList {
		if err := g.AddTerm(t, types.MakeDefaultClass(t)); err != nil {
			return Grammar{}, err
		}
	}

	start := ""
	for _, ln := range lines[2:] {
		lhs, rhs, ok := strings.Cut(ln, "->")
		if !ok {
			return Grammar{}, fmt.Errorf("malformed production (missing '->'): %q", ln)
		}
		lhs = strings.TrimSpace(lhs)
		if !nonTerms[lhs] {
			return Grammar{}, fmt.Errorf("production left-hand side %q was not declared on the nonterminal line", lhs)
		}

		symbols := strings.Fields(rhs)
		if len(symbols) == 0 {
			return Grammar{}, fmt.Errorf("production %q has an empty right-hand side (use '@' for the empty production)", ln)
		}

		var alt []string
		if len(symbols) == 1 && symbols[0] == emptyProductionMarker {
			alt = nil
		} else {
			alt = symbols
			for _, sym := range alt {
				if !nonTerms[sym] && !g.IsTerminal(sym) {
					return Grammar{}, fmt.Errorf("production %q references undeclared symbol %q", ln, sym)
				}
			}
		}

		if start == "" {
			start = lhs
		}
		g.AddRule(lhs, alt)
	}

	if start == "" {
		return Grammar{}, fmt.Errorf("grammar has no productions")
	}
	g.SetStartSymbol(start)

	if err := g.Validate(); err != nil {
		return Grammar{}, err
	}

	return *g, nil
}

// emptyProductionMarker is the text a grammar author writes on a
// production's right-hand side to mean the empty production.
const emptyProductionMarker = "@"

func splitBar(line string) []string {
	var out []string
	for _, tok := range strings.Split(line, "|") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// collectNonEmptyLines reads every line from r, trimming surrounding
// whitespace and dropping blank lines.
func collectNonEmptyLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
