package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/gobio/internal/types"
	"github.com/dekarrin/gobio/internal/util"
)

// Production is the right-hand side of a single alternative of a rule.
// A nil or empty Symbols slice denotes an epsilon production.
type Production struct {
	NonTerminal string
	Symbols     []string
}

func (p Production) Epsilon() bool {
	return len(p.Symbols) == 0
}

func (p Production) String() string {
	if p.Epsilon() {
		return fmt.Sprintf("%s -> ε", displaySymbol(p.NonTerminal))
	}
	return fmt.Sprintf("%s -> %s", displaySymbol(p.NonTerminal), displaySymbols(p.Symbols))
}

// Rule is every alternative production for a single nonterminal.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// term pairs a terminal's grammar-facing ID with the token class it lexes
// to.
type term struct {
	id    string
	class types.TokenClass
}

// Grammar is an ordered, augmentable context-free grammar: a set of
// terminals (each bound to a lexer TokenClass), a set of nonterminal rules,
// and a designated start symbol. Iteration order over terminals and
// nonterminals always follows declaration order, satisfying the
// determinism contract shared by every downstream builder.
type Grammar struct {
	start      string
	ruleOrder  []string
	rules      map[string]*Rule
	termOrder  []string
	terms      map[string]term
}

// New returns an empty, mutable Grammar.
func New() *Grammar {
	return &Grammar{
		rules: map[string]*Rule{},
		terms: map[string]term{},
	}
}

// AddTerm declares a terminal symbol bound to the given token class. It is
// an error to redeclare an existing terminal ID.
func (g *Grammar) AddTerm(id string, class types.TokenClass) error {
	if _, ok := g.terms[id]; ok {
		return fmt.Errorf("terminal %q already declared", id)
	}
	g.terms[id] = term{id: id, class: class}
	g.termOrder = append(g.termOrder, id)
	return nil
}

// Term returns the token class bound to terminal id, and whether id is a
// declared terminal.
func (g *Grammar) Term(id string) (types.TokenClass, bool) {
	t, ok := g.terms[id]
	if !ok {
		return nil, false
	}
	return t.class, true
}

// IsTerminal reports whether sym is a declared terminal symbol.
func (g *Grammar) IsTerminal(sym string) bool {
	_, ok := g.terms[sym]
	return ok
}

// IsNonTerminal reports whether sym has at least one declared production.
func (g *Grammar) IsNonTerminal(sym string) bool {
	_, ok := g.rules[sym]
	return ok
}

// Terminals returns every declared terminal symbol in declaration order.
func (g *Grammar) Terminals() []string {
	return append([]string{}, g.termOrder...)
}

// NonTerminals returns every declared nonterminal in declaration order.
func (g *Grammar) NonTerminals() []string {
	return append([]string{}, g.ruleOrder...)
}

// AddRule declares (or appends alternatives to) the rule for nonTerminal.
// Each entry of alts is one alternative's right-hand side symbol sequence;
// an empty/nil entry is an epsilon production.
func (g *Grammar) AddRule(nonTerminal string, alts ...[]string) {
	r, ok := g.rules[nonTerminal]
	if !ok {
		r = &Rule{NonTerminal: nonTerminal}
		g.rules[nonTerminal] = r
		g.ruleOrder = append(g.ruleOrder, nonTerminal)
	}
	for _, alt := range alts {
		r.Productions = append(r.Productions, Production{NonTerminal: nonTerminal, Symbols: append([]string{}, alt...)})
	}
}

// Rule returns the declared rule for nonTerminal, and whether it exists.
func (g *Grammar) Rule(nonTerminal string) (Rule, bool) {
	r, ok := g.rules[nonTerminal]
	if !ok {
		return Rule{}, false
	}
	return *r, true
}

// StartSymbol returns the grammar's designated start nonterminal.
func (g *Grammar) StartSymbol() string {
	return g.start
}

// SetStartSymbol designates s (which must already have a rule) as the
// grammar's start symbol.
func (g *Grammar) SetStartSymbol(s string) {
	g.start = s
}

// augmentedStartSymbol is the internal name of the synthetic start symbol
// Augmented adds, displayed everywhere as S'.
const augmentedStartSymbol = "zengguang"

// Augmented returns a copy of g with a new start symbol S' and a single
// production S' -> S, where S is g's original start symbol, but only when S
// itself has more than one production. A start symbol with a single
// production already serves as its own unambiguous accepting nonterminal,
// so augmenting it would add a useless extra reduction; in that case
// Augmented returns g unchanged.
func (g Grammar) Augmented() Grammar {
	if r, ok := g.rules[g.start]; ok && len(r.Productions) <= 1 {
		return g.Copy()
	}
	cp := g.Copy()
	cp.AddRule(augmentedStartSymbol, []string{g.start})
	cp.start = augmentedStartSymbol
	return cp
}

// Copy returns a deep copy of the grammar.
func (g Grammar) Copy() Grammar {
	cp := Grammar{
		start:     g.start,
		ruleOrder: append([]string{}, g.ruleOrder...),
		rules:     map[string]*Rule{},
		termOrder: append([]string{}, g.termOrder...),
		terms:     map[string]term{},
	}
	for k, v := range g.terms {
		cp.terms[k] = v
	}
	for k, v := range g.rules {
		nr := &Rule{NonTerminal: v.NonTerminal}
		for _, p := range v.Productions {
			nr.Productions = append(nr.Productions, Production{NonTerminal: p.NonTerminal, Symbols: append([]string{}, p.Symbols...)})
		}
		cp.rules[k] = nr
	}
	return cp
}

// Validate reports an error if the grammar has no start symbol, the start
// symbol has no rule, or any production references an undeclared symbol.
func (g Grammar) Validate() error {
	if g.start == "" {
		return fmt.Errorf("grammar has no start symbol set")
	}
	if _, ok := g.rules[g.start]; !ok {
		return fmt.Errorf("start symbol %q has no productions", g.start)
	}

	var errs []string
	for _, nt := range g.ruleOrder {
		for _, p := range g.rules[nt].Productions {
			for _, sym := range p.Symbols {
				if sym == Epsilon {
					continue
				}
				if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
					errs = append(errs, fmt.Sprintf("production %s references undeclared symbol %q", p.String(), sym))
				}
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf(strings.Join(errs, "\n"))
	}
	return nil
}

func (g Grammar) String() string {
	var sb strings.Builder
	for _, nt := range g.ruleOrder {
		r := g.rules[nt]
		alts := make([]string, len(r.Productions))
		for i, p := range r.Productions {
			if p.Epsilon() {
				alts[i] = "ε"
			} else {
				alts[i] = displaySymbols(p.Symbols)
			}
		}
		fmt.Fprintf(&sb, "%s -> %s\n", displaySymbol(nt), strings.Join(alts, " | "))
	}
	return sb.String()
}

// displaySymbol renders sym for human-facing output, substituting the
// conventional S' for the internal augmented-start-symbol name.
func displaySymbol(sym string) string {
	if sym == augmentedStartSymbol {
		return "S'"
	}
	return sym
}

func displaySymbols(syms []string) string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = displaySymbol(s)
	}
	return strings.Join(out, " ")
}

// orderedTermSet is a small helper for presenting a util.StringSet of
// terminals in declaration order rather than map-random order.
func (g Grammar) orderedTermSet(s util.StringSet) []string {
	order := map[string]int{}
	for i, t := range g.termOrder {
		order[t] = i
	}
	out := s.Elements()
	sort.Slice(out, func(i, j int) bool {
		oi, iok := order[out[i]]
		oj, jok := order[out[j]]
		if !iok || !jok {
			return out[i] < out[j]
		}
		return oi < oj
	})
	return out
}
