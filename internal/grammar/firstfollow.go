package grammar

import "github.com/dekarrin/gobio/internal/util"

// FirstSet is the FIRST set of some grammar symbol or symbol sequence: the
// terminals that can begin a string derived from it, plus whether the
// sequence can also derive the empty string.
type FirstSet struct {
	Terminals util.StringSet
	Epsilon   bool
}

func newFirstSet() FirstSet {
	return FirstSet{Terminals: util.NewStringSet()}
}

func (fs FirstSet) unionInto(o FirstSet) FirstSet {
	merged := FirstSet{Terminals: fs.Terminals.Union(o.Terminals).(util.StringSet), Epsilon: fs.Epsilon || o.Epsilon}
	return merged
}

// FirstFollowTable holds the fixed-point FIRST and FOLLOW sets for every
// symbol of a grammar, computed once up front (spec's FirstFollow
// component). Dragon book §4.4.2.
type FirstFollowTable struct {
	g      Grammar
	first  map[string]FirstSet
	follow map[string]util.StringSet
}

// BuildFirstFollow computes FIRST and FOLLOW for every terminal and
// nonterminal of g via fixed-point iteration.
func BuildFirstFollow(g Grammar) FirstFollowTable {
	t := FirstFollowTable{g: g, first: map[string]FirstSet{}, follow: map[string]util.StringSet{}}

	for _, term := range g.Terminals() {
		t.first[term] = FirstSet{Terminals: util.StringSetOf([]string{term})}
	}
	for _, nt := range g.NonTerminals() {
		t.first[nt] = newFirstSet()
	}

	// FIRST: iterate to a fixed point, since a nonterminal's FIRST set can
	// depend on another nonterminal's FIRST set defined later in the
	// grammar (possibly mutually, possibly recursively).
	for {
		changed := false
		for _, nt := range g.NonTerminals() {
			rule, _ := g.Rule(nt)
			for _, p := range rule.Productions {
				seqFirst := t.firstOfSequence(p.Symbols)
				before := t.first[nt]
				merged := before.unionInto(seqFirst)
				if merged.Terminals.Len() != before.Terminals.Len() || merged.Epsilon != before.Epsilon {
					t.first[nt] = merged
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	for _, nt := range g.NonTerminals() {
		t.follow[nt] = util.NewStringSet()
	}
	if g.start != "" {
		t.follow[g.start].Add(EndOfInput)
	}

	// FOLLOW: for A -> αBβ, FIRST(β)\{ε} ⊆ FOLLOW(B); if β is nullable (or
	// empty), FOLLOW(A) ⊆ FOLLOW(B) too. Iterate to a fixed point since
	// FOLLOW(A) itself can still be growing.
	for {
		changed := false
		for _, nt := range g.NonTerminals() {
			rule, _ := g.Rule(nt)
			for _, p := range rule.Productions {
				for i, sym := range p.Symbols {
					if !g.IsNonTerminal(sym) {
						continue
					}
					beta := p.Symbols[i+1:]
					betaFirst := t.firstOfSequence(beta)

					before := t.follow[sym].Len()
					t.follow[sym].AddAll(betaFirst.Terminals)
					if betaFirst.Epsilon || len(beta) == 0 {
						t.follow[sym].AddAll(t.follow[nt])
					}
					if t.follow[sym].Len() != before {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return t
}

// firstOfSequence computes FIRST(X1 X2 ... Xn) for a production's RHS (or
// any suffix of one): Dragon book algorithm for FIRST of a symbol string.
func (t FirstFollowTable) firstOfSequence(seq []string) FirstSet {
	result := newFirstSet()
	if len(seq) == 0 {
		result.Epsilon = true
		return result
	}

	for _, sym := range seq {
		if sym == Epsilon {
			result.Epsilon = true
			return result
		}
		if sym == EndOfInput {
			// "$" appears only as an LR(1) lookahead appended to a
			// sequence; it is its own FIRST set.
			result.Terminals.Add(EndOfInput)
			return result
		}
		symFirst, ok := t.first[sym]
		if !ok {
			// symbol not yet seen in a fixed-point pass in progress;
			// treat as contributing nothing yet, the outer loop will
			// revisit.
			return result
		}
		result.Terminals = result.Terminals.Union(symFirst.Terminals).(util.StringSet)
		if !symFirst.Epsilon {
			result.Epsilon = false
			return result
		}
	}
	// every symbol in seq was nullable
	result.Epsilon = true
	return result
}

// First returns the FIRST set of a single grammar symbol.
func (t FirstFollowTable) First(sym string) FirstSet {
	return t.first[sym]
}

// FirstOfSequence returns the FIRST set of a symbol sequence (e.g. the beta
// remaining after a dot in an LR item), used by Lr1Builder's lookahead
// propagation.
func (t FirstFollowTable) FirstOfSequence(seq []string) FirstSet {
	return t.firstOfSequence(seq)
}

// Follow returns the FOLLOW set of a nonterminal.
func (t FirstFollowTable) Follow(nonTerminal string) util.StringSet {
	return t.follow[nonTerminal]
}

// FIRST is a convenience wrapper that builds a fresh FirstFollowTable and
// returns the FIRST set of sym. Grammars in this module are small teaching
// examples, so recomputing on each call keeps the API simple at negligible
// cost; callers doing repeated lookups (the table builders) use
// BuildFirstFollow directly instead.
func (g Grammar) FIRST(sym string) FirstSet {
	return BuildFirstFollow(g).First(sym)
}

// FOLLOW is the FIRST convenience wrapper's counterpart for FOLLOW sets.
func (g Grammar) FOLLOW(nonTerminal string) util.StringSet {
	return BuildFirstFollow(g).Follow(nonTerminal)
}
