package lex

import (
	"github.com/dekarrin/gobio/internal/automaton"
	"github.com/dekarrin/gobio/internal/util"
)

// SubsetConstructor performs the NFA-to-DFA subset construction over a
// tagged regex NFA, producing a DFA whose per-state value is the winning
// PatternTag for that subset (the declaration-order-earliest rule among any
// NFA accept states folded into it), or the zero PatternTag for non-accept
// states.
type SubsetConstructor struct{}

// NewSubsetConstructor returns a SubsetConstructor.
func NewSubsetConstructor() SubsetConstructor { return SubsetConstructor{} }

// Build runs subset construction over nfa and renumbers the resulting DFA's
// states to small sequential integers starting at 0.
func (SubsetConstructor) Build(nfa automaton.NFA[PatternTag]) automaton.DFA[PatternTag] {
	subsetDFA := nfa.ToDFA()

	tagged := automaton.TransformDFA(subsetDFA, func(members util.SVSet[PatternTag]) PatternTag {
		return winningTag(members)
	})

	tagged.NumberStates()
	return tagged
}

// winningTag picks, among the PatternTags of a DFA state's constituent NFA
// accept states, the one with lowest Priority (earliest-declared rule
// wins ties at the same matched length); states with no accepting member
// get the zero PatternTag.
func winningTag(members util.SVSet[PatternTag]) PatternTag {
	best := PatternTag{}
	haveBest := false
	for _, k := range members.Elements() {
		tag := members.Get(k)
		if tag.RuleName == "" {
			continue
		}
		if !haveBest || tag.Priority < best.Priority {
			best = tag
			haveBest = true
		}
	}
	return best
}
