package lex

import (
	"fmt"

	"github.com/dekarrin/gobio/internal/automaton"
)

// DfaMinimizer collapses a subset-constructed DFA to its minimal form while
// respecting token-class boundaries: two states can only be merged if they
// agree on whether they accept, and if so, on which rule wins.
type DfaMinimizer struct{}

// NewDfaMinimizer returns a DfaMinimizer.
func NewDfaMinimizer() DfaMinimizer { return DfaMinimizer{} }

// Minimize reduces dfa to its minimal equivalent over the given input
// alphabet.
func (DfaMinimizer) Minimize(dfa automaton.DFA[PatternTag], alphabet []string) automaton.DFA[PatternTag] {
	classOf := func(state string, tag PatternTag, accepting bool) string {
		if !accepting {
			return "reject"
		}
		return fmt.Sprintf("accept:%s", tag.RuleName)
	}

	merge := func(values []PatternTag) PatternTag {
		best := PatternTag{}
		haveBest := false
		for _, tag := range values {
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

	min := automaton.Minimize(dfa, alphabet, classOf, merge)
	min.NumberStates()
	return min
}
