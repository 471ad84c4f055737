package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/gobio/internal/util"
)

// Minimize collapses dfa into an equivalent DFA with the fewest possible
// states, using partition refinement (Hopcroft's technique: begin from a
// coarse partition and repeatedly split blocks that are distinguishable by
// some symbol, until no further split occurs). alphabet is the full input
// alphabet to consider when refining (dfa.InputSymbols()-equivalent, passed
// in explicitly since a DFA[E] does not expose InputSymbols directly).
// classOf assigns each state its initial equivalence class: two states can
// only ever be merged if classOf returns the same value for both, which is
// how a lexer's "accepting for token class X" distinction is kept intact
// across minimization (plain accept/non-accept is not enough; a DFA
// accepting two different token classes must never merge those classes'
// states into one). merge combines the per-state values E of every state
// folded into one minimized state, used to decide things like which
// original NFA states (and therefore which token class, on ties the
// earliest-declared one) a minimized accepting state represents.
func Minimize[E any](dfa DFA[E], alphabet []string, classOf func(state string, value E, accepting bool) string, merge func(values []E) E) DFA[E] {
	stateNames := util.OrderedKeys(dfa.states)

	// initial partition: group by caller-supplied class.
	groupOf := map[string]int{}
	classToGroup := map[string]int{}
	for _, s := range stateNames {
		st := dfa.states[s]
		cls := classOf(s, st.value, st.accepting)
		g, ok := classToGroup[cls]
		if !ok {
			g = len(classToGroup)
			classToGroup[cls] = g
		}
		groupOf[s] = g
	}

	// refine until a fixed point: a state's signature is (its current
	// group, the group each alphabet symbol's transition target falls
	// into). States whose signatures differ must be in different groups.
	for {
		sigToGroup := map[string]int{}
		newGroupOf := map[string]int{}

		for _, s := range stateNames {
			var sb strings.Builder
			fmt.Fprintf(&sb, "%d|", groupOf[s])
			for _, a := range alphabet {
				next := dfa.states[s].transitions[a].Next
				g := -1
				if next != "" {
					g = groupOf[next]
				}
				fmt.Fprintf(&sb, "%s:%d,", a, g)
			}
			sig := sb.String()
			g, ok := sigToGroup[sig]
			if !ok {
				g = len(sigToGroup)
				sigToGroup[sig] = g
			}
			newGroupOf[s] = g
		}

		changed := false
		oldCount := maxGroup(groupOf) + 1
		newCount := maxGroup(newGroupOf) + 1
		if newCount != oldCount {
			changed = true
		} else {
			for _, s := range stateNames {
				if groupOf[s] != newGroupOf[s] {
					changed = true
					break
				}
			}
		}

		groupOf = newGroupOf
		if !changed {
			break
		}
	}

	// build the minimized DFA: one state per final group, named by its
	// sorted member names for determinism.
	groupMembers := map[int][]string{}
	for _, s := range stateNames {
		g := groupOf[s]
		groupMembers[g] = append(groupMembers[g], s)
	}

	groupName := func(g int) string {
		members := append([]string{}, groupMembers[g]...)
		sort.Strings(members)
		return "{" + strings.Join(members, ",") + "}"
	}

	min := DFA[E]{states: map[string]DFAState[E]{}}
	for g, members := range groupMembers {
		name := groupName(g)
		accepting := dfa.states[members[0]].accepting
		values := make([]E, len(members))
		for i, m := range members {
			values[i] = dfa.states[m].value
		}
		min.AddState(name, accepting)
		min.SetValue(name, merge(values))
	}

	for g, members := range groupMembers {
		name := groupName(g)
		rep := members[0]
		for a, t := range dfa.states[rep].transitions {
			toGroup := groupOf[t.Next]
			min.AddTransition(name, a, groupName(toGroup))
		}
	}

	min.Start = groupName(groupOf[dfa.Start])
	return min
}

func maxGroup(m map[string]int) int {
	max := -1
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	return max
}
