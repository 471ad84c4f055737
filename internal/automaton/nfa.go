// Package automaton holds generic, finite-state-machine container types
// shared by every stage of the lexer engine (NfaBuilder, NfaTable,
// SubsetConstructor, DfaMinimizer) and by the parser engine's canonical
// collection builders. Both the regex NFA and the LR viable-prefix
// collections are instances of the same NFA[E]/DFA[E] generics, annotated
// with whatever per-state value E their builder needs.
package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gobio/internal/util"
)

// Epsilon is the empty-string input symbol used for NFA epsilon-transitions.
const Epsilon = ""

// FATransition is a single edge: on Input, go to the state named Next.
type FATransition struct {
	Input string
	Next  string
}

// NFAState is one state of an NFA[E], carrying an arbitrary annotation value
// of type E (e.g. the LR0Item a state represents, or nothing at all for a
// plain regex NFA).
type NFAState[E any] struct {
	name        string
	value       E
	accepting   bool
	transitions map[string][]FATransition
}

func (s NFAState[E]) Copy() NFAState[E] {
	cp := NFAState[E]{name: s.name, value: s.value, accepting: s.accepting, transitions: map[string][]FATransition{}}
	for k, v := range s.transitions {
		cpv := make([]FATransition, len(v))
		copy(cpv, v)
		cp.transitions[k] = cpv
	}
	return cp
}

func (s NFAState[E]) String() string {
	return fmt.Sprintf("(%s){accepting: %v, value: %v}", s.name, s.accepting, s.value)
}

// NFA is a nondeterministic finite automaton whose states each carry a value
// of type E. Transitions are labeled with single-symbol strings; the empty
// string labels an epsilon-transition.
type NFA[E any] struct {
	states map[string]NFAState[E]
	Start  string
}

// NewNFA returns an empty NFA ready for AddState calls.
func NewNFA[E any]() *NFA[E] {
	return &NFA[E]{states: map[string]NFAState[E]{}}
}

func (nfa *NFA[E]) AddState(state string, accepting bool) {
	if _, ok := nfa.states[state]; ok {
		return
	}
	if nfa.states == nil {
		nfa.states = map[string]NFAState[E]{}
	}
	nfa.states[state] = NFAState[E]{name: state, transitions: map[string][]FATransition{}, accepting: accepting}
}

func (nfa *NFA[E]) SetValue(state string, v E) {
	s, ok := nfa.states[state]
	if !ok {
		panic(fmt.Sprintf("setting value on non-existing state: %q", state))
	}
	s.value = v
	nfa.states[state] = s
}

func (nfa NFA[E]) GetValue(state string) E {
	return nfa.states[state].value
}

func (nfa NFA[E]) IsAccepting(state string) bool {
	return nfa.states[state].accepting
}

// SetAccepting marks state as accepting or not, e.g. when a composed
// fragment's old accept state is superseded by a new one.
func (nfa *NFA[E]) SetAccepting(state string, accepting bool) {
	s, ok := nfa.states[state]
	if !ok {
		panic(fmt.Sprintf("setting accepting on non-existing state: %q", state))
	}
	s.accepting = accepting
	nfa.states[state] = s
}

func (nfa *NFA[E]) AddTransition(fromState, input, toState string) {
	if _, ok := nfa.states[fromState]; !ok {
		panic(fmt.Sprintf("add transition from non-existent state %q", fromState))
	}
	if _, ok := nfa.states[toState]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %q", toState))
	}
	cur := nfa.states[fromState]
	cur.transitions[input] = append(cur.transitions[input], FATransition{Input: input, Next: toState})
	nfa.states[fromState] = cur
}

func (nfa NFA[E]) States() util.StringSet {
	s := util.NewStringSet()
	for k := range nfa.states {
		s.Add(k)
	}
	return s
}

func (nfa NFA[E]) AcceptingStates() util.StringSet {
	accepting := util.NewStringSet()
	for k, st := range nfa.states {
		if st.accepting {
			accepting.Add(k)
		}
	}
	return accepting
}

// Copy returns a deep duplicate of the NFA.
func (nfa NFA[E]) Copy() NFA[E] {
	cp := NFA[E]{Start: nfa.Start, states: map[string]NFAState[E]{}}
	for k, v := range nfa.states {
		cp.states[k] = v.Copy()
	}
	return cp
}

// InputSymbols returns every non-epsilon input symbol used by some
// transition in the NFA.
func (nfa NFA[E]) InputSymbols() util.StringSet {
	symbols := util.NewStringSet()
	for _, st := range nfa.states {
		for a := range st.transitions {
			if a != Epsilon {
				symbols.Add(a)
			}
		}
	}
	return symbols
}

// MOVE returns the set of states reachable from some state in X via a single
// transition on input a. Dragon book page 153, algorithm 3.20.
func (nfa NFA[E]) MOVE(X util.ISet[string], a string) util.StringSet {
	moves := util.NewStringSet()
	for _, s := range X.Elements() {
		st, ok := nfa.states[s]
		if !ok {
			continue
		}
		for _, t := range st.transitions[a] {
			moves.Add(t.Next)
		}
	}
	return moves
}

// EpsilonClosure returns every state reachable from s via zero or more
// epsilon-transitions.
func (nfa NFA[E]) EpsilonClosure(s string) util.StringSet {
	start, ok := nfa.states[s]
	if !ok {
		return util.NewStringSet()
	}

	closure := util.NewStringSet()
	pending := &util.Stack[NFAState[E]]{}
	pending.Push(start)

	for !pending.Empty() {
		checking := pending.Pop()
		if closure.Has(checking.name) {
			continue
		}
		closure.Add(checking.name)

		for _, move := range checking.transitions[Epsilon] {
			next, ok := nfa.states[move.Next]
			if !ok {
				panic(fmt.Sprintf("points to invalid state: %q", move.Next))
			}
			pending.Push(next)
		}
	}

	return closure
}

func (nfa NFA[E]) EpsilonClosureOfSet(X util.ISet[string]) util.StringSet {
	all := util.NewStringSet()
	for _, s := range X.Elements() {
		all.AddAll(nfa.EpsilonClosure(s))
	}
	return all
}

// ToDFA performs the subset construction (Dragon book algorithm 3.20),
// producing a DFA whose states are each annotated with the set of NFA
// states (and their values) that subset represents. This is the engine
// behind lex's SubsetConstructor component.
func (nfa NFA[E]) ToDFA() DFA[util.SVSet[E]] {
	inputSymbols := nfa.InputSymbols()

	dstart := nfa.EpsilonClosure(nfa.Start)

	marked := util.NewStringSet()
	dstates := map[string]util.StringSet{dstart.StringOrdered(): dstart}

	dfa := DFA[util.SVSet[E]]{states: map[string]DFAState[util.SVSet[E]]{}}

	for {
		names := util.StringSetOf(util.OrderedKeys(dstates))
		unmarked := names.Difference(marked)
		if unmarked.Len() < 1 {
			break
		}

		for _, tName := range unmarked.Elements() {
			T := dstates[tName]
			marked.Add(tName)

			values := util.NewSVSet[E]()
			for nfaState := range T {
				values.Set(nfaState, nfa.GetValue(nfaState))
			}

			newState := DFAState[util.SVSet[E]]{name: tName, value: values, transitions: map[string]FATransition{}}
			if T.Any(func(v string) bool { return nfa.states[v].accepting }) {
				newState.accepting = true
			}

			for a := range inputSymbols {
				U := nfa.EpsilonClosureOfSet(nfa.MOVE(T, a))
				if U.Empty() {
					continue
				}
				uName := U.StringOrdered()
				if !names.Has(uName) {
					names.Add(uName)
					dstates[uName] = U
				}
				newState.transitions[a] = FATransition{Input: a, Next: uName}
			}

			dfa.states[tName] = newState
			if dfa.Start == "" {
				dfa.Start = tName
			}
		}
	}

	return dfa
}

// NumberStates renames every state to a small sequential integer string,
// with the start state guaranteed to be renamed "0".
func (nfa *NFA[E]) NumberStates() {
	if _, ok := nfa.states[nfa.Start]; !ok {
		panic("can't number states of NFA with no start state set")
	}
	names := util.OrderedKeys(nfa.states)

	startIdx := -1
	for i, n := range names {
		if n == nfa.Start {
			startIdx = i
			break
		}
	}
	names = append(names[:startIdx], names[startIdx+1:]...)
	names = append([]string{nfa.Start}, names...)

	mapping := map[string]string{}
	for i, n := range names {
		mapping[n] = fmt.Sprintf("%d", i)
	}

	renamed := NFA[E]{states: map[string]NFAState[E]{}, Start: mapping[nfa.Start]}
	for old, st := range nfa.states {
		newTransitions := map[string][]FATransition{}
		for a, ts := range st.transitions {
			for _, t := range ts {
				newTransitions[a] = append(newTransitions[a], FATransition{Input: a, Next: mapping[t.Next]})
			}
		}
		renamed.states[mapping[old]] = NFAState[E]{name: mapping[old], value: st.value, accepting: st.accepting, transitions: newTransitions}
	}

	*nfa = renamed
}

// Join merges other into nfa, namespacing other's state names with a "2:"
// prefix (nfa's own states get a "1:" prefix) so that the two machines'
// state names cannot collide, then wires the cross-references given in
// fromToOther/otherToFrom ([3]string{fromState, onInput, toState} triples,
// using un-prefixed names as they appeared in the original machines). If
// addAccept is non-empty, exactly those (now-prefixed-relative) states are
// marked accepting in the result and every other state's accepting flag is
// cleared first; removeAccept instead just clears acceptance on the named
// states without setting any new ones. This is the fragment-composition
// primitive Thompson construction builds concatenation, union, and closure
// out of.
func (nfa NFA[E]) Join(other NFA[E], fromToOther [][3]string, otherToFrom [][3]string, addAccept []string, removeAccept []string) NFA[E] {
	joined := NFA[E]{states: map[string]NFAState[E]{}}

	for name, st := range nfa.states {
		newName := "1:" + name
		joined.states[newName] = renameState(st, "1:", newName)
	}
	for name, st := range other.states {
		newName := "2:" + name
		joined.states[newName] = renameState(st, "2:", newName)
	}

	joined.Start = "1:" + nfa.Start

	for _, edge := range fromToOther {
		from, on, to := "1:"+edge[0], edge[1], "2:"+edge[2]
		addEdge(&joined, from, on, to)
	}
	for _, edge := range otherToFrom {
		from, on, to := "2:"+edge[0], edge[1], "1:"+edge[2]
		addEdge(&joined, from, on, to)
	}

	if len(addAccept) > 0 {
		for name, st := range joined.states {
			st.accepting = false
			joined.states[name] = st
		}
		for _, name := range addAccept {
			st := joined.states[name]
			st.accepting = true
			joined.states[name] = st
		}
	}
	for _, name := range removeAccept {
		st, ok := joined.states[name]
		if ok {
			st.accepting = false
			joined.states[name] = st
		}
	}

	return joined
}

func renameState[E any](st NFAState[E], prefix, newName string) NFAState[E] {
	newTransitions := map[string][]FATransition{}
	for a, ts := range st.transitions {
		for _, t := range ts {
			newTransitions[a] = append(newTransitions[a], FATransition{Input: a, Next: prefix + t.Next})
		}
	}
	st.name = newName
	st.transitions = newTransitions
	return st
}

func addEdge[E any](nfa *NFA[E], from, on, to string) {
	cur := nfa.states[from]
	cur.transitions[on] = append(cur.transitions[on], FATransition{Input: on, Next: to})
	nfa.states[from] = cur
}

func (nfa NFA[E]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", nfa.Start))
	keys := util.OrderedKeys(nfa.states)
	for i, k := range keys {
		sb.WriteString("\n\t")
		sb.WriteString(nfa.states[k].String())
		if i+1 < len(keys) {
			sb.WriteRune(',')
		}
	}
	sb.WriteString("\n>")
	return sb.String()
}
