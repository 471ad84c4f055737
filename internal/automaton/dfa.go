package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gobio/internal/util"
)

// DFAState is one state of a DFA[E].
type DFAState[E any] struct {
	name        string
	value       E
	accepting   bool
	transitions map[string]FATransition
}

func (s DFAState[E]) Copy() DFAState[E] {
	cp := DFAState[E]{name: s.name, value: s.value, accepting: s.accepting, transitions: map[string]FATransition{}}
	for k, v := range s.transitions {
		cp.transitions[k] = v
	}
	return cp
}

func (s DFAState[E]) String() string {
	return fmt.Sprintf("(%s){accepting: %v, value: %v}", s.name, s.accepting, s.value)
}

// DFA is a deterministic finite automaton: at most one transition per
// (state, symbol) pair. Used both for the minimized lexer DFA and as the
// underlying representation of an LR viable-prefix canonical collection.
type DFA[E any] struct {
	states map[string]DFAState[E]
	Start  string
}

// NewDFA returns an empty DFA ready for AddState calls.
func NewDFA[E any]() *DFA[E] {
	return &DFA[E]{states: map[string]DFAState[E]{}}
}

func (dfa DFA[E]) Copy() DFA[E] {
	cp := DFA[E]{Start: dfa.Start, states: map[string]DFAState[E]{}}
	for k, v := range dfa.states {
		cp.states[k] = v.Copy()
	}
	return cp
}

// TransformDFA builds a new DFA with the same shape but each state's value
// replaced by transform(oldValue). Used to collapse a DFA[SVSet[E]] (subset
// construction's native output) into a DFA[string] or other simplified
// per-state annotation.
func TransformDFA[E1, E2 any](dfa DFA[E1], transform func(old E1) E2) DFA[E2] {
	cp := DFA[E2]{Start: dfa.Start, states: map[string]DFAState[E2]{}}
	for k, old := range dfa.states {
		ns := DFAState[E2]{name: old.name, value: transform(old.value), accepting: old.accepting, transitions: map[string]FATransition{}}
		for sym, t := range old.transitions {
			ns.transitions[sym] = t
		}
		cp.states[k] = ns
	}
	return cp
}

// DFAToNFA widens a DFA into an NFA with the same states/transitions/values,
// allowing further nondeterministic edges to be layered on afterward.
func DFAToNFA[E any](dfa DFA[E]) NFA[E] {
	nfa := NFA[E]{Start: dfa.Start, states: map[string]NFAState[E]{}}
	for k, d := range dfa.states {
		n := NFAState[E]{name: d.name, value: d.value, accepting: d.accepting, transitions: map[string][]FATransition{}}
		for sym, t := range d.transitions {
			n.transitions[sym] = []FATransition{t}
		}
		nfa.states[k] = n
	}
	return nfa
}

func (dfa *DFA[E]) SetValue(state string, v E) {
	s, ok := dfa.states[state]
	if !ok {
		panic(fmt.Sprintf("setting value on non-existing state: %q", state))
	}
	s.value = v
	dfa.states[state] = s
}

func (dfa DFA[E]) GetValue(state string) E {
	return dfa.states[state].value
}

func (dfa DFA[E]) IsAccepting(state string) bool {
	return dfa.states[state].accepting
}

func (dfa DFA[E]) States() util.StringSet {
	s := util.NewStringSet()
	for k := range dfa.states {
		s.Add(k)
	}
	return s
}

// Next returns the state reached from fromState on input, or "" if there is
// no such transition.
func (dfa DFA[E]) Next(fromState, input string) string {
	st, ok := dfa.states[fromState]
	if !ok {
		return ""
	}
	return st.transitions[input].Next
}

func (dfa *DFA[E]) AddState(state string, accepting bool) {
	if _, ok := dfa.states[state]; ok {
		return
	}
	if dfa.states == nil {
		dfa.states = map[string]DFAState[E]{}
	}
	dfa.states[state] = DFAState[E]{name: state, accepting: accepting, transitions: map[string]FATransition{}}
}

func (dfa *DFA[E]) AddTransition(fromState, input, toState string) {
	if _, ok := dfa.states[fromState]; !ok {
		panic(fmt.Sprintf("add transition from non-existent state %q", fromState))
	}
	if _, ok := dfa.states[toState]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %q", toState))
	}
	st := dfa.states[fromState]
	st.transitions[input] = FATransition{Input: input, Next: toState}
	dfa.states[fromState] = st
}

func (dfa *DFA[E]) RemoveState(state string) {
	delete(dfa.states, state)
}

// NumberStates renames every state to a sequential integer string, start
// state guaranteed "0".
func (dfa *DFA[E]) NumberStates() {
	if _, ok := dfa.states[dfa.Start]; !ok {
		panic("can't number states of DFA with no start state set")
	}
	names := util.OrderedKeys(dfa.states)
	startIdx := -1
	for i, n := range names {
		if n == dfa.Start {
			startIdx = i
			break
		}
	}
	names = append(names[:startIdx], names[startIdx+1:]...)
	names = append([]string{dfa.Start}, names...)

	mapping := map[string]string{}
	for i, n := range names {
		mapping[n] = fmt.Sprintf("%d", i)
	}

	newDfa := &DFA[E]{states: map[string]DFAState[E]{}, Start: mapping[dfa.Start]}
	for _, name := range names {
		st := dfa.states[name]
		newName := mapping[name]
		newDfa.AddState(newName, st.accepting)
		newDfa.SetValue(newName, st.value)
	}
	for _, name := range names {
		st := dfa.states[name]
		from := mapping[name]
		for sym, t := range st.transitions {
			newDfa.AddTransition(from, sym, mapping[t.Next])
		}
	}

	dfa.states = newDfa.states
	dfa.Start = newDfa.Start
}

// Validate reports an error if any state is unreachable, any transition
// targets a nonexistent state, or the start state does not exist.
func (dfa DFA[E]) Validate() error {
	var errs []string

	for sName := range dfa.states {
		if sName == dfa.Start {
			continue
		}
		reachable := false
		for otherName, st := range dfa.states {
			if otherName == sName {
				continue
			}
			for _, t := range st.transitions {
				if t.Next == sName {
					reachable = true
					break
				}
			}
			if reachable {
				break
			}
		}
		if !reachable {
			errs = append(errs, fmt.Sprintf("no transitions to non-start state %q", sName))
		}
	}

	for sName, st := range dfa.states {
		for symbol, t := range st.transitions {
			if _, ok := dfa.states[t.Next]; !ok {
				errs = append(errs, fmt.Sprintf("state %q transitions to non-existing state %q on %q", sName, t.Next, symbol))
			}
		}
	}

	if _, ok := dfa.states[dfa.Start]; !ok {
		errs = append(errs, fmt.Sprintf("start state does not exist: %q", dfa.Start))
	}

	if len(errs) > 0 {
		return fmt.Errorf(strings.Join(errs, "\n"))
	}
	return nil
}

func (dfa DFA[E]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", dfa.Start))
	keys := util.OrderedKeys(dfa.states)
	for i, k := range keys {
		sb.WriteString("\n\t")
		sb.WriteString(dfa.states[k].String())
		if i+1 < len(keys) {
			sb.WriteRune(',')
		}
	}
	sb.WriteString("\n>")
	return sb.String()
}
