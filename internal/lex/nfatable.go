package lex

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gobio/internal/automaton"
	"github.com/dekarrin/gobio/internal/util"
)

// NfaTableRow is one display row of a flattened NFA transition table: the
// state's display index, whether it's accepting (and for which rule, if
// so), and its outgoing edges grouped by input symbol (the empty string
// representing an epsilon-transition).
type NfaTableRow struct {
	Index      int
	State      string
	Accepting  bool
	Tag        PatternTag
	Transitions map[string][]int
}

// NfaTable is a DFS-ordered, display-indexed view of an NFA's transition
// relation, the shape a lexical-spec author inspects to check that a rule
// compiled to the automaton they expected.
type NfaTable struct {
	Rows []NfaTableRow
}

// BuildNfaTable walks nfa depth-first from its start state, assigning each
// newly-discovered state the next display index in visitation order.
func BuildNfaTable(nfa automaton.NFA[PatternTag]) NfaTable {
	order := []string{}
	seen := util.NewStringSet()

	var visit func(s string)
	visit = func(s string) {
		if seen.Has(s) {
			return
		}
		seen.Add(s)
		order = append(order, s)
		for _, a := range util.OrderedKeys(outgoingBySymbol(nfa, s)) {
			for _, next := range outgoingBySymbol(nfa, s)[a] {
				visit(next)
			}
		}
	}
	visit(nfa.Start)

	indexOf := map[string]int{}
	for i, s := range order {
		indexOf[s] = i
	}

	var rows []NfaTableRow
	for i, s := range order {
		bySym := outgoingBySymbol(nfa, s)
		transitions := map[string][]int{}
		for sym, targets := range bySym {
			for _, t := range targets {
				transitions[sym] = append(transitions[sym], indexOf[t])
			}
		}
		rows = append(rows, NfaTableRow{
			Index:       i,
			State:       s,
			Accepting:   nfa.IsAccepting(s),
			Tag:         nfa.GetValue(s),
			Transitions: transitions,
		})
	}

	return NfaTable{Rows: rows}
}

func outgoingBySymbol(nfa automaton.NFA[PatternTag], state string) map[string][]string {
	out := map[string][]string{}
	for _, sym := range append(append([]string{}, nfa.InputSymbols().Elements()...), automaton.Epsilon) {
		for _, next := range nfaMoveFrom(nfa, state, sym) {
			out[sym] = append(out[sym], next)
		}
	}
	return out
}

func nfaMoveFrom(nfa automaton.NFA[PatternTag], state, symbol string) []string {
	single := util.NewStringSet()
	single.Add(state)
	return nfa.MOVE(single, symbol).Elements()
}

func (t NfaTable) String() string {
	var sb strings.Builder
	for _, r := range t.Rows {
		label := fmt.Sprintf("%d", r.Index)
		if r.Accepting {
			label += fmt.Sprintf(" (ACCEPT %s)", r.Tag.RuleName)
		}
		sb.WriteString(label)
		for _, sym := range util.OrderedKeys(r.Transitions) {
			display := sym
			if display == automaton.Epsilon {
				display = "ε"
			}
			for _, target := range r.Transitions[sym] {
				fmt.Fprintf(&sb, "\n\t%s -> %d", display, target)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
