package parse

import (
	"fmt"

	"github.com/dekarrin/gobio/internal/grammar"
)

// Lr1TableBuilder constructs a canonical LR(1) parse table: Dragon book
// algorithm 4.56, "Construction of canonical-LR parsing tables", built
// atop parse.Lr1Builder's canonical collection directly rather than a
// viable-prefix DFA.
type Lr1TableBuilder struct{}

// NewLr1TableBuilder returns an Lr1TableBuilder.
func NewLr1TableBuilder() Lr1TableBuilder { return Lr1TableBuilder{} }

// Build constructs the canonical LR(1) table for g, returning a plain error
// naming the conflict (via describeConflict) if g is not LR(1). The error
// is not an icerrors.Error; gobio.NewLr1Parser classifies it as
// icerrors.GrammarNotLr1.
func (Lr1TableBuilder) Build(g grammar.Grammar) (*lr1Table, error) {
	gPrime := g.Augmented()
	ff := grammar.BuildFirstFollow(gPrime)
	coll := NewLr1Builder().Build(gPrime, ff)

	t := &lr1Table{
		gPrime: gPrime,
		coll:   coll,
	}

	for _, state := range coll.States() {
		for _, term := range append(append([]string{}, gPrime.Terminals()...), grammar.EndOfInput) {
			if _, err := t.computeAction(state, term); err != nil {
				return nil, fmt.Errorf("grammar is not LR(1): %w", err)
			}
		}
	}

	return t, nil
}

type lr1Table struct {
	gPrime grammar.Grammar
	coll   Lr1Collection
}

func (t *lr1Table) Initial() string { return t.coll.Start }

func (t *lr1Table) Goto(state, symbol string) (string, error) {
	next, ok := t.coll.Goto(state, symbol)
	if !ok {
		return "", fmt.Errorf("GOTO[%q, %q] is an error entry", state, symbol)
	}
	return next, nil
}

func (t *lr1Table) computeAction(state, a string) (Action, error) {
	items := t.coll.Items(state)

	var act Action
	var matchFound bool

	for _, key := range items.Elements() {
		item := items.Get(key)
		A := item.NonTerminal
		alpha := item.Left
		beta := item.Right
		b := item.Lookahead

		if t.gPrime.IsTerminal(a) && len(beta) > 0 && beta[0] == a {
			j, err := t.Goto(state, a)
			if err == nil {
				newAct := Action{Type: Shift, State: j}
				if matchFound && !newAct.Equal(act) {
					return Action{}, describeConflict(act, newAct, a)
				}
				act = newAct
				matchFound = true
			}
		}

		if len(beta) == 0 && A != t.gPrime.StartSymbol() && a == b {
			newAct := Action{Type: Reduce, Symbol: A, Production: grammar.Production{NonTerminal: A, Symbols: alpha}}
			if matchFound && !newAct.Equal(act) {
				return Action{}, describeConflict(act, newAct, a)
			}
			act = newAct
			matchFound = true
		}

		if a == grammar.EndOfInput && b == grammar.EndOfInput && A == t.gPrime.StartSymbol() && len(beta) == 0 {
			newAct := Action{Type: Accept}
			if matchFound && !newAct.Equal(act) {
				return Action{}, describeConflict(act, newAct, a)
			}
			act = newAct
			matchFound = true
		}
	}

	if !matchFound {
		act.Type = Error
	}
	return act, nil
}

func (t *lr1Table) Action(state, a string) Action {
	act, err := t.computeAction(state, a)
	if err != nil {
		panic(fmt.Sprintf("conflict at lookup time, should have been caught during construction: %v", err))
	}
	return act
}

// exportUnits renders t's full ACTION/GOTO table as the SLRUnit sequence
// Table.String/LoadTable round-trip through (the same per-state map
// format the SLR(1) builder exports, reused here for the canonical LR(1)
// table).
func (t *lr1Table) exportUnits() []SLRUnit {
	stateNames, stateRefs := stateOrder(t.coll, t.coll.Start)

	allTerms := append(append([]string{}, t.gPrime.Terminals()...), grammar.EndOfInput)
	nonTerms := t.gPrime.NonTerminals()

	units := make([]SLRUnit, len(stateNames))
	for i, s := range stateNames {
		unit := SLRUnit{M: map[string]string{}}
		for _, term := range allTerms {
			act := t.Action(s, term)
			switch act.Type {
			case Accept:
				unit.M[term] = "ACCEPT"
			case Reduce:
				unit.M[term] = encodeReduce(act.Symbol, act.Production.Symbols)
			case Shift:
				unit.M[term] = "s" + stateRefs[act.State]
			}
		}
		for _, nt := range nonTerms {
			if gotoState, err := t.Goto(s, nt); err == nil {
				unit.M[nt] = stateRefs[gotoState]
			}
		}
		units[i] = unit
	}
	return units
}

// String renders t in the module's SLRUnit text format (see SLRUnit),
// LoadTable's own round-trip format.
func (t *lr1Table) String() string {
	return SLRVectorToString(t.exportUnits())
}
