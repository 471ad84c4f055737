package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/gobio/internal/grammar"
)

// Table is the shared interface ParseDriver drives regardless of which
// construction produced it (SLR(1) or LR(1)): an ACTION/GOTO table over
// the canonical collection a Builder computed.
type Table interface {
	Initial() string
	Action(state, term string) Action
	Goto(state, nonTerm string) (string, error)
	String() string
}

// Slr1Builder constructs an SLR(1) parse table: Dragon book algorithm
// 4.46, "Constructing an SLR-parsing table", built atop Lr0Builder's
// canonical collection and a FirstFollowTable rather than re-deriving item
// sets from a viable-prefix automaton.
type Slr1Builder struct {
	// AllowAmbiguity permits shift/reduce conflicts, resolving them in
	// favor of shift, collecting a warning for each; reduce/reduce
	// conflicts are never tolerated.
	AllowAmbiguity bool
}

// NewSlr1Builder returns an Slr1Builder with conflicts disallowed.
func NewSlr1Builder() Slr1Builder { return Slr1Builder{} }

// Build constructs the SLR(1) table for g, returning any ambiguity
// warnings produced (always empty unless AllowAmbiguity is set) and a plain
// error naming the conflict (via describeConflict) if g is not SLR(1).
// The error is not an icerrors.Error; gobio.NewSlr1Parser classifies it as
// icerrors.GrammarNotSlr1.
func (b Slr1Builder) Build(g grammar.Grammar) (*slr1Table, []string, error) {
	gPrime := g.Augmented()
	coll := NewLr0Builder().Build(gPrime)
	ff := grammar.BuildFirstFollow(gPrime)

	t := &slr1Table{
		gPrime:     gPrime,
		coll:       coll,
		ff:         ff,
		allowAmbig: b.AllowAmbiguity,
	}

	var warnings []string
	for _, state := range coll.States() {
		for _, term := range append(append([]string{}, gPrime.Terminals()...), grammar.EndOfInput) {
			_, warns, err := t.computeAction(state, term)
			warnings = append(warnings, warns...)
			if err != nil {
				return nil, warnings, fmt.Errorf("grammar is not SLR(1): %w", err)
			}
		}
	}

	return t, warnings, nil
}

type slr1Table struct {
	gPrime     grammar.Grammar
	coll       Lr0Collection
	ff         grammar.FirstFollowTable
	allowAmbig bool
}

func (t *slr1Table) Initial() string { return t.coll.Start }

func (t *slr1Table) Goto(state, symbol string) (string, error) {
	next, ok := t.coll.Goto(state, symbol)
	if !ok {
		return "", fmt.Errorf("GOTO[%q, %q] is an error entry", state, symbol)
	}
	return next, nil
}

// computeAction is Action's computation shared between table construction
// (which needs the conflict-check return values) and later lookups
// (Action), which panics on a conflict that construction should already
// have rejected.
func (t *slr1Table) computeAction(state, a string) (Action, []string, error) {
	items := t.coll.Items(state)

	var act Action
	var matchFound bool
	var warnings []string

	for _, key := range items.Elements() {
		item := items.Get(key)
		A := item.NonTerminal
		alpha := item.Left
		beta := item.Right

		if t.gPrime.IsTerminal(a) && len(beta) > 0 && beta[0] == a {
			j, err := t.Goto(state, a)
			if err == nil {
				shiftAct := Action{Type: Shift, State: j}
				if matchFound && !shiftAct.Equal(act) {
					if t.allowAmbig {
						warnings = append(warnings, describeConflict(act, shiftAct, a).Error())
						act = shiftAct
					} else {
						return Action{}, warnings, describeConflict(act, shiftAct, a)
					}
				} else {
					act = shiftAct
					matchFound = true
				}
			}
		}

		if len(beta) == 0 && A != t.gPrime.StartSymbol() && t.ff.Follow(A).Has(a) {
			reduceAct := Action{Type: Reduce, Symbol: A, Production: grammar.Production{NonTerminal: A, Symbols: alpha}}
			if matchFound && !reduceAct.Equal(act) {
				if isSR, _ := isShiftReduceConflict(act, reduceAct); isSR && t.allowAmbig {
					warnings = append(warnings, describeConflict(act, reduceAct, a).Error())
				} else {
					return Action{}, warnings, describeConflict(act, reduceAct, a)
				}
			} else {
				act = reduceAct
				matchFound = true
			}
		}

		if a == grammar.EndOfInput && A == t.gPrime.StartSymbol() && len(beta) == 0 {
			acceptAct := Action{Type: Accept}
			if matchFound && !acceptAct.Equal(act) {
				return Action{}, warnings, describeConflict(act, acceptAct, a)
			}
			act = acceptAct
			matchFound = true
		}
	}

	if !matchFound {
		act.Type = Error
	}
	return act, warnings, nil
}

func (t *slr1Table) Action(state, a string) Action {
	act, _, err := t.computeAction(state, a)
	if err != nil {
		panic(fmt.Sprintf("conflict at lookup time, should have been caught during construction: %v", err))
	}
	return act
}

// stateOrder returns every state name of coll, state 0 always the initial
// state, the rest in sorted order, plus the name->index lookup used to
// render GOTO/shift targets as the exported numeric state ids.
func stateOrder(coll interface{ States() []string }, start string) ([]string, map[string]string) {
	names := coll.States()
	sort.Strings(names)
	for i := range names {
		if names[i] == start {
			names[0], names[i] = names[i], names[0]
			break
		}
	}
	refs := map[string]string{}
	for i, s := range names {
		refs[s] = fmt.Sprintf("%d", i)
	}
	return names, refs
}

// exportUnits renders t's full ACTION/GOTO table as the SLRUnit sequence
// Table.String/LoadTable round-trip through.
func (t *slr1Table) exportUnits() []SLRUnit {
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
func (t *slr1Table) String() string {
	return SLRVectorToString(t.exportUnits())
}
