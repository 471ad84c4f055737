package parse

import (
	"fmt"

	"github.com/dekarrin/gobio/internal/grammar"
)

// ActionType identifies what an LR parse table cell tells ParseDriver to
// do: push a new state, pop and reduce by a rule, accept, or (for a cell
// with no shift, reduce or accept entry) report a syntax error. The zero
// value is Shift; Error is always set explicitly.
type ActionType int

const (
	Shift ActionType = iota
	Reduce
	Accept
	Error
)

// Action is a single cell of an SLR(1)/LR(1) ACTION table.
type Action struct {
	Type ActionType

	// Production is used when Type is Reduce: the β of A -> β being
	// reduced.
	Production grammar.Production

	// Symbol is used when Type is Reduce: the A of A -> β.
	Symbol string

	// State is used when Type is Shift: the state to shift to.
	State string
}

func (a Action) String() string {
	switch a.Type {
	case Accept:
		return "ACTION<accept>"
	case Error:
		return "ACTION<error>"
	case Reduce:
		return fmt.Sprintf("ACTION<reduce %s -> %s>", a.Symbol, a.Production.String())
	case Shift:
		return fmt.Sprintf("ACTION<shift %s>", a.State)
	default:
		return "ACTION<unknown>"
	}
}

func (a Action) Equal(o any) bool {
	other, ok := o.(Action)
	if !ok {
		otherPtr, ok := o.(*Action)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return a.Type == other.Type &&
		a.Production.NonTerminal == other.Production.NonTerminal &&
		fmt.Sprint(a.Production.Symbols) == fmt.Sprint(other.Production.Symbols) &&
		a.Symbol == other.Symbol &&
		a.State == other.State
}

func isShiftReduceConflict(a1, a2 Action) (isSR bool, shiftAction Action) {
	if a1.Type == Reduce && a2.Type == Shift {
		return true, a2
	}
	if a2.Type == Reduce && a1.Type == Shift {
		return true, a1
	}
	return false, a1
}

// describeConflict renders a human-readable explanation of a collision
// between two candidate actions for the same table cell, used by both the
// SLR(1) and LR(1) table builders when they report a grammar as not
// belonging to their class.
func describeConflict(a1, a2 Action, onInput string) error {
	switch {
	case (a1.Type == Reduce && a2.Type == Shift) || (a1.Type == Shift && a2.Type == Reduce):
		reduceAct := a1
		if a1.Type == Shift {
			reduceAct = a2
		}
		rule := reduceAct.Symbol + " -> " + reduceAct.Production.String()
		return fmt.Errorf("shift/reduce conflict on terminal %q (shift or reduce %s)", onInput, rule)
	case a1.Type == Reduce && a2.Type == Reduce:
		r1 := a1.Symbol + " -> " + a1.Production.String()
		r2 := a2.Symbol + " -> " + a2.Production.String()
		return fmt.Errorf("reduce/reduce conflict on terminal %q (reduce %s or reduce %s)", onInput, r1, r2)
	case a1.Type == Accept || a2.Type == Accept:
		other := a2
		if a2.Type == Accept {
			other = a1
		}
		switch other.Type {
		case Shift:
			return fmt.Errorf("accept/shift conflict on terminal %q", onInput)
		case Reduce:
			rule := other.Symbol + " -> " + other.Production.String()
			return fmt.Errorf("accept/reduce conflict on terminal %q (accept or reduce %s)", onInput, rule)
		}
	case a1.Type == Shift && a2.Type == Shift:
		return fmt.Errorf("(!) shift/shift conflict on terminal %q", onInput)
	}
	return fmt.Errorf("LR action conflict on terminal %q (%s or %s)", onInput, a1.String(), a2.String())
}
