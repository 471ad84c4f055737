package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gobio/internal/grammar"
	"github.com/dekarrin/gobio/internal/icerrors"
	"github.com/dekarrin/gobio/internal/types"
	"github.com/dekarrin/gobio/internal/util"
)

// ParseDriver runs the table-driven shift-reduce algorithm (Dragon book
// algorithm 4.44, "LR-parsing algorithm") over a Table built by
// Slr1Builder or Lr1TableBuilder, building a types.ParseTree bottom-up as
// it goes.
type ParseDriver struct {
	table Table
	gram  grammar.Grammar
	trace func(s string)
}

// NewParseDriver returns a ParseDriver over table for grammar g (used to
// generate "expected token" diagnostics on a parse error).
func NewParseDriver(table Table, g grammar.Grammar) *ParseDriver {
	return &ParseDriver{table: table, gram: g}
}

// RegisterTraceListener installs fn to be called with a description of
// every driver step (state stack peeks/pushes/pops, actions taken, tokens
// consumed), useful for teaching/debugging a specific parse.
func (d *ParseDriver) RegisterTraceListener(fn func(s string)) {
	d.trace = fn
}

func (d *ParseDriver) notifyTraceFn(fn func() string) {
	if d.trace != nil {
		d.trace(fn())
	}
}

func (d *ParseDriver) notifyTrace(format string, args ...any) {
	d.notifyTraceFn(func() string { return fmt.Sprintf(format, args...) })
}

func (d *ParseDriver) notifyTokenStack(st util.Stack[types.Token]) {
	d.notifyTraceFn(func() string {
		var lex, cls strings.Builder
		for i, tok := range st.Of {
			if i > 0 {
				lex.WriteString(", ")
				cls.WriteString(", ")
			}
			fmt.Fprintf(&lex, "%q", tok.Lexeme())
			cls.WriteString(strings.ToUpper(tok.Class().ID()))
		}
		if st.Empty() {
			lex.WriteString("(empty)")
			cls.WriteString("(empty)")
		}
		return fmt.Sprintf("Token stack (lexed): %s\nToken stack (class): %s", lex.String(), cls.String())
	})
}

// Parse drives stream through the parse table, producing the parse tree
// rooted at the grammar's (unaugmented) start symbol.
func (d *ParseDriver) Parse(stream types.TokenStream) (types.ParseTree, error) {
	stateStack := util.Stack[string]{Of: []string{d.table.Initial()}}
	tokenBuffer := util.Stack[types.Token]{}
	subTreeRoots := util.Stack[*types.ParseTree]{}

	a := stream.Next()
	d.notifyTrace("Got next token: %s", a.String())

	for {
		d.notifyTokenStack(tokenBuffer)

		s := stateStack.Peek()
		d.notifyTrace("states.peek(): %s", s)

		act := d.table.Action(s, a.Class().ID())
		d.notifyTrace("Action: %s", act.String())

		switch act.Type {
		case Shift:
			tokenBuffer.Push(a)
			t := act.State
			stateStack.Push(t)
			d.notifyTrace("states.push(): %s", t)

			if stream.HasNext() {
				a = stream.Next()
			} else {
				// a stream without its own trailing "$" token (such as the
				// one CompiledLexer.Lex returns) ends in an implicit one.
				a = types.NewToken(types.TokenEndOfText, "", a.Line(), a.LinePos(), a.FullLine())
			}
			d.notifyTrace("Got next token: %s", a.String())

		case Reduce:
			A := act.Symbol
			beta := act.Production.Symbols

			kind := types.KindNonLeftRecursive
			if len(beta) > 0 && beta[0] == A {
				kind = types.KindLeftRecursive
			}

			node := &types.ParseTree{Value: A, Kind: kind}
			for i := len(beta) - 1; i >= 0; i-- {
				sym := beta[i]
				var child *types.ParseTree
				if d.gram.IsTerminal(sym) {
					tok := tokenBuffer.Pop()
					child = &types.ParseTree{Terminal: true, Value: tok.Class().ID(), Source: tok}
				} else {
					child = subTreeRoots.Pop()
				}
				node.Children = append([]*types.ParseTree{child}, node.Children...)
			}
			subTreeRoots.Push(node)

			for range beta {
				stateStack.Pop()
				d.notifyTrace("states.pop()")
			}

			t := stateStack.Peek()
			d.notifyTrace("states.peek(): %s", t)

			toPush, err := d.table.Goto(t, A)
			if err != nil {
				return types.ParseTree{}, icerrors.NewAt(icerrors.ParseFailure,
					icerrors.Position{Line: a.Line(), Col: a.LinePos(), FullLine: a.FullLine()},
					"no valid transition on %q after reducing", A)
			}
			stateStack.Push(toPush)
			d.notifyTrace("states.push(): %s", toPush)

		case Accept:
			// A start symbol with a single production is not augmented, so
			// its production is still on the stacks and is reduced here.
			if rule, ok := d.gram.Rule(d.gram.StartSymbol()); ok && len(rule.Productions) == 1 {
				beta := rule.Productions[0].Symbols
				node := &types.ParseTree{Value: rule.NonTerminal, Kind: types.KindNonLeftRecursive}
				for i := len(beta) - 1; i >= 0; i-- {
					child := &types.ParseTree{Terminal: true}
					if d.gram.IsTerminal(beta[i]) {
						tok := tokenBuffer.Pop()
						child.Value, child.Source = tok.Class().ID(), tok
					} else {
						child = subTreeRoots.Pop()
					}
					node.Children = append([]*types.ParseTree{child}, node.Children...)
				}
				return *node, nil
			}
			pt := subTreeRoots.Pop()
			return *pt, nil

		case Error:
			expected := d.expectedString(s)
			return types.ParseTree{}, icerrors.NewAt(icerrors.ParseFailure,
				icerrors.Position{Line: a.Line(), Col: a.LinePos(), FullLine: a.FullLine()},
				"unexpected %s; %s", a.Class().Human(), expected)
		}
	}
}

func (d *ParseDriver) expectedString(state string) string {
	expected := d.expectedTokens(state)

	var sb strings.Builder
	sb.WriteString("expected ")

	finalOr := len(expected) > 1
	commas := len(expected) > 2

	for i, t := range expected {
		if i == 0 {
			sb.WriteString(util.ArticleFor(t.Human(), false))
			sb.WriteRune(' ')
		}
		if finalOr && i+1 == len(expected) {
			sb.WriteString(" or ")
		}
		sb.WriteString(t.Human())
		if commas && i+1 < len(expected) {
			sb.WriteString(", ")
		}
	}

	return sb.String()
}

func (d *ParseDriver) expectedTokens(state string) []types.TokenClass {
	var classes []types.TokenClass
	for _, id := range d.gram.Terminals() {
		class, _ := d.gram.Term(id)
		if d.table.Action(state, id).Type != Error {
			classes = append(classes, class)
		}
	}
	return classes
}
