package parse

import (
	"github.com/dekarrin/gobio/internal/grammar"
	"github.com/dekarrin/gobio/internal/util"
)

// Lr1Collection is the canonical collection of LR(1) item sets for a
// grammar, with lookaheads propagated during closure, plus the GOTO
// transitions between them.
type Lr1Collection struct {
	Start string
	items map[string]util.SVSet[grammar.LR1Item]
	goTo  map[string]map[string]string
}

// Lr1Builder computes the canonical collection of sets of LR(1) items for
// an augmented grammar, Dragon book algorithm 4.56 ("Sets-of-LR(1)-items
// construction"), atop Grammar.Closure1/Goto1.
type Lr1Builder struct{}

// NewLr1Builder returns an Lr1Builder.
func NewLr1Builder() Lr1Builder { return Lr1Builder{} }

// Build computes the canonical LR(1) collection for gPrime (already
// augmented) using ff, the FIRST/FOLLOW table for gPrime.
func (Lr1Builder) Build(gPrime grammar.Grammar, ff grammar.FirstFollowTable) Lr1Collection {
	startKernel := util.NewSVSet[grammar.LR1Item]()
	rule, _ := gPrime.Rule(gPrime.StartSymbol())
	for _, p := range rule.Productions {
		item := grammar.LR1Item{
			LR0Item:   grammar.LR0Item{NonTerminal: gPrime.StartSymbol(), Right: append([]string{}, p.Symbols...)},
			Lookahead: grammar.EndOfInput,
		}
		startKernel.Set(item.String(), item)
	}

	c0 := gPrime.Closure1(startKernel, ff)
	startName := c0.StringOrdered()

	coll := Lr1Collection{
		Start: startName,
		items: map[string]util.SVSet[grammar.LR1Item]{startName: c0},
		goTo:  map[string]map[string]string{},
	}

	symbols := append(append([]string{}, gPrime.Terminals()...), gPrime.NonTerminals()...)

	worklist := []string{startName}
	for len(worklist) > 0 {
		name := worklist[0]
		worklist = worklist[1:]
		items := coll.items[name]

		for _, sym := range symbols {
			next := gPrime.Goto1(items, sym, ff)
			if next.Empty() {
				continue
			}
			nextName := next.StringOrdered()
			if _, ok := coll.items[nextName]; !ok {
				coll.items[nextName] = next
				worklist = append(worklist, nextName)
			}
			if coll.goTo[name] == nil {
				coll.goTo[name] = map[string]string{}
			}
			coll.goTo[name][sym] = nextName
		}
	}

	return coll
}

// States returns the canonical names of every state in the collection.
func (c Lr1Collection) States() []string {
	return util.OrderedKeys(c.items)
}

// Items returns the LR(1) item set named by state.
func (c Lr1Collection) Items(state string) util.SVSet[grammar.LR1Item] {
	return c.items[state]
}

// Goto returns GOTO(state, symbol) and whether it is defined.
func (c Lr1Collection) Goto(state, symbol string) (string, bool) {
	next, ok := c.goTo[state][symbol]
	return next, ok
}
