package parse

import (
	"github.com/dekarrin/gobio/internal/grammar"
	"github.com/dekarrin/gobio/internal/util"
)

// Lr0Collection is the canonical collection of LR(0) item sets for a
// grammar, plus the GOTO transitions between them, represented directly as
// a map keyed by each state's canonical (sorted, joined) item-set string --
// the same naming scheme automaton.DFA uses for subset-construction
// states, so the two compose naturally when a table builder wants to
// render this collection as a DFA.
type Lr0Collection struct {
	Start string
	items map[string]util.SVSet[grammar.LR0Item]
	goTo  map[string]map[string]string
}

// Lr0Builder computes the canonical collection of sets of LR(0) items for
// an augmented grammar, Dragon book algorithm 4.49 ("Construction of the
// canonical LR(0) collection"), built directly atop Grammar.Closure0/Goto0
// rather than by deriving item sets from a separately-constructed NFA.
type Lr0Builder struct{}

// NewLr0Builder returns an Lr0Builder.
func NewLr0Builder() Lr0Builder { return Lr0Builder{} }

// Build computes the canonical LR(0) collection for gPrime, which must
// already be augmented (see Grammar.Augmented).
func (Lr0Builder) Build(gPrime grammar.Grammar) Lr0Collection {
	startKernel := util.NewSVSet[grammar.LR0Item]()
	rule, _ := gPrime.Rule(gPrime.StartSymbol())
	for _, p := range rule.Productions {
		item := grammar.LR0Item{NonTerminal: gPrime.StartSymbol(), Right: append([]string{}, p.Symbols...)}
		startKernel.Set(item.String(), item)
	}

	c0 := gPrime.Closure0(startKernel)
	startName := c0.StringOrdered()

	coll := Lr0Collection{
		Start: startName,
		items: map[string]util.SVSet[grammar.LR0Item]{startName: c0},
		goTo:  map[string]map[string]string{},
	}

	symbols := append(append([]string{}, gPrime.Terminals()...), gPrime.NonTerminals()...)

	worklist := []string{startName}
	for len(worklist) > 0 {
		name := worklist[0]
		worklist = worklist[1:]
		items := coll.items[name]

		for _, sym := range symbols {
			next := gPrime.Goto0(items, sym)
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
func (c Lr0Collection) States() []string {
	return util.OrderedKeys(c.items)
}

// Items returns the LR(0) item set named by state.
func (c Lr0Collection) Items(state string) util.SVSet[grammar.LR0Item] {
	return c.items[state]
}

// Goto returns GOTO(state, symbol) and whether it is defined.
func (c Lr0Collection) Goto(state, symbol string) (string, bool) {
	next, ok := c.goTo[state][symbol]
	return next, ok
}
