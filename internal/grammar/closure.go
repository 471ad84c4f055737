package grammar

import "github.com/dekarrin/gobio/internal/util"

// Closure0 computes the LR(0) closure of a kernel item set: repeatedly, for
// every item A -> α.Bβ in the set where B is a nonterminal, every production
// B -> γ contributes the item B -> .γ, until no further items are added.
// Dragon book algorithm 4.49 (CLOSURE(I) for LR(0)).
func (g Grammar) Closure0(kernel util.SVSet[LR0Item]) util.SVSet[LR0Item] {
	closure := util.NewSVSet[LR0Item]()
	for _, k := range kernel.Elements() {
		closure.Set(k, kernel.Get(k))
	}

	for {
		added := false
		for _, key := range closure.Elements() {
			item := closure.Get(key)
			next, ok := item.NextSymbol()
			if !ok || !g.IsNonTerminal(next) {
				continue
			}
			rule, _ := g.Rule(next)
			for _, p := range rule.Productions {
				newItem := LR0Item{NonTerminal: next, Left: nil, Right: append([]string{}, p.Symbols...)}
				k := newItem.String()
				if !closure.Has(k) {
					closure.Set(k, newItem)
					added = true
				}
			}
		}
		if !added {
			break
		}
	}

	return closure
}

// Closure1 computes the LR(1) closure of a kernel item set: for every item
// [A -> α.Bβ, a], every production B -> γ contributes [B -> .γ, b] for each
// terminal b in FIRST(βa). Dragon book algorithm 4.56 (CLOSURE(I) for
// LR(1)).
func (g Grammar) Closure1(kernel util.SVSet[LR1Item], ff FirstFollowTable) util.SVSet[LR1Item] {
	closure := util.NewSVSet[LR1Item]()
	for _, k := range kernel.Elements() {
		closure.Set(k, kernel.Get(k))
	}

	for {
		added := false
		for _, key := range closure.Elements() {
			item := closure.Get(key)
			next, ok := item.NextSymbol()
			if !ok || !g.IsNonTerminal(next) {
				continue
			}

			beta := item.Right[1:]
			lookaheadSeq := append(append([]string{}, beta...), item.Lookahead)
			lookaheads := ff.FirstOfSequence(lookaheadSeq)

			rule, _ := g.Rule(next)
			for _, p := range rule.Productions {
				for _, b := range lookaheads.Terminals.Elements() {
					newItem := LR1Item{
						LR0Item:   LR0Item{NonTerminal: next, Left: nil, Right: append([]string{}, p.Symbols...)},
						Lookahead: b,
					}
					k := newItem.String()
					if !closure.Has(k) {
						closure.Set(k, newItem)
						added = true
					}
				}
			}
		}
		if !added {
			break
		}
	}

	return closure
}

// Goto0 computes GOTO(I, X) for an LR(0) item set I: advance the dot over X
// in every item of I where X is the next symbol, then close the result.
func (g Grammar) Goto0(items util.SVSet[LR0Item], symbol string) util.SVSet[LR0Item] {
	kernel := util.NewSVSet[LR0Item]()
	for _, key := range items.Elements() {
		item := items.Get(key)
		next, ok := item.NextSymbol()
		if !ok || next != symbol {
			continue
		}
		adv := item.Advance()
		kernel.Set(adv.String(), adv)
	}
	if kernel.Empty() {
		return kernel
	}
	return g.Closure0(kernel)
}

// Goto1 computes GOTO(I, X) for an LR(1) item set I.
func (g Grammar) Goto1(items util.SVSet[LR1Item], symbol string, ff FirstFollowTable) util.SVSet[LR1Item] {
	kernel := util.NewSVSet[LR1Item]()
	for _, key := range items.Elements() {
		item := items.Get(key)
		next, ok := item.NextSymbol()
		if !ok || next != symbol {
			continue
		}
		adv := LR1Item{LR0Item: item.Advance(), Lookahead: item.Lookahead}
		kernel.Set(adv.String(), adv)
	}
	if kernel.Empty() {
		return kernel
	}
	return g.Closure1(kernel, ff)
}
