package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gobio/internal/grammar"
)

func Test_Lr1Builder_Build_moreStatesThanLr0ForNonSlr1Grammar(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.NewGrammarLoader().LoadString(purpleGrammar445)
	assert.NoError(err)
	gPrime := g.Augmented()
	ff := grammar.BuildFirstFollow(gPrime)

	lr0 := NewLr0Builder().Build(gPrime)
	lr1 := NewLr1Builder().Build(gPrime, ff)

	// LR(1) splits states by lookahead, so the canonical collection for a
	// non-SLR(1) grammar like this one should never be smaller than the
	// LR(0) collection over the same grammar.
	assert.GreaterOrEqual(len(lr1.States()), len(lr0.States()))
}

func Test_Lr1Builder_startKernelHasEndOfInputLookahead(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.NewGrammarLoader().LoadString(arithGrammar)
	assert.NoError(err)
	gPrime := g.Augmented()
	ff := grammar.BuildFirstFollow(gPrime)

	coll := NewLr1Builder().Build(gPrime, ff)

	found := false
	items := coll.Items(coll.Start)
	for _, key := range items.Elements() {
		item := items.Get(key)
		if item.NonTerminal == gPrime.StartSymbol() && item.Lookahead == grammar.EndOfInput {
			found = true
		}
	}
	assert.True(found)
}
