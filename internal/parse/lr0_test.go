package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gobio/internal/grammar"
)

func Test_Lr0Builder_Build_startStateHasKernelItem(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.NewGrammarLoader().LoadString(arithGrammar)
	assert.NoError(err)
	gPrime := g.Augmented()

	coll := NewLr0Builder().Build(gPrime)

	assert.NotEmpty(coll.Start)
	startItems := coll.Items(coll.Start)
	assert.False(startItems.Empty())

	// the collection must hold at least one state.
	assert.NotEmpty(coll.States())
}

func Test_Lr0Builder_Build_gotoIsDeterministic(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.NewGrammarLoader().LoadString(arithGrammar)
	assert.NoError(err)
	gPrime := g.Augmented()

	coll1 := NewLr0Builder().Build(gPrime)
	coll2 := NewLr0Builder().Build(gPrime)

	assert.Equal(len(coll1.States()), len(coll2.States()))
	assert.Equal(coll1.Start, coll2.Start)
}
