package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gobio/internal/grammar"
)

// purpleGrammar445 is the Dragon book's canonical non-SLR(1) example
// (grammar 4.49): S -> L = R | R ; L -> * R | id ; R -> L, which SLR(1)
// rejects (the state holding S -> L . eq R and R -> L . has a shift/reduce
// conflict on eq, since eq is in FOLLOW(R)) but canonical LR(1) accepts
// because lookaheads are tracked per item rather than per-nonterminal.
const purpleGrammar445 = `
	S | L | R
	eq | star | id
	S -> L eq R
	S -> R
	L -> star R
	L -> id
	R -> L
`

func Test_Lr1TableBuilder_Build_nonSlr1Grammar(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.NewGrammarLoader().LoadString(purpleGrammar445)
	assert.NoError(err)

	// confirm this grammar really isn't SLR(1), to ground the comparison.
	_, _, err = NewSlr1Builder().Build(g)
	assert.Error(err)

	table, err := NewLr1TableBuilder().Build(g)
	assert.NoError(err)
	assert.NotEmpty(table.String())
}

func Test_Lr1_ParseDriver_parsesNonSlr1Grammar(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.NewGrammarLoader().LoadString(purpleGrammar445)
	assert.NoError(err)

	table, err := NewLr1TableBuilder().Build(g)
	assert.NoError(err)

	driver := NewParseDriver(table, g)

	stream := tokenStreamOf("id", "eq", "star", "id")
	tree, err := driver.Parse(stream)
	assert.NoError(err)
	assert.Equal("S", tree.Value)
	assert.Len(tree.Children, 3)
}

func Test_Lr1TableBuilder_conflict_returnsError(t *testing.T) {
	assert := assert.New(t)

	src := `
		S | E
		if | then | else | other
		S -> if E then S else S
		S -> if E then S
		S -> other
		E -> other
	`
	g, err := grammar.NewGrammarLoader().LoadString(src)
	assert.NoError(err)

	_, err = NewLr1TableBuilder().Build(g)
	assert.Error(err)
}
