package gobio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gobio/internal/lex"
	"github.com/dekarrin/gobio/internal/types"
)

const testGrammar = `
	E | T
	plus | id
	E -> E plus T
	E -> T
	T -> id
`

func Test_Frontend_AnalyzeString(t *testing.T) {
	assert := assert.New(t)

	g, err := LoadGrammarString(testGrammar)
	assert.NoError(err)

	lx, err := NewLexer(LexSpec{
		Rules: []lex.Rule{
			{Class: types.MakeDefaultClass("ws"), Pattern: "[ \t\n]+", Priority: 0, Discard: true},
			{Class: types.MakeDefaultClass("plus"), Pattern: "\\+", Priority: 1},
			{Class: types.MakeDefaultClass("id"), Pattern: "[a-z]+", Priority: 2},
		},
	})
	assert.NoError(err)

	p, _, err := NewSlr1Parser(g)
	assert.NoError(err)

	fe := NewFrontend(lx, p, g)
	assert.NotEmpty(fe.BuildID)

	tree, err := fe.AnalyzeString("x + y")
	assert.NoError(err)
	assert.Equal("E", tree.Value)
}

func Test_Frontend_distinctBuildIDs(t *testing.T) {
	assert := assert.New(t)

	g, err := LoadGrammarString(testGrammar)
	assert.NoError(err)
	lx, err := NewLexer(LexSpec{Rules: []lex.Rule{
		{Class: types.MakeDefaultClass("id"), Pattern: "[a-z]+"},
	}})
	assert.NoError(err)
	p, _, err := NewSlr1Parser(g)
	assert.NoError(err)

	fe1 := NewFrontend(lx, p, g)
	fe2 := NewFrontend(lx, p, g)
	assert.NotEqual(fe1.BuildID, fe2.BuildID)
}

func Test_NewLr1Parser_errorsOnConflictingGrammar(t *testing.T) {
	assert := assert.New(t)

	src := `
		S | E
		if | then | else | other
		S -> if E then S else S
		S -> if E then S
		S -> other
		E -> other
	`
	g, err := LoadGrammarString(src)
	assert.NoError(err)

	_, err = NewLr1Parser(g)
	assert.Error(err)
}
