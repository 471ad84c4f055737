package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gobio/internal/grammar"
	"github.com/dekarrin/gobio/internal/types"
)

const arithGrammar = `
	E | T | F
	plus | star | lparen | rparen | id
	E -> E plus T
	E -> T
	T -> T star F
	T -> F
	F -> lparen E rparen
	F -> id
`

func tok(class string) types.Token {
	return types.NewToken(types.MakeDefaultClass(class), class, 1, 1, "")
}

func tokenStreamOf(classes ...string) types.TokenStream {
	var toks []types.Token
	for _, c := range classes {
		toks = append(toks, tok(c))
	}
	toks = append(toks, types.NewToken(types.TokenEndOfText, "", 1, 1, ""))
	return types.NewSliceStream(toks)
}

func Test_Slr1Builder_Build_dragonBook445(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.NewGrammarLoader().LoadString(arithGrammar)
	assert.NoError(err)

	table, warnings, err := NewSlr1Builder().Build(g)
	assert.NoError(err)
	assert.Empty(warnings)
	assert.NotEmpty(table.String())
}

func Test_Slr1_ParseDriver_buildsExpectedTree(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.NewGrammarLoader().LoadString(arithGrammar)
	assert.NoError(err)

	table, _, err := NewSlr1Builder().Build(g)
	assert.NoError(err)

	driver := NewParseDriver(table, g)

	stream := tokenStreamOf("id", "star", "id", "plus", "id")
	tree, err := driver.Parse(stream)
	assert.NoError(err)

	assert.Equal("E", tree.Value)
	assert.Len(tree.Children, 3)
	assert.Equal("T", tree.Children[2].Value)
}

func Test_Slr1_ParseDriver_reportsSyntaxError(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.NewGrammarLoader().LoadString(arithGrammar)
	assert.NoError(err)

	table, _, err := NewSlr1Builder().Build(g)
	assert.NoError(err)

	driver := NewParseDriver(table, g)

	// "id id" has no valid continuation after the first id.
	stream := tokenStreamOf("id", "id")
	_, err = driver.Parse(stream)
	assert.Error(err)
}

func Test_Slr1Builder_shiftReduceConflict_rejectedByDefault(t *testing.T) {
	assert := assert.New(t)

	// the classic dangling-else-style ambiguity: "S -> if E then S | if E
	// then S else S | other" is SLR(1) ambiguous (shift/reduce on "else").
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

	_, _, err = NewSlr1Builder().Build(g)
	assert.Error(err)
}

func Test_Slr1Builder_shiftReduceConflict_toleratedWithAllowAmbiguity(t *testing.T) {
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

	builder := Slr1Builder{AllowAmbiguity: true}
	table, warnings, err := builder.Build(g)
	assert.NoError(err)
	assert.NotEmpty(warnings)
	assert.NotNil(table)
}
