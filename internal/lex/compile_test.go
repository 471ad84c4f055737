package lex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gobio/internal/types"
)

func Test_Compile_and_Lex_maximalMunch(t *testing.T) {
	assert := assert.New(t)

	rules := []Rule{
		{Class: types.MakeDefaultClass("ws"), Pattern: "[ \t\n]+", Priority: 0, Discard: true},
		{Class: types.MakeDefaultClass("num"), Pattern: "digit+", Priority: 1},
		{Class: types.MakeDefaultClass("ident"), Pattern: "[A-Za-z][A-Za-z0-9]*", Priority: 2},
		{Class: types.MakeDefaultClass("plus"), Pattern: "\\+", Priority: 3},
	}
	vars := map[string]string{"digit": "[0-9]"}

	compiled, err := Compile(rules, vars)
	assert.NoError(err)
	assert.NotNil(compiled)

	stream, err := compiled.Lex(strings.NewReader("x1 + 22"))
	assert.NoError(err)

	var classes []string
	var lexemes []string
	for stream.HasNext() {
		tok := stream.Next()
		classes = append(classes, tok.Class().ID())
		lexemes = append(lexemes, tok.Lexeme())
	}

	assert.Equal([]string{"ident", "plus", "num"}, classes)
	assert.Equal([]string{"x1", "+", "22"}, lexemes)
}

func Test_Compile_equalLengthTieGoesToFirstDeclaredRule(t *testing.T) {
	assert := assert.New(t)

	// "if" should be classified as the keyword "if", not the shorter-or-
	// equal-length identifier rule, because the keyword rule is declared
	// first and both match the same full lexeme length.
	rules := []Rule{
		{Class: types.MakeDefaultClass("if"), Pattern: "if", Priority: 0},
		{Class: types.MakeDefaultClass("ident"), Pattern: "[A-Za-z]+", Priority: 1},
	}

	compiled, err := Compile(rules, nil)
	assert.NoError(err)

	stream, err := compiled.Lex(strings.NewReader("if"))
	assert.NoError(err)

	tok := stream.Next()
	assert.Equal("if", tok.Class().ID())
}

func Test_Compile_noMatchingRule_returnsError(t *testing.T) {
	assert := assert.New(t)

	rules := []Rule{
		{Class: types.MakeDefaultClass("num"), Pattern: "[0-9]+", Priority: 0},
	}

	compiled, err := Compile(rules, nil)
	assert.NoError(err)

	_, err = compiled.Lex(strings.NewReader("abc"))
	assert.Error(err)
}

func Test_Compile_noRules_returnsError(t *testing.T) {
	assert := assert.New(t)

	_, err := Compile(nil, nil)
	assert.Error(err)
}

func Test_Compile_discardedRuleNotEmitted(t *testing.T) {
	assert := assert.New(t)

	rules := []Rule{
		{Class: types.MakeDefaultClass("ws"), Pattern: " +", Priority: 0, Discard: true},
		{Class: types.MakeDefaultClass("a"), Pattern: "a", Priority: 1},
	}

	compiled, err := Compile(rules, nil)
	assert.NoError(err)

	stream, err := compiled.Lex(strings.NewReader("a   a"))
	assert.NoError(err)

	var count int
	for stream.HasNext() {
		tok := stream.Next()
		assert.Equal("a", tok.Class().ID())
		count++
	}
	assert.Equal(2, count)
}
