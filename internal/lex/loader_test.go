package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SpecLoader_LoadString(t *testing.T) {
	assert := assert.New(t)

	src := `
		digit = [0-9]
		_num200 = digit+
		_id100 = letter(letter|digit)*
		letter = [A-Za-z]
	`

	rules, vars, err := NewSpecLoader().LoadString(src)
	assert.NoError(err)
	assert.Equal("[0-9]", vars["digit"])
	assert.Equal("[A-Za-z]", vars["letter"])

	assert.Len(rules, 2)
	assert.Equal("num", rules[0].Class.ID())
	assert.Equal(200, rules[0].Code)
	assert.Equal(0, rules[0].Priority)
	assert.Equal("id", rules[1].Class.ID())
	assert.Equal(100, rules[1].Code)
	assert.Equal(1, rules[1].Priority)
}

func Test_SpecLoader_multiKeywordRule_assignsSuccessiveCodes(t *testing.T) {
	assert := assert.New(t)

	src := `_keyword300S = read|write|if|then`

	rules, _, err := NewSpecLoader().LoadString(src)
	assert.NoError(err)
	assert.Len(rules, 4)

	assert.Equal("read", rules[0].Class.ID())
	assert.Equal(300, rules[0].Code)
	assert.Equal("write", rules[1].Class.ID())
	assert.Equal(301, rules[1].Code)
	assert.Equal("if", rules[2].Class.ID())
	assert.Equal(302, rules[2].Code)
	assert.Equal("then", rules[3].Class.ID())
	assert.Equal(303, rules[3].Code)
}

func Test_SpecLoader_missingEquals_isError(t *testing.T) {
	assert := assert.New(t)

	_, _, err := NewSpecLoader().LoadString("num [0-9]+")
	assert.Error(err)
}

func Test_SpecLoader_noRules_isError(t *testing.T) {
	assert := assert.New(t)

	_, _, err := NewSpecLoader().LoadString("digit = [0-9]")
	assert.Error(err)
}

func Test_SpecLoader_malformedTokenCode_isError(t *testing.T) {
	assert := assert.New(t)

	_, _, err := NewSpecLoader().LoadString("_id1x00 = [a-z]+")
	assert.Error(err)
}
