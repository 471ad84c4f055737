package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gobio/internal/grammar"
)

func Test_Action_Equal(t *testing.T) {
	assert := assert.New(t)

	a1 := Action{Type: Shift, State: "5"}
	a2 := Action{Type: Shift, State: "5"}
	a3 := Action{Type: Shift, State: "6"}

	assert.True(a1.Equal(a2))
	assert.False(a1.Equal(a3))

	r1 := Action{Type: Reduce, Symbol: "E", Production: grammar.Production{NonTerminal: "E", Symbols: []string{"T"}}}
	r2 := Action{Type: Reduce, Symbol: "E", Production: grammar.Production{NonTerminal: "E", Symbols: []string{"T"}}}
	assert.True(r1.Equal(r2))
	assert.False(a1.Equal(r1))
}

func Test_isShiftReduceConflict(t *testing.T) {
	assert := assert.New(t)

	shift := Action{Type: Shift, State: "5"}
	reduce := Action{Type: Reduce, Symbol: "E"}
	accept := Action{Type: Accept}

	isSR, winner := isShiftReduceConflict(shift, reduce)
	assert.True(isSR)
	assert.Equal(Shift, winner.Type)

	isSR, _ = isShiftReduceConflict(reduce, shift)
	assert.True(isSR)

	isSR, _ = isShiftReduceConflict(shift, accept)
	assert.False(isSR)
}

func Test_describeConflict_rendersBothActions(t *testing.T) {
	assert := assert.New(t)

	shift := Action{Type: Shift, State: "5"}
	reduce := Action{Type: Reduce, Symbol: "E", Production: grammar.Production{NonTerminal: "E", Symbols: []string{"T"}}}

	err := describeConflict(shift, reduce, "plus")
	assert.Error(err)
	assert.Contains(err.Error(), "plus")
}
