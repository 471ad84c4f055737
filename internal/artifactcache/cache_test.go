package artifactcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SaveLoad_roundTrip(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	entry := Entry{
		SpecHash: HashSpec("num = [0-9]+"),
		Kind:     "lex-dfa",
		BuildID:  "abc-123",
		Text:     "state 0: accepting\n",
	}

	assert.NoError(Save(dir, entry))

	loaded, ok, err := Load(dir, entry.Kind, entry.SpecHash)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(entry, loaded)
}

func Test_Load_missingEntry_returnsFalse(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	_, ok, err := Load(dir, "lex-dfa", "does-not-exist")
	assert.NoError(err)
	assert.False(ok)
}

func Test_HashSpec_deterministicAndDistinct(t *testing.T) {
	assert := assert.New(t)

	h1 := HashSpec("a")
	h2 := HashSpec("a")
	h3 := HashSpec("b")

	assert.Equal(h1, h2)
	assert.NotEqual(h1, h3)
}

func Test_Clear_removesCachedEntries(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	entry := Entry{SpecHash: "abc", Kind: "lex-dfa", Text: "x"}
	assert.NoError(Save(dir, entry))

	assert.NoError(Clear(dir))

	_, ok, err := Load(dir, entry.Kind, entry.SpecHash)
	assert.NoError(err)
	assert.False(ok)
}
