package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SVSet_basic(t *testing.T) {
	assert := assert.New(t)

	s := NewSVSet[int]()
	s.Set("a", 1)
	s.Set("b", 2)

	assert.True(s.Has("a"))
	assert.False(s.Has("z"))
	assert.Equal(2, s.Len())
	assert.Equal(1, s.Get("a"))
	assert.False(s.Empty())

	s.Remove("a")
	assert.False(s.Has("a"))
	assert.Equal(1, s.Len())
}

func Test_SVSet_Union_Intersection_Difference(t *testing.T) {
	assert := assert.New(t)

	a := NewSVSet[int]()
	a.Set("x", 1)
	a.Set("y", 2)

	b := NewSVSet[int]()
	b.Set("y", 99)
	b.Set("z", 3)

	union := a.Union(b)
	assert.Equal(3, union.Len())
	assert.True(union.Has("x"))
	assert.True(union.Has("y"))
	assert.True(union.Has("z"))

	inter := a.Intersection(b)
	assert.Equal(1, inter.Len())
	assert.True(inter.Has("y"))

	diff := a.Difference(b)
	assert.Equal(1, diff.Len())
	assert.True(diff.Has("x"))

	assert.False(a.DisjointWith(b))

	c := NewSVSet[int]()
	c.Set("q", 1)
	assert.True(a.DisjointWith(c))
}

func Test_SVSet_StringOrdered_deterministic(t *testing.T) {
	assert := assert.New(t)

	s := NewSVSet[int]()
	s.Set("b", 1)
	s.Set("a", 1)
	s.Set("c", 1)

	assert.Equal("{a, b, c}", s.StringOrdered())
}

func Test_StringSet_basic(t *testing.T) {
	assert := assert.New(t)

	s := StringSetOf([]string{"a", "b", "a"})
	assert.Equal(2, s.Len())
	assert.True(s.Has("a"))
	assert.True(s.Has("b"))
}

func Test_OrderedKeys(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int{"z": 1, "a": 2, "m": 3}
	assert.Equal([]string{"a", "m", "z"}, OrderedKeys(m))
}
