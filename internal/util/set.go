// Package util holds small, dependency-free data structures shared across the
// lexer and parser engines: ordered sets, a value-carrying set keyed by
// string (used heavily for automaton state labels and item sets), and a
// couple of string-formatting helpers for diagnostics.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// ISet is a generic set of comparable-by-value elements with deterministic
// string rendering. Every concrete set in this package satisfies it so that
// automaton and grammar code can operate on "a set of X" without caring which
// concrete representation backs it.
type ISet[E any] interface {
	Add(element E)
	AddAll(s2 ISet[E])
	Remove(element E)
	Has(element E) bool
	Len() int
	Copy() ISet[E]
	Equal(o any) bool
	String() string
	StringOrdered() string
	Union(s2 ISet[E]) ISet[E]
	Intersection(s2 ISet[E]) ISet[E]
	Difference(s2 ISet[E]) ISet[E]
	DisjointWith(s2 ISet[E]) bool
	Empty() bool
	Any(predicate func(v E) bool) bool
	Elements() []E
}

// VSet is a set that additionally carries a value for each element, such as
// an NFA or DFA state carrying an annotation keyed by the state's name.
type VSet[E any, V any] interface {
	ISet[E]
	Set(element E, data V)
	Get(element E) V
}

// SVSet is a set of strings, each mapped to an arbitrary value V. It is the
// workhorse container for automaton states (keyed by state name) and for
// LR item sets (keyed by a canonical item-set string).
type SVSet[V any] map[string]V

// NewSVSet builds an SVSet, optionally seeded from existing maps.
func NewSVSet[V any](of ...map[string]V) SVSet[V] {
	s := SVSet[V](map[string]V{})
	for _, m := range of {
		for k, v := range m {
			s.Set(k, v)
		}
	}
	return s
}

func (s SVSet[V]) Copy() ISet[string] {
	return NewSVSet(map[string]V(s))
}

func (s SVSet[V]) Add(idx string) {
	if _, ok := s[idx]; !ok {
		var zero V
		s[idx] = zero
	}
}

func (s SVSet[V]) Set(idx string, val V) { s[idx] = val }
func (s SVSet[V]) Get(idx string) V       { return s[idx] }

func (s SVSet[V]) Has(idx string) bool {
	_, ok := s[idx]
	return ok
}

func (s SVSet[V]) Remove(idx string) { delete(s, idx) }
func (s SVSet[V]) Len() int          { return len(s) }

func (s SVSet[V]) Elements() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

func (s SVSet[V]) AddAll(s2 ISet[string]) {
	if valued, ok := s2.(VSet[string, V]); ok {
		for _, k := range valued.Elements() {
			s.Set(k, valued.Get(k))
		}
		return
	}
	for _, k := range s2.Elements() {
		s.Add(k)
	}
}

func (s SVSet[V]) Union(s2 ISet[string]) ISet[string] {
	n := NewSVSet(map[string]V(s))
	n.AddAll(s2)
	return n
}

func (s SVSet[V]) Intersection(s2 ISet[string]) ISet[string] {
	n := NewSVSet[V]()
	for k, v := range s {
		if s2.Has(k) {
			n.Set(k, v)
		}
	}
	return n
}

func (s SVSet[V]) Difference(s2 ISet[string]) ISet[string] {
	n := NewSVSet[V]()
	for k, v := range s {
		if !s2.Has(k) {
			n.Set(k, v)
		}
	}
	return n
}

func (s SVSet[V]) DisjointWith(s2 ISet[string]) bool {
	for k := range s {
		if s2.Has(k) {
			return false
		}
	}
	return true
}

func (s SVSet[V]) Empty() bool { return len(s) == 0 }

func (s SVSet[V]) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

func (s SVSet[V]) StringOrdered() string {
	keys := s.Elements()
	sort.Strings(keys)
	return braced(keys)
}

func (s SVSet[V]) String() string {
	return braced(s.Elements())
}

func (s SVSet[V]) Equal(o any) bool {
	other, ok := asStringSet(o)
	if !ok {
		return false
	}
	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// StringSet is a plain set of strings with no associated value.
type StringSet map[string]bool

func NewStringSet() StringSet { return StringSet(map[string]bool{}) }

func StringSetOf(sl []string) StringSet {
	s := NewStringSet()
	for _, v := range sl {
		s.Add(v)
	}
	return s
}

func (s StringSet) Copy() ISet[string] {
	n := NewStringSet()
	for k := range s {
		n.Add(k)
	}
	return n
}

func (s StringSet) Add(v string)            { s[v] = true }
func (s StringSet) Remove(v string)         { delete(s, v) }
func (s StringSet) Has(v string) bool       { return s[v] }
func (s StringSet) Len() int                { return len(s) }
func (s StringSet) Empty() bool             { return len(s) == 0 }
func (s StringSet) Elements() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

func (s StringSet) AddAll(s2 ISet[string]) {
	for _, v := range s2.Elements() {
		s.Add(v)
	}
}

func (s StringSet) Union(s2 ISet[string]) ISet[string] {
	n := s.Copy()
	n.AddAll(s2)
	return n
}

func (s StringSet) Intersection(s2 ISet[string]) ISet[string] {
	n := NewStringSet()
	for k := range s {
		if s2.Has(k) {
			n.Add(k)
		}
	}
	return n
}

func (s StringSet) Difference(s2 ISet[string]) ISet[string] {
	n := NewStringSet()
	for k := range s {
		if !s2.Has(k) {
			n.Add(k)
		}
	}
	return n
}

func (s StringSet) DisjointWith(s2 ISet[string]) bool {
	for k := range s {
		if s2.Has(k) {
			return false
		}
	}
	return true
}

func (s StringSet) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

func (s StringSet) StringOrdered() string {
	keys := s.Elements()
	sort.Strings(keys)
	return braced(keys)
}

func (s StringSet) String() string { return braced(s.Elements()) }

func (s StringSet) Equal(o any) bool {
	other, ok := asStringSet(o)
	if !ok {
		return false
	}
	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

func asStringSet(o any) (ISet[string], bool) {
	switch v := o.(type) {
	case ISet[string]:
		return v, true
	case *ISet[string]:
		if v == nil {
			return nil, false
		}
		return *v, true
	default:
		return nil, false
	}
}

func braced(items []string) string {
	var sb strings.Builder
	sb.WriteRune('{')
	for i, it := range items {
		sb.WriteString(fmt.Sprintf("%v", it))
		if i+1 < len(items) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// OrderedKeys returns the keys of m sorted ascending, giving deterministic
// iteration order over a Go map wherever the determinism contract requires
// it (state tables, transition dumps, table exports).
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
