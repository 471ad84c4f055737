package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TokenClass identifies a lexical category (terminal symbol) a token belongs
// to, such as "IDENT" or "NUM".
type TokenClass interface {
	// ID returns the ID of the token class. It must uniquely identify the
	// terminal symbol within a grammar.
	ID() string

	// Human returns a human-readable name for the class, used in messages
	// such as "expected an Identifier, got '123'".
	Human() string

	Equal(o any) bool
}

type simpleTokenClass string

func (class simpleTokenClass) ID() string {
	return strings.ToLower(string(class))
}

var titleCaser = cases.Title(language.English)

// Human title-cases the class name for display, e.g. "ident" -> "Ident".
func (class simpleTokenClass) Human() string {
	return titleCaser.String(string(class))
}

func (class simpleTokenClass) Equal(o any) bool {
	other, ok := o.(TokenClass)
	if !ok {
		otherPtr, ok := o.(*TokenClass)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}
	return other.ID() == class.ID()
}

const (
	TokenUndefined = simpleTokenClass("undefined_token")
	TokenEndOfText = simpleTokenClass("$")
)

// MakeDefaultClass returns a TokenClass whose ID is the lower-cased form of s
// and whose Human name is the title-cased form of s.
func MakeDefaultClass(s string) TokenClass {
	return simpleTokenClass(s)
}
