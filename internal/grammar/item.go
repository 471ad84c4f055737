// Package grammar models context-free grammars and LR items: the data the
// GrammarLoader, FirstFollow, Lr0Builder, Slr1TableBuilder, Lr1Builder, and
// Lr1TableBuilder components all operate over.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gobio/internal/util"
)

// Epsilon is the empty-production symbol.
const Epsilon = ""

// EndOfInput is the lookahead/input-exhausted sentinel symbol, "$".
const EndOfInput = "$"

// LR0Item is an LR(0) item: a production with a dot position, the dot
// represented by splitting the right-hand side into Left (already matched)
// and Right (yet to match).
type LR0Item struct {
	NonTerminal string
	Left        []string
	Right       []string
}

func (lr0 LR0Item) Equal(o any) bool {
	other, ok := o.(LR0Item)
	if !ok {
		otherPtr, ok := o.(*LR0Item)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if lr0.NonTerminal != other.NonTerminal || len(lr0.Left) != len(other.Left) || len(lr0.Right) != len(other.Right) {
		return false
	}
	for i := range lr0.Left {
		if lr0.Left[i] != other.Left[i] {
			return false
		}
	}
	for i := range lr0.Right {
		if lr0.Right[i] != other.Right[i] {
			return false
		}
	}
	return true
}

// Complete reports whether the dot has reached the end of the production
// (Right is empty), meaning this item calls for a reduction.
func (lr0 LR0Item) Complete() bool {
	return len(lr0.Right) == 0
}

// NextSymbol returns the symbol immediately after the dot, and whether one
// exists (false if the item is Complete).
func (lr0 LR0Item) NextSymbol() (string, bool) {
	if len(lr0.Right) == 0 {
		return "", false
	}
	return lr0.Right[0], true
}

// Advance returns the item with the dot moved one symbol to the right. Only
// valid to call when !Complete().
func (lr0 LR0Item) Advance() LR0Item {
	adv := LR0Item{NonTerminal: lr0.NonTerminal}
	adv.Left = append(append([]string{}, lr0.Left...), lr0.Right[0])
	adv.Right = append([]string{}, lr0.Right[1:]...)
	return adv
}

func (item LR0Item) String() string {
	nonTermPhrase := ""
	if item.NonTerminal != "" {
		nonTermPhrase = fmt.Sprintf("%s -> ", item.NonTerminal)
	}

	left := strings.Join(item.Left, " ")
	right := strings.Join(item.Right, " ")
	if len(left) > 0 {
		left += " "
	}
	if len(right) > 0 {
		right = " " + right
	}

	return fmt.Sprintf("%s%s.%s", nonTermPhrase, left, right)
}

func MustParseLR0Item(s string) LR0Item {
	i, err := ParseLR0Item(s)
	if err != nil {
		panic(err.Error())
	}
	return i
}

func ParseLR0Item(s string) (LR0Item, error) {
	sides := strings.Split(s, "->")
	if len(sides) != 2 {
		return LR0Item{}, fmt.Errorf("not an item of form 'NONTERM -> ALPHA.BETA': %q", s)
	}
	nonTerminal := strings.TrimSpace(sides[0])
	if nonTerminal == "" {
		return LR0Item{}, fmt.Errorf("empty nonterminal name not allowed for item")
	}

	item := LR0Item{NonTerminal: nonTerminal}

	prodStrings := strings.Split(strings.TrimSpace(sides[1]), ".")
	if len(prodStrings) != 2 {
		return LR0Item{}, fmt.Errorf("item must have exactly one dot")
	}

	item.Left = splitItemSymbols(prodStrings[0])
	item.Right = splitItemSymbols(prodStrings[1])
	return item, nil
}

func splitItemSymbols(s string) []string {
	var out []string
	for _, sym := range strings.Split(strings.TrimSpace(s), " ") {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		if strings.ToLower(sym) == "ε" {
			sym = Epsilon
		}
		out = append(out, sym)
	}
	return out
}

// LR1Item is an LR(0) item annotated with a single lookahead terminal.
type LR1Item struct {
	LR0Item
	Lookahead string
}

func (lr1 LR1Item) Equal(o any) bool {
	other, ok := o.(LR1Item)
	if !ok {
		otherPtr, ok := o.(*LR1Item)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}
	return lr1.LR0Item.Equal(other.LR0Item) && lr1.Lookahead == other.Lookahead
}

func (lr1 LR1Item) Copy() LR1Item {
	cp := LR1Item{Lookahead: lr1.Lookahead}
	cp.NonTerminal = lr1.NonTerminal
	cp.Left = append([]string{}, lr1.Left...)
	cp.Right = append([]string{}, lr1.Right...)
	return cp
}

func (item LR1Item) String() string {
	return fmt.Sprintf("%s, %s", item.LR0Item.String(), item.Lookahead)
}

func MustParseLR1Item(s string) LR1Item {
	i, err := ParseLR1Item(s)
	if err != nil {
		panic(err.Error())
	}
	return i
}

func ParseLR1Item(s string) (LR1Item, error) {
	sides := strings.Split(s, ",")
	if len(sides) != 2 {
		return LR1Item{}, fmt.Errorf("not an item of form 'NONTERM -> ALPHA.BETA, a': %q", s)
	}
	item := LR1Item{}
	var err error
	item.LR0Item, err = ParseLR0Item(sides[0])
	if err != nil {
		return item, err
	}
	item.Lookahead = strings.TrimSpace(sides[1])
	return item, nil
}

// CoreSet strips lookaheads from an LR1Item set, returning the set of
// underlying LR0Items ("cores"). Used for LALR-style kernel comparisons;
// kept here since it's a natural one-liner on top of LR1Item and costs
// nothing to expose, even though this module does not build LALR(1) tables.
func CoreSet(s util.VSet[string, LR1Item]) util.SVSet[LR0Item] {
	cores := util.NewSVSet[LR0Item]()
	for _, elem := range s.Elements() {
		lr1 := s.Get(elem)
		cores.Set(lr1.LR0Item.String(), lr1.LR0Item)
	}
	return cores
}
