package lex

import (
	"fmt"

	"github.com/dekarrin/gobio/internal/automaton"
	"github.com/dekarrin/gobio/internal/icerrors"
)

// PatternTag annotates an NFA state built by NfaBuilder for one named
// lexical rule: which rule the state's acceptance (if any) belongs to, and
// that rule's declaration-order priority (lower wins ties at the same
// matched length, classic lex maximal-munch/first-declared-wins semantics).
type PatternTag struct {
	RuleName string
	Priority int
}

// fragment is an NFA under construction with exactly one start state
// (NFA.Start) and exactly one accept state, the two endpoints Thompson
// construction threads together as regex operators combine.
type fragment struct {
	nfa    automaton.NFA[PatternTag]
	accept string
}

// NfaBuilder performs Thompson construction over a preprocessed regular
// expression, producing an NFA fragment whose accept state is tagged with
// the owning rule's PatternTag. Its state-id counter lives on the
// instance, not as process-global mutable state, so that two independent
// NfaBuilder values (and so two independent builds run in the same
// process) each produce the same deterministic id numbering given the
// same input, per this toolkit's reproducibility contract.
type NfaBuilder struct {
	counter int
}

// NewNfaBuilder returns an NfaBuilder with a fresh state-id counter.
func NewNfaBuilder() *NfaBuilder { return &NfaBuilder{} }

// freshState returns the next sequential state id owned by b.
func (b *NfaBuilder) freshState() string {
	b.counter++
	return fmt.Sprintf("n%d", b.counter)
}

// NewState allocates a fresh state id from b's counter for use by a
// caller composing further fragments around b's output (e.g. Compile
// joining several per-rule NFAs into one).
func (b *NfaBuilder) NewState() string {
	return b.freshState()
}

func (b *NfaBuilder) singleFragment() fragment {
	s0, s1 := b.freshState(), b.freshState()
	nfa := automaton.NewNFA[PatternTag]()
	nfa.AddState(s0, false)
	nfa.AddState(s1, true)
	nfa.Start = s0
	return fragment{nfa: *nfa, accept: s1}
}

// Build compiles pattern (already RegexPreprocessor-expanded) into an NFA,
// tagging its accept state with tag.
func (b *NfaBuilder) Build(pattern string, tag PatternTag) (automaton.NFA[PatternTag], string, error) {
	if err := Validate(pattern); err != nil {
		return automaton.NFA[PatternTag]{}, "", err
	}

	toks, err := tokenizeRegex(pattern)
	if err != nil {
		return automaton.NFA[PatternTag]{}, "", err
	}

	withConcat := insertConcatOperators(toks)
	postfix, err := toPostfix(withConcat)
	if err != nil {
		return automaton.NFA[PatternTag]{}, "", err
	}

	frag, err := b.evalPostfix(postfix)
	if err != nil {
		return automaton.NFA[PatternTag]{}, "", err
	}

	frag.nfa.SetValue(frag.accept, tag)
	return frag.nfa, frag.accept, nil
}

// regexToken is one lexical unit of the (preprocessed) regex: a literal
// input symbol, a parenthesis, an operator, or a bracket character class
// already expanded to its member alternation.
type regexToken struct {
	kind string // "atom", "op", "lparen", "rparen"
	// for "atom": either a single literal symbol, or (for a character
	// class) the alternatives it expands to.
	symbol string
	alts   []string
	op     byte // for "op": one of '|','*','+','?'
}

func tokenizeRegex(pattern string) ([]regexToken, error) {
	var out []regexToken
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '(':
			out = append(out, regexToken{kind: "lparen"})
		case ')':
			out = append(out, regexToken{kind: "rparen"})
		case '|', '*', '+', '?':
			out = append(out, regexToken{kind: "op", op: byte(c)})
		case '.':
			out = append(out, regexToken{kind: "atom", alts: anyCharAlternatives()})
		case '\\':
			i++
			if i >= len(runes) {
				return nil, icerrors.New(icerrors.RegexSyntax, "trailing escape in %q", pattern)
			}
			out = append(out, regexToken{kind: "atom", symbol: string(runes[i])})
		case '[':
			end, alts, err := parseBracketClass(runes, i)
			if err != nil {
				return nil, err
			}
			out = append(out, regexToken{kind: "atom", alts: alts})
			i = end
		default:
			out = append(out, regexToken{kind: "atom", symbol: string(c)})
		}
	}
	return out, nil
}

// anyCharAlternatives is the alphabet `.` matches: printable ASCII minus
// newline, consistent with this toolkit's ASCII-only scope.
func anyCharAlternatives() []string {
	var alts []string
	for c := rune(0x20); c <= 0x7E; c++ {
		alts = append(alts, string(c))
	}
	return alts
}

func parseBracketClass(runes []rune, start int) (end int, alts []string, err error) {
	i := start + 1
	negate := false
	if i < len(runes) && runes[i] == '^' {
		negate = true
		i++
	}

	included := map[rune]bool{}
	for i < len(runes) && runes[i] != ']' {
		if i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] != ']' {
			lo, hi := runes[i], runes[i+2]
			if lo > hi {
				return 0, nil, icerrors.New(icerrors.RegexSyntax, "invalid character range %c-%c", lo, hi)
			}
			for c := lo; c <= hi; c++ {
				included[c] = true
			}
			i += 3
		} else {
			included[runes[i]] = true
			i++
		}
	}
	if i >= len(runes) {
		return 0, nil, icerrors.New(icerrors.RegexSyntax, "unterminated character class")
	}

	if negate {
		for c := rune(0x20); c <= 0x7E; c++ {
			if !included[c] {
				alts = append(alts, string(c))
			}
		}
	} else {
		for c := rune(0); c <= 0x7E; c++ {
			if included[c] {
				alts = append(alts, string(c))
			}
		}
	}

	if len(alts) == 0 {
		return 0, nil, icerrors.New(icerrors.RegexSyntax, "character class matches no characters")
	}

	return i, alts, nil
}

// insertConcatOperators inserts an explicit concatenation marker ('\x00')
// between adjacent tokens wherever juxtaposition implies concatenation,
// e.g. between two atoms, between an atom and a following '(', between a
// ')' and a following atom, and after a postfix repetition operator
// followed by another atom or '('.
func insertConcatOperators(toks []regexToken) []regexToken {
	const concatOp = 0

	endsAtom := func(t regexToken) bool {
		return t.kind == "atom" || t.kind == "rparen" || (t.kind == "op" && t.op != '|')
	}
	startsAtom := func(t regexToken) bool {
		return t.kind == "atom" || t.kind == "lparen"
	}

	var out []regexToken
	for i, t := range toks {
		out = append(out, t)
		if i+1 < len(toks) && endsAtom(t) && startsAtom(toks[i+1]) {
			out = append(out, regexToken{kind: "op", op: concatOp})
		}
	}
	return out
}

func precedence(op byte) int {
	switch op {
	case '*', '+', '?':
		return 3
	case 0: // concat
		return 2
	case '|':
		return 1
	}
	return 0
}

func isUnaryPostfix(op byte) bool {
	return op == '*' || op == '+' || op == '?'
}

// toPostfix runs the shunting-yard algorithm over the concat-annotated
// token stream to produce postfix (RPN) order for stack-based evaluation.
func toPostfix(toks []regexToken) ([]regexToken, error) {
	var output []regexToken
	var opStack []regexToken

	popToOutput := func() {
		output = append(output, opStack[len(opStack)-1])
		opStack = opStack[:len(opStack)-1]
	}

	for _, t := range toks {
		switch t.kind {
		case "atom":
			output = append(output, t)
		case "lparen":
			opStack = append(opStack, t)
		case "rparen":
			for len(opStack) > 0 && opStack[len(opStack)-1].kind != "lparen" {
				popToOutput()
			}
			if len(opStack) == 0 {
				return nil, icerrors.New(icerrors.RegexSyntax, "unbalanced ')'")
			}
			opStack = opStack[:len(opStack)-1] // discard the lparen
		case "op":
			for len(opStack) > 0 && opStack[len(opStack)-1].kind == "op" &&
				precedence(opStack[len(opStack)-1].op) >= precedence(t.op) {
				popToOutput()
			}
			opStack = append(opStack, t)
		}
	}
	for len(opStack) > 0 {
		if opStack[len(opStack)-1].kind == "lparen" {
			return nil, icerrors.New(icerrors.RegexSyntax, "unbalanced '('")
		}
		popToOutput()
	}

	return output, nil
}

// evalPostfix evaluates the postfix token stream into a single NFA
// fragment via Thompson construction: a stack of fragments, atoms pushed
// directly, operators popping one or two fragments and pushing the
// composed result.
func (b *NfaBuilder) evalPostfix(toks []regexToken) (fragment, error) {
	var stack []fragment

	pop := func() fragment {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f
	}

	for _, t := range toks {
		switch t.kind {
		case "atom":
			if t.symbol != "" {
				stack = append(stack, b.literalFragment(t.symbol))
			} else {
				stack = append(stack, b.alternativesFragment(t.alts))
			}
		case "op":
			switch t.op {
			case 0: // concat
				if len(stack) < 2 {
					return fragment{}, icerrors.New(icerrors.RegexSyntax, "malformed expression (concat)")
				}
				rhs := pop()
				lhs := pop()
				stack = append(stack, b.concatFragments(lhs, rhs))
			case '|':
				if len(stack) < 2 {
					return fragment{}, icerrors.New(icerrors.RegexSyntax, "malformed expression (alternation)")
				}
				rhs := pop()
				lhs := pop()
				stack = append(stack, b.unionFragments(lhs, rhs))
			case '*':
				if len(stack) < 1 {
					return fragment{}, icerrors.New(icerrors.RegexSyntax, "malformed expression (star)")
				}
				stack = append(stack, b.starFragment(pop()))
			case '+':
				if len(stack) < 1 {
					return fragment{}, icerrors.New(icerrors.RegexSyntax, "malformed expression (plus)")
				}
				stack = append(stack, b.plusFragment(pop()))
			case '?':
				if len(stack) < 1 {
					return fragment{}, icerrors.New(icerrors.RegexSyntax, "malformed expression (optional)")
				}
				stack = append(stack, b.optionalFragment(pop()))
			}
		}
	}

	if len(stack) != 1 {
		return fragment{}, icerrors.New(icerrors.RegexSyntax, "malformed expression: %d dangling fragments", len(stack))
	}
	return stack[0], nil
}

func (b *NfaBuilder) literalFragment(symbol string) fragment {
	f := b.singleFragment()
	f.nfa.AddTransition(f.nfa.Start, symbol, f.accept)
	return f
}

func (b *NfaBuilder) alternativesFragment(alts []string) fragment {
	f := b.singleFragment()
	for _, a := range alts {
		f.nfa.AddTransition(f.nfa.Start, a, f.accept)
	}
	return f
}

// concatFragments builds a(accept) -ε-> b(start), with the combined
// fragment's own accept being b's accept.
func (b *NfaBuilder) concatFragments(lhs, rhs fragment) fragment {
	joined := lhs.nfa.Join(rhs.nfa, [][3]string{{lhs.accept, automaton.Epsilon, rhs.nfa.Start}}, nil, nil, nil)
	return fragment{nfa: joined, accept: "2:" + rhs.accept}
}

// unionFragments builds a fresh start/accept pair with epsilon edges into
// both branches and out of both branches' original accept states.
func (b *NfaBuilder) unionFragments(lhs, rhs fragment) fragment {
	joined := lhs.nfa.Join(rhs.nfa, nil, nil, nil, []string{"1:" + lhs.accept, "2:" + rhs.accept})

	newStart, newAccept := b.freshState(), b.freshState()
	joined.AddState(newStart, false)
	joined.AddState(newAccept, true)
	joined.AddTransition(newStart, automaton.Epsilon, "1:"+lhs.nfa.Start)
	joined.AddTransition(newStart, automaton.Epsilon, "2:"+rhs.nfa.Start)
	joined.AddTransition("1:"+lhs.accept, automaton.Epsilon, newAccept)
	joined.AddTransition("2:"+rhs.accept, automaton.Epsilon, newAccept)
	joined.Start = newStart

	return fragment{nfa: joined, accept: newAccept}
}

// starFragment wraps f for zero-or-more repetition: a fresh start/accept
// pair that can skip f entirely, loop back through it any number of
// times, or exit after any pass.
func (b *NfaBuilder) starFragment(f fragment) fragment {
	nfa := f.nfa
	newStart, newAccept := b.freshState(), b.freshState()
	nfa.AddState(newStart, false)
	nfa.AddState(newAccept, true)
	nfa.AddTransition(newStart, automaton.Epsilon, f.nfa.Start)
	nfa.AddTransition(newStart, automaton.Epsilon, newAccept)
	nfa.AddTransition(f.accept, automaton.Epsilon, f.nfa.Start)
	nfa.AddTransition(f.accept, automaton.Epsilon, newAccept)
	nfa.Start = newStart
	nfa.SetAccepting(f.accept, false)
	return fragment{nfa: nfa, accept: newAccept}
}

// plusFragment wraps f for one-or-more repetition: f must be matched at
// least once, with a loop back to its own start for further repeats.
func (b *NfaBuilder) plusFragment(f fragment) fragment {
	nfa := f.nfa
	newAccept := b.freshState()
	nfa.AddState(newAccept, true)
	nfa.AddTransition(f.accept, automaton.Epsilon, f.nfa.Start)
	nfa.AddTransition(f.accept, automaton.Epsilon, newAccept)
	nfa.SetAccepting(f.accept, false)
	return fragment{nfa: nfa, accept: newAccept}
}

func (b *NfaBuilder) optionalFragment(f fragment) fragment {
	nfa := f.nfa
	newStart, newAccept := b.freshState(), b.freshState()
	nfa.AddState(newStart, false)
	nfa.AddState(newAccept, true)
	nfa.AddTransition(newStart, automaton.Epsilon, f.nfa.Start)
	nfa.AddTransition(newStart, automaton.Epsilon, newAccept)
	nfa.AddTransition(f.accept, automaton.Epsilon, newAccept)
	nfa.Start = newStart
	nfa.SetAccepting(f.accept, false)
	return fragment{nfa: nfa, accept: newAccept}
}
