// Package gobio ties the lexer engine (internal/lex) and parser engine
// (internal/parse) together into a single front end: source text in, a
// types.ParseTree out. It is deliberately scoped to lexing and parsing
// only; it does not attempt semantic analysis or code generation.
//
// The name follows the teacher's convention of naming the toplevel package
// after the fish it is themed on crossed with what it does: gobio is a
// genus of small freshwater fish (the gudgeons), and this module teaches
// the machinery a bigger compiler's front end is built from.
package gobio

import (
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/gobio/internal/grammar"
	"github.com/dekarrin/gobio/internal/icerrors"
	"github.com/dekarrin/gobio/internal/lex"
	"github.com/dekarrin/gobio/internal/parse"
	"github.com/dekarrin/gobio/internal/types"
)

// Lexer is anything able to turn source text into a TokenStream.
type Lexer interface {
	Lex(r io.Reader) (types.TokenStream, error)
}

// Parser is anything able to turn a TokenStream into a ParseTree.
type Parser interface {
	Parse(stream types.TokenStream) (types.ParseTree, error)
}

// Frontend is a complete lexer-plus-parser pipeline: source text in, a
// types.ParseTree out. BuildID is a random uuid assigned by NewFrontend; it
// distinguishes one Frontend value from another and is not derived from
// the lexer or table, so two Frontends built from the same inputs get
// different IDs.
type Frontend struct {
	BuildID string

	lx Lexer
	p  Parser
	gr grammar.Grammar
}

// NewFrontend combines lx and p into a Frontend tagged with a fresh random
// BuildID.
func NewFrontend(lx Lexer, p Parser, g grammar.Grammar) *Frontend {
	return &Frontend{
		BuildID: uuid.NewString(),
		lx:      lx,
		p:       p,
		gr:      g,
	}
}

// Grammar returns the grammar this Frontend's parser was built from.
func (fe *Frontend) Grammar() grammar.Grammar {
	return fe.gr
}

// AnalyzeString is Analyze over a string, provided for convenience.
func (fe *Frontend) AnalyzeString(s string) (types.ParseTree, error) {
	return fe.Analyze(strings.NewReader(s))
}

// Analyze lexes and parses the text read from r, returning the parse tree
// rooted at the grammar's (unaugmented) start symbol. A SpecSyntax (no
// lexical rule matches), MissingInput (r cannot be read), or ParseFailure
// icerrors.Error is returned on the first problem encountered; SpecSyntax
// and ParseFailure errors are positioned at the offending location in r.
func (fe *Frontend) Analyze(r io.Reader) (types.ParseTree, error) {
	toks, err := fe.lx.Lex(r)
	if err != nil {
		return types.ParseTree{}, err
	}

	tree, err := fe.p.Parse(toks)
	if err != nil {
		return types.ParseTree{}, err
	}

	return tree, nil
}

// LexSpec is the content of a `.gobio` lexer specification: its named
// lexical rules (as lex.Rule values) and its named sub-pattern variables.
type LexSpec struct {
	Rules []lex.Rule
	Vars  map[string]string
}

// NewLexer compiles spec into a Lexer: RegexPreprocessor expansion,
// NfaBuilder construction, SubsetConstructor, and DfaMinimizer, chained via
// lex.Compile.
func NewLexer(spec LexSpec) (Lexer, error) {
	return lex.Compile(spec.Rules, spec.Vars)
}

// NewSlr1Parser builds an SLR(1) Parser for g via Lr0Builder and
// Slr1Builder. Returns an icerrors.GrammarNotSlr1-classified error if g is
// not SLR(1).
func NewSlr1Parser(g grammar.Grammar) (Parser, []string, error) {
	table, warnings, err := parse.NewSlr1Builder().Build(g)
	if err != nil {
		return nil, warnings, icerrors.New(icerrors.GrammarNotSlr1, "%s", err)
	}
	return parse.NewParseDriver(table, g), warnings, nil
}

// NewAmbiguousSlr1Parser is NewSlr1Parser but tolerates shift/reduce
// conflicts by preferring shift, returning one warning string per
// resolved conflict.
func NewAmbiguousSlr1Parser(g grammar.Grammar) (Parser, []string, error) {
	builder := parse.Slr1Builder{AllowAmbiguity: true}
	table, warnings, err := builder.Build(g)
	if err != nil {
		return nil, warnings, icerrors.New(icerrors.GrammarNotSlr1, "%s", err)
	}
	return parse.NewParseDriver(table, g), warnings, nil
}

// NewLr1Parser builds a canonical LR(1) Parser for g via Lr1Builder and
// Lr1TableBuilder. Returns an icerrors.GrammarNotLr1-classified error if g
// is not LR(1).
func NewLr1Parser(g grammar.Grammar) (Parser, error) {
	table, err := parse.NewLr1TableBuilder().Build(g)
	if err != nil {
		return nil, icerrors.New(icerrors.GrammarNotLr1, "%s", err)
	}
	return parse.NewParseDriver(table, g), nil
}

// LoadGrammar reads a grammar text file via grammar.GrammarLoader.
func LoadGrammar(r io.Reader) (grammar.Grammar, error) {
	return grammar.NewGrammarLoader().Load(r)
}

// LoadGrammarString is LoadGrammar over a string.
func LoadGrammarString(src string) (grammar.Grammar, error) {
	return grammar.NewGrammarLoader().LoadString(src)
}

// Trace registers fn as a trace listener on p, if p supports it (currently
// only *parse.ParseDriver does); it is a no-op otherwise. Useful for
// teaching/debugging a parse step by step from cmd/gobio's repl
// subcommand.
func Trace(p Parser, fn func(s string)) {
	if d, ok := p.(*parse.ParseDriver); ok {
		d.RegisterTraceListener(fn)
	}
}

