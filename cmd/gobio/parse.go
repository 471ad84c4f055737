package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/gobio/internal/grammar"
	"github.com/dekarrin/gobio/internal/lex"
	"github.com/dekarrin/gobio/internal/types"

	"github.com/dekarrin/gobio/internal/icerrors"
	"github.com/dekarrin/gobio/internal/parse"
)

// runParse parses a source file against the configured lexer and grammar,
// printing the resulting parse tree. With --tokens, the named token-stream
// file (lines of "<n>: <CLASS>, <lexeme>") is parsed directly instead of
// lexing args[0]/-i. With --table-in, the named previously-exported
// SLRUnit table file drives the parse instead of rebuilding one from the
// grammar.
func runParse(cfg config, args []string) error {
	gramSrc, err := os.ReadFile(cfg.Grammar)
	if err != nil {
		return fmt.Errorf("reading grammar %q: %w", cfg.Grammar, err)
	}
	g, err := grammar.NewGrammarLoader().LoadString(string(gramSrc))
	if err != nil {
		return err
	}

	var stream types.TokenStream
	if *flagTokens != "" {
		stream, err = readTokenStreamFile(*flagTokens)
	} else {
		stream, err = lexInputFile(cfg, args)
	}
	if err != nil {
		return err
	}

	var table parse.Table
	if *flagTableIn != "" {
		data, rerr := os.ReadFile(*flagTableIn)
		if rerr != nil {
			return fmt.Errorf("reading table %q: %w", *flagTableIn, rerr)
		}
		table, err = parse.LoadTable(string(data))
	} else {
		table, err = buildConfiguredTable(cfg, g)
	}
	if err != nil {
		return err
	}

	driver := parse.NewParseDriver(table, g)
	tree, err := driver.Parse(stream)
	if err != nil {
		return err
	}

	fmt.Println(tree.String())
	return nil
}

// lexInputFile lexes the source file given as args[0] (or -i/--input)
// with the configured lexical spec.
func lexInputFile(cfg config, args []string) (types.TokenStream, error) {
	inputPath := *flagInput
	if len(args) > 0 {
		inputPath = args[0]
	}
	if inputPath == "" {
		return nil, icerrors.New(icerrors.MissingInput, "no source file given to parse")
	}

	lexSrc, err := os.ReadFile(cfg.Lexer)
	if err != nil {
		return nil, fmt.Errorf("reading lexical spec %q: %w", cfg.Lexer, err)
	}
	rules, vars, err := lex.NewSpecLoader().LoadString(string(lexSrc))
	if err != nil {
		return nil, err
	}
	compiled, err := lex.Compile(rules, vars)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading input %q: %w", inputPath, err)
	}
	defer f.Close()

	return compiled.Lex(f)
}

// readTokenStreamFile reads the "<n>: <CLASS>, <lexeme>" token-stream
// format at path, mapping each line's class/lexeme pair to a grammar
// terminal symbol via the shared default OPERATOR/DELIMITER table.
func readTokenStreamFile(path string) (types.TokenStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading token stream %q: %w", path, err)
	}
	defer f.Close()

	return parse.ReadTokenStream(f, parse.DefaultSymbolMap())
}

// buildConfiguredTable constructs the ACTION/GOTO table for g using the
// construction method named by cfg.Table.
func buildConfiguredTable(cfg config, g grammar.Grammar) (parse.Table, error) {
	if cfg.Table == "lr1" {
		return parse.NewLr1TableBuilder().Build(g)
	}
	table, _, err := parse.NewSlr1Builder().Build(g)
	return table, err
}

func buildFrontendPieces(cfg config) (*lex.CompiledLexer, grammar.Grammar, error) {
	lexSrc, err := os.ReadFile(cfg.Lexer)
	if err != nil {
		return nil, grammar.Grammar{}, fmt.Errorf("reading lexical spec %q: %w", cfg.Lexer, err)
	}
	rules, vars, err := lex.NewSpecLoader().LoadString(string(lexSrc))
	if err != nil {
		return nil, grammar.Grammar{}, err
	}
	compiled, err := lex.Compile(rules, vars)
	if err != nil {
		return nil, grammar.Grammar{}, err
	}

	gramSrc, err := os.ReadFile(cfg.Grammar)
	if err != nil {
		return nil, grammar.Grammar{}, fmt.Errorf("reading grammar %q: %w", cfg.Grammar, err)
	}
	g, err := grammar.NewGrammarLoader().LoadString(string(gramSrc))
	if err != nil {
		return nil, grammar.Grammar{}, err
	}

	return compiled, g, nil
}

func newConfiguredParser(cfg config, g grammar.Grammar) (interface {
	Parse(types.TokenStream) (types.ParseTree, error)
}, error) {
	table, err := buildConfiguredTable(cfg, g)
	if err != nil {
		return nil, err
	}
	return parse.NewParseDriver(table, g), nil
}
