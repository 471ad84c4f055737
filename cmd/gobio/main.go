/*
Gobio is a small command-line front end for the gobio lexer and parser
engine, written to make it easy to inspect and exercise a lexical spec and
grammar while learning how a compiler front end is put together.

Usage:

	gobio <subcommand> [flags]

The subcommands are:

	lex FILE
		Compile the lexical spec at FILE (or the lexer named in
		.gobio.toml if FILE is omitted) and print the resulting minimized
		DFA, or lex a source file given with -i/--input and print the
		resulting tokens.

	grammar FILE
		Load the grammar at FILE (or the grammar named in .gobio.toml)
		and print the FIRST/FOLLOW sets and, with -t/--table, the
		ACTION/GOTO table for the SLR(1) or LR(1) construction named by
		-m/--method.

	parse FILE
		Lex and parse the source file at FILE against the configured
		lexer and grammar, printing the resulting parse tree.

		--tokens FILE
			Parse a token-stream file directly (lines of
			"<n>: <CLASS>, <lexeme>"), bypassing the lexer entirely.

		--table-in FILE
			Parse against a previously-exported SLRUnit table file,
			bypassing table construction from the grammar.

	repl
		Start an interactive session: enter source text a line at a
		time and see it lexed and parsed immediately.

Every subcommand accepts:

	-g, --grammar FILE
		Grammar text file to use, overriding .gobio.toml.

	-l, --lexer FILE
		Lexical spec file to use, overriding .gobio.toml.

	-m, --method {slr1,lr1}
		Table construction to use. Defaults to "slr1".

	--no-cache
		Disable the on-disk table-text cache.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad flags or a missing/unknown subcommand.
	ExitUsageError

	// ExitBuildError indicates a spec or grammar could not be compiled.
	ExitBuildError

	// ExitRunError indicates a failure while lexing, parsing, or running
	// the REPL.
	ExitRunError
)

var (
	returnCode int = ExitSuccess

	flagGrammar  = pflag.StringP("grammar", "g", "", "grammar text file to use, overriding .gobio.toml")
	flagLexer    = pflag.StringP("lexer", "l", "", "lexical spec file to use, overriding .gobio.toml")
	flagMethod   = pflag.StringP("method", "m", "", "table construction to use: slr1 or lr1")
	flagTable    = pflag.BoolP("table", "t", false, "print the ACTION/GOTO table (grammar subcommand)")
	flagInput    = pflag.StringP("input", "i", "", "source file to lex/parse")
	flagTokens   = pflag.String("tokens", "", "token-stream file to parse directly (parse subcommand), bypassing the lexer")
	flagTableIn  = pflag.String("table-in", "", "previously-exported SLRUnit table file to parse against, bypassing table construction")
	flagNoCache  = pflag.Bool("no-cache", false, "disable the on-disk table-text cache")
	flagConfig   = pflag.String("config", ".gobio.toml", "path to the project config file")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()
	args := pflag.Args()

	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: no subcommand given; expected one of: lex, grammar, parse, repl")
		returnCode = ExitUsageError
		return
	}

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading %s: %v\n", *flagConfig, err)
		returnCode = ExitUsageError
		return
	}
	applyFlagOverrides(&cfg)

	sub, rest := args[0], args[1:]

	var runErr error
	switch sub {
	case "lex":
		runErr = runLex(cfg, rest)
	case "grammar":
		runErr = runGrammar(cfg, rest)
	case "parse":
		runErr = runParse(cfg, rest)
	case "repl":
		runErr = runRepl(cfg, rest)
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown subcommand %q; expected one of: lex, grammar, parse, repl\n", sub)
		returnCode = ExitUsageError
		return
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", runErr)
		returnCode = ExitRunError
	}
}

func applyFlagOverrides(cfg *config) {
	if *flagGrammar != "" {
		cfg.Grammar = *flagGrammar
	}
	if *flagLexer != "" {
		cfg.Lexer = *flagLexer
	}
	if *flagMethod != "" {
		cfg.Table = *flagMethod
	}
}
