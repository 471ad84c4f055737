package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/gobio/internal/artifactcache"
	"github.com/dekarrin/gobio/internal/lex"
)

// runLex compiles the configured lexical spec and either prints the
// minimized DFA or, if -i/--input was given, lexes that file and prints
// the resulting tokens.
func runLex(cfg config, args []string) error {
	specPath := cfg.Lexer
	if len(args) > 0 {
		specPath = args[0]
	}

	src, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("reading lexical spec %q: %w", specPath, err)
	}

	compiled, err := compileLexFromCache(cfg, specPath, string(src))
	if err != nil {
		return err
	}

	if *flagInput == "" {
		fmt.Println(compiled.DFAString())
		return nil
	}

	inFile, err := os.Open(*flagInput)
	if err != nil {
		return fmt.Errorf("reading input %q: %w", *flagInput, err)
	}
	defer inFile.Close()

	stream, err := compiled.Lex(inFile)
	if err != nil {
		return err
	}
	for stream.HasNext() {
		tok := stream.Next()
		code, _ := compiled.RuleCode(tok.Class().ID())
		fmt.Printf("%-12s code=%-4d %q  (line %d, col %d)\n", tok.Class().ID(), code, tok.Lexeme(), tok.Line(), tok.LinePos())
	}
	return nil
}

// compileLexFromCache compiles specPath's rules and, unless -no-cache is
// set, saves the minimized DFA's text to the on-disk cache. The cache is
// only written here, never read back.
func compileLexFromCache(cfg config, specPath, src string) (*lex.CompiledLexer, error) {
	rules, vars, err := lex.NewSpecLoader().LoadString(src)
	if err != nil {
		return nil, err
	}

	compiled, err := lex.Compile(rules, vars)
	if err != nil {
		return nil, err
	}

	if !*flagNoCache {
		entry := artifactcache.Entry{
			SpecHash: artifactcache.HashSpec(src),
			Kind:     "lex-dfa",
			Text:     compiled.DFAString(),
		}
		if err := artifactcache.Save(cfg.CacheDir, entry); err != nil {
			return nil, err
		}
	}

	return compiled, nil
}
