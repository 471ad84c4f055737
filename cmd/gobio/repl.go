package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/gobio/internal/grammar"
	"github.com/dekarrin/gobio/internal/lex"
)

// runRepl starts an interactive line-at-a-time tester: each line entered
// is lexed with the configured lexer and, unless it fails to lex, parsed
// with the configured grammar, and the resulting parse tree (or the error
// encountered) is printed immediately.
func runRepl(cfg config, args []string) error {
	compiled, g, err := buildFrontendPieces(cfg)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "gobio> ",
		HistoryFile: "/tmp/gobio_repl_history",
	})
	if err != nil {
		return fmt.Errorf("create readline session: %w", err)
	}
	defer rl.Close()

	fmt.Println("gobio interactive session. Enter a line of source text; Ctrl-D to quit.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		replEvalLine(cfg, compiled, g, line)
	}
}

func replEvalLine(cfg config, compiled *lex.CompiledLexer, g grammar.Grammar, line string) {
	stream, err := compiled.Lex(strings.NewReader(line))
	if err != nil {
		fmt.Println(err)
		return
	}

	parser, err := newConfiguredParser(cfg, g)
	if err != nil {
		fmt.Println(err)
		return
	}

	tree, err := parser.Parse(stream)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(tree.String())
}
