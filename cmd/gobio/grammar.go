package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/gobio/internal/artifactcache"
	"github.com/dekarrin/gobio/internal/grammar"
	"github.com/dekarrin/gobio/internal/parse"
)

// runGrammar loads the configured grammar, prints its FIRST/FOLLOW sets,
// and, with -t/--table, the ACTION/GOTO table for the configured
// construction method.
func runGrammar(cfg config, args []string) error {
	gramPath := cfg.Grammar
	if len(args) > 0 {
		gramPath = args[0]
	}

	src, err := os.ReadFile(gramPath)
	if err != nil {
		return fmt.Errorf("reading grammar %q: %w", gramPath, err)
	}

	g, err := grammar.NewGrammarLoader().LoadString(string(src))
	if err != nil {
		return err
	}

	printFirstFollow(g)

	if !*flagTable {
		return nil
	}

	text, err := buildTableText(cfg, g, string(src))
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(text)
	return nil
}

func printFirstFollow(g grammar.Grammar) {
	ff := grammar.BuildFirstFollow(g)

	data := [][]string{{"Nonterminal", "FIRST", "FOLLOW"}}
	for _, nt := range g.NonTerminals() {
		first := ff.First(nt)
		var firstTerms []string
		firstTerms = append(firstTerms, first.Terminals.Elements()...)
		if first.Epsilon {
			firstTerms = append(firstTerms, "ε")
		}
		follow := ff.Follow(nt)
		data = append(data, []string{
			nt,
			"{" + strings.Join(firstTerms, ", ") + "}",
			"{" + strings.Join(follow.Elements(), ", ") + "}",
		})
	}

	fmt.Println(rosed.
		Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String())
}

// buildTableText builds (or fetches from cache) the text rendering of the
// configured table construction.
func buildTableText(cfg config, g grammar.Grammar, src string) (string, error) {
	kind := "table-" + cfg.Table
	specHash := artifactcache.HashSpec(src)

	if !*flagNoCache {
		if entry, ok, err := artifactcache.Load(cfg.CacheDir, kind, specHash); err != nil {
			return "", err
		} else if ok {
			return entry.Text, nil
		}
	}

	var text string
	switch cfg.Table {
	case "lr1":
		table, err := parse.NewLr1TableBuilder().Build(g)
		if err != nil {
			return "", err
		}
		text = table.String()
	default:
		table, _, err := parse.NewSlr1Builder().Build(g)
		if err != nil {
			return "", err
		}
		text = table.String()
	}

	if !*flagNoCache {
		entry := artifactcache.Entry{SpecHash: specHash, Kind: kind, Text: text}
		if err := artifactcache.Save(cfg.CacheDir, entry); err != nil {
			return "", err
		}
	}

	return text, nil
}
