package lex

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/dekarrin/gobio/internal/icerrors"
	"github.com/dekarrin/gobio/internal/types"
)

// SpecLoader parses the module's lexical-specification text format into a
// slice of Rule plus the variable bindings RegexPreprocessor needs, ready
// to hand to Compile.
//
// Format, one declaration per line, each of form `name = regex`:
//
//	letter = [A-Za-z]
//	digit  = [0-9]
//	_id100 = letter(letter|digit)*
//	_num200 = digit+
//	_keyword300S = read|write|if|then|else|end|repeat|until
//
// A name that does not begin with `_` is a variable binding: its regex is
// reusable inside later lines by referencing the bare name wherever it
// appears as a whole word (RegexPreprocessor substitutes it). A name
// beginning with `_` is a token rule to be compiled, of the form
// `_IDENTnumber` or `_IDENTnumberS`: the numeric suffix is the token's
// code, and a trailing `S` marks a multi-keyword rule whose `|`-separated
// alternatives each receive a successive code starting at that number, one
// rule per alternative (each named after its own literal text). Token
// rule and variable names are conventionally lowercase, matching a
// grammar's terminal symbols (GrammarLoader's nonterminals are
// conventionally uppercase).
type SpecLoader struct{}

// NewSpecLoader returns a SpecLoader.
func NewSpecLoader() SpecLoader { return SpecLoader{} }

// LoadString parses a lexical spec from a string.
func (l SpecLoader) LoadString(src string) ([]Rule, map[string]string, error) {
	return l.Load(strings.NewReader(src))
}

// Load parses a lexical spec from r.
func (l SpecLoader) Load(r io.Reader) ([]Rule, map[string]string, error) {
	vars := map[string]string{}
	var rules []Rule

	scanner := bufio.NewScanner(r)
	lineNo := 0
	priority := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		name, pattern, ok := strings.Cut(line, "=")
		if !ok {
			return nil, nil, icerrors.NewAt(icerrors.SpecSyntax,
				icerrors.Position{Line: lineNo, Col: 1, FullLine: scanner.Text()},
				"missing '=' in lexical spec line")
		}
		name = strings.TrimSpace(name)
		pattern = strings.TrimSpace(pattern)
		if name == "" || pattern == "" {
			return nil, nil, icerrors.NewAt(icerrors.SpecSyntax,
				icerrors.Position{Line: lineNo, Col: 1, FullLine: scanner.Text()},
				"empty name or pattern in lexical spec line")
		}

		if !strings.HasPrefix(name, "_") {
			vars[name] = pattern
			continue
		}

		tokenName, code, multi, err := parseTokenRuleName(name[1:])
		if err != nil {
			return nil, nil, icerrors.NewAt(icerrors.SpecSyntax,
				icerrors.Position{Line: lineNo, Col: 1, FullLine: scanner.Text()},
				"%s", err.Error())
		}

		if multi {
			alts := strings.Split(pattern, "|")
			n := 0
			for _, alt := range alts {
				alt = strings.TrimSpace(alt)
				if alt == "" {
					continue
				}
				rules = append(rules, Rule{
					Class:    types.MakeDefaultClass(alt),
					Pattern:  escapeLiteral(alt),
					Code:     code + n,
					Priority: priority,
				})
				priority++
				n++
			}
			if n == 0 {
				return nil, nil, icerrors.NewAt(icerrors.SpecSyntax,
					icerrors.Position{Line: lineNo, Col: 1, FullLine: scanner.Text()},
					"multi-keyword rule %q has no '|'-separated alternatives", name)
			}
		} else {
			rules = append(rules, Rule{
				Class:    types.MakeDefaultClass(tokenName),
				Pattern:  pattern,
				Code:     code,
				Priority: priority,
			})
			priority++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, icerrors.Wrap(icerrors.MissingInput, err, "reading lexical spec")
	}

	if len(rules) == 0 {
		return nil, nil, icerrors.New(icerrors.SpecSyntax, "lexical spec has no compilable rules (no line name begins with '_')")
	}

	return rules, vars, nil
}

// parseTokenRuleName splits a token-rule name's pure part (the text after
// the leading `_`) into its base name and numeric code, per the
// `IDENTnumber`/`IDENTnumberS` form: the trailing digits are the code, and
// a trailing `S`/`s` after the digits marks a multi-keyword rule.
func parseTokenRuleName(pure string) (name string, code int, multi bool, err error) {
	if strings.HasSuffix(pure, "S") || strings.HasSuffix(pure, "s") {
		multi = true
		pure = pure[:len(pure)-1]
	}

	numStart := len(pure)
	for i, r := range pure {
		if r >= '0' && r <= '9' {
			numStart = i
			break
		}
	}

	name = pure[:numStart]
	if name == "" {
		return "", 0, false, icerrors.New(icerrors.SpecSyntax, "token rule name has no identifier before its numeric code")
	}

	numPart := pure[numStart:]
	if numPart != "" {
		code, err = strconv.Atoi(numPart)
		if err != nil {
			return "", 0, false, icerrors.New(icerrors.SpecSyntax, "malformed token code in rule name %q", pure)
		}
	}

	return name, code, multi, nil
}

// escapeLiteral backslash-escapes any byte a regex would otherwise treat
// as an operator, producing a pattern that matches alt's literal text
// exactly. Used for the individual keywords split out of a multi-keyword
// rule, whose alternatives are plain text, not regex.
func escapeLiteral(alt string) string {
	var sb strings.Builder
	for _, r := range alt {
		switch r {
		case '(', ')', '|', '*', '+', '?', '.', '[', ']', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
