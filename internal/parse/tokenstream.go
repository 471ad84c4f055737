package parse

import (
	"bufio"
	"io"
	"strings"

	"github.com/dekarrin/gobio/internal/icerrors"
	"github.com/dekarrin/gobio/internal/types"
)

// Coarse token-stream classes a token-stream file's second column may
// declare.
const (
	ClassKeyword   = "KEYWORD"
	ClassID        = "ID"
	ClassNum       = "NUM"
	ClassNumber    = "NUMBER"
	ClassFloat     = "FLOAT"
	ClassOperator  = "OPERATOR"
	ClassDelimiter = "DELIMITER"
	ClassEOF       = "EOF"
)

// SymbolMap resolves a single-character OPERATOR or DELIMITER lexeme to
// the terminal symbol name a grammar declares for it. Multi-character
// operators (:=, <=, >=, <>, ==, !=, ++, --) are recognized directly by
// ConvertTokenClass and never consult this map.
type SymbolMap struct {
	Operators  map[string]string
	Delimiters map[string]string
}

// ConvertTokenClass maps one token-stream line's (class, lexeme) pair to
// the terminal symbol name the grammar declares for it: KEYWORD passes the
// lexeme through unchanged (a keyword is its own token class), ID and
// NUM/NUMBER collapse to "ID"/"NUMBER", FLOAT passes through, and
// OPERATOR/DELIMITER consult m after checking the fixed multi-character
// operators every token-stream grammar shares.
func ConvertTokenClass(m SymbolMap, class, lexeme string) string {
	switch class {
	case ClassKeyword:
		return lexeme
	case ClassID:
		return "ID"
	case ClassNum, ClassNumber:
		return "NUMBER"
	case ClassFloat:
		return "FLOAT"
	case ClassOperator:
		switch lexeme {
		case ":=":
			return "ASSIGN"
		case "<=":
			return "LTEQ"
		case ">=":
			return "RTEQ"
		case "<>":
			return "NE"
		case "==":
			return "EQ"
		case "!=":
			return "NE"
		case "++":
			return "INC"
		case "--":
			return "DEC"
		}
		if sym, ok := m.Operators[lexeme]; ok {
			return sym
		}
		return lexeme
	case ClassDelimiter:
		if sym, ok := m.Delimiters[lexeme]; ok {
			return sym
		}
		return lexeme
	}
	return class
}

// DefaultSymbolMap is the single-character OPERATOR/DELIMITER mapping
// shared by the TINY and MiniC example languages a token-stream file is
// commonly generated from.
func DefaultSymbolMap() SymbolMap {
	return SymbolMap{
		Operators: map[string]string{
			":": "ASSIGN", "=": "EQ",
			"+": "PLUS", "-": "MINUS", "*": "MULTIPLY", "/": "DIVIDE",
			"%": "MOD", "^": "POWER", "<": "LT", ">": "RT",
		},
		Delimiters: map[string]string{
			";": "SEMI", "(": "LPAREN", ")": "RPAREN",
			"{": "LBRACE", "}": "RBRACE", "[": "LBRACKET", "]": "RBRACKET",
			",": "COMMA",
		},
	}
}

// ReadTokenStream parses the token-stream text format a standalone lexer
// can emit as a ParseDriver's input in place of running the lexer engine
// itself: one token per line, `<n>: <CLASS>, <lexeme>`, over classes
// KEYWORD/ID/NUM/FLOAT/OPERATOR/DELIMITER/EOF. Blank lines and lines
// containing "===" (a section banner some lexer dumps emit) are skipped.
// A trailing end-of-input token is always appended, whether or not the
// stream already ended with one of its own.
func ReadTokenStream(r io.Reader, m SymbolMap) (types.TokenStream, error) {
	var toks []types.Token

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" || strings.Contains(text, "===") {
			continue
		}

		_, rest, ok := strings.Cut(text, ":")
		if !ok {
			return nil, icerrors.NewAt(icerrors.SpecSyntax, icerrors.Position{Line: line, FullLine: text},
				"token-stream line missing ':': %q", text)
		}

		class, lexeme, ok := strings.Cut(rest, ",")
		if !ok {
			return nil, icerrors.NewAt(icerrors.SpecSyntax, icerrors.Position{Line: line, FullLine: text},
				"token-stream line missing ',': %q", text)
		}
		class = strings.TrimSpace(class)
		lexeme = strings.TrimSpace(lexeme)

		if class == ClassEOF {
			continue
		}

		symbol := ConvertTokenClass(m, class, lexeme)
		toks = append(toks, types.NewToken(types.MakeDefaultClass(symbol), lexeme, line, 1, text))
	}
	if err := scanner.Err(); err != nil {
		return nil, icerrors.Wrap(icerrors.MissingInput, err, "reading token stream")
	}

	toks = append(toks, types.NewToken(types.TokenEndOfText, "", line, 1, ""))
	return types.NewSliceStream(toks), nil
}
