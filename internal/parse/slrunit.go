package parse

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/gobio/internal/grammar"
	"github.com/dekarrin/gobio/internal/icerrors"
)

// emptyProductionText is the RHS text SLRVectorToString writes for an
// epsilon production, matching the grammar text format's own marker.
const emptyProductionText = "@"

// SLRUnit is one parse-table state's full ACTION/GOTO row, keyed by symbol
// (terminal or nonterminal) and keeping both tables in a single map exactly
// as the Regex2Lex/SLR1Processer toolchain's SLRUnit does. A []SLRUnit's
// index is the state id it describes; index 0 is always the table's
// initial state.
//
// Values are encoded as:
//   - "s<n>"      shift to state n, stored on a terminal key
//   - "r(A->a b)" reduce by A -> a b ("@" for an epsilon production)
//   - "ACCEPT"    accept, stored on the end-of-input key "$"
//   - "<n>"       goto state n, stored on a nonterminal key
type SLRUnit struct {
	M map[string]string
}

// SLRVectorToString renders units in the module's SLRUnit text format.
func SLRVectorToString(units []SLRUnit) string {
	var sb strings.Builder
	for _, u := range units {
		sb.WriteString("SLRUnit\n{\n")

		keys := make([]string, 0, len(u.M))
		for k := range u.M {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(&sb, "    Key: %s\n", k)
			fmt.Fprintf(&sb, "    Value: %s\n", u.M[k])
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

// StringToSLRVector parses the text format SLRVectorToString produces,
// returning an icerrors.TableIO error on any malformed line.
func StringToSLRVector(s string) ([]SLRUnit, error) {
	var vec []SLRUnit
	var cur SLRUnit
	var pendingKey string
	haveKey := false
	lineNo := 0

	scanner := bufio.NewScanner(strings.NewReader(s))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "SLRUnit":
			cur = SLRUnit{M: map[string]string{}}
		case line == "{":
			// block open, nothing to do
		case line == "}":
			vec = append(vec, cur)
		case strings.HasPrefix(line, "Key: "):
			pendingKey = strings.TrimPrefix(line, "Key: ")
			haveKey = true
		case strings.HasPrefix(line, "Value: "):
			if !haveKey {
				return nil, icerrors.NewAt(icerrors.TableIO, icerrors.Position{Line: lineNo, FullLine: line},
					"SLRUnit Value with no preceding Key")
			}
			cur.M[pendingKey] = strings.TrimPrefix(line, "Value: ")
			haveKey = false
		default:
			return nil, icerrors.NewAt(icerrors.TableIO, icerrors.Position{Line: lineNo, FullLine: line},
				"malformed SLRUnit line: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, icerrors.Wrap(icerrors.TableIO, err, "reading SLRUnit text")
	}
	return vec, nil
}

// encodeReduce renders a reduce action's symbol/production as the
// "r(A->a b)" text SLRVectorToString expects.
func encodeReduce(nonTerminal string, symbols []string) string {
	rhs := emptyProductionText
	if len(symbols) > 0 {
		rhs = strings.Join(symbols, " ")
	}
	return fmt.Sprintf("r(%s->%s)", nonTerminal, rhs)
}

// decodeAction parses one SLRUnit action-table value back into an Action.
func decodeAction(val string) (Action, error) {
	switch {
	case val == "ACCEPT":
		return Action{Type: Accept}, nil
	case strings.HasPrefix(val, "s"):
		if _, err := strconv.Atoi(val[1:]); err != nil {
			return Action{}, fmt.Errorf("malformed shift action %q", val)
		}
		return Action{Type: Shift, State: val[1:]}, nil
	case strings.HasPrefix(val, "r(") && strings.HasSuffix(val, ")"):
		body := strings.TrimSuffix(strings.TrimPrefix(val, "r("), ")")
		lhs, rhs, ok := strings.Cut(body, "->")
		if !ok {
			return Action{}, fmt.Errorf("malformed reduce action %q", val)
		}
		var symbols []string
		if rhs != emptyProductionText {
			symbols = strings.Fields(rhs)
		}
		return Action{
			Type:       Reduce,
			Symbol:     lhs,
			Production: grammar.Production{NonTerminal: lhs, Symbols: symbols},
		}, nil
	default:
		return Action{}, fmt.Errorf("unrecognized SLRUnit action value %q", val)
	}
}

// importedTable is a Table backed directly by a parsed []SLRUnit, with no
// dependency on the grammar or canonical collection that produced it — the
// imported table IS the []SLRUnit.
type importedTable struct {
	units []SLRUnit
}

// LoadTable reconstructs a Table from previously-exported SLRUnit text
// (Table.String's own output), so a parser can be driven straight off a
// saved table without recomputing it from the grammar.
func LoadTable(s string) (Table, error) {
	units, err := StringToSLRVector(s)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, icerrors.New(icerrors.TableIO, "SLRUnit text describes no states")
	}
	return &importedTable{units: units}, nil
}

func (t *importedTable) Initial() string { return "0" }

func (t *importedTable) Action(state, a string) Action {
	idx, err := strconv.Atoi(state)
	if err != nil || idx < 0 || idx >= len(t.units) {
		return Action{Type: Error}
	}
	val, ok := t.units[idx].M[a]
	if !ok {
		return Action{Type: Error}
	}
	act, err := decodeAction(val)
	if err != nil {
		return Action{Type: Error}
	}
	return act
}

func (t *importedTable) Goto(state, nonTerm string) (string, error) {
	idx, err := strconv.Atoi(state)
	if err != nil || idx < 0 || idx >= len(t.units) {
		return "", fmt.Errorf("no such state %q", state)
	}
	val, ok := t.units[idx].M[nonTerm]
	if !ok {
		return "", fmt.Errorf("GOTO[%q, %q] is an error entry", state, nonTerm)
	}
	if _, err := strconv.Atoi(val); err != nil {
		return "", fmt.Errorf("GOTO[%q, %q] value %q is not a state id", state, nonTerm, val)
	}
	return val, nil
}

func (t *importedTable) String() string {
	return SLRVectorToString(t.units)
}
