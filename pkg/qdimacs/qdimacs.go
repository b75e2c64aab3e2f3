// Package qdimacs parses the QDIMACS input format: a prenex quantified CNF
// where the first quantifier block is universal and the second is
// existential. It is an external collaborator per the synthesis engine's
// interface contract (spec.md §6) - callers needing a different loader
// only need to produce a *cnf.Spec.
package qdimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/operator-framework/basissynth/pkg/cnf"
)

// ParseError reports a malformed-input failure at a specific line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("qdimacs: line %d: %s", e.Line, e.Msg)
}

// Parse reads a QDIMACS document from r and returns the resulting Spec.
// The first "a ..." line declares universal variables, the first "e ..."
// line declares existential variables; additional quantifier blocks are
// rejected since the engine only supports one alternation (∃Y. ∀X or
// ∀X. ∃Y collapsed to the two-level partition spec.md assumes).
func Parse(r io.Reader) (*cnf.Spec, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var x, y []cnf.Variable
	var haveX, haveY bool
	var nVars, nClauses int
	var haveHeader bool
	var clauses []cnf.Clause

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		switch text[0] {
		case 'c':
			continue
		case 'p':
			fields := strings.Fields(text)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, &ParseError{line, "malformed problem line, expected 'p cnf <vars> <clauses>'"}
			}
			var err error
			if nVars, err = strconv.Atoi(fields[2]); err != nil {
				return nil, &ParseError{line, "non-integer variable count"}
			}
			if nClauses, err = strconv.Atoi(fields[3]); err != nil {
				return nil, &ParseError{line, "non-integer clause count"}
			}
			haveHeader = true
		case 'a', 'e':
			if !haveHeader {
				return nil, &ParseError{line, "quantifier block before problem line"}
			}
			vars, err := parseIntList(text[1:], line)
			if err != nil {
				return nil, err
			}
			vs := make([]cnf.Variable, len(vars))
			for i, n := range vars {
				if n <= 0 {
					return nil, &ParseError{line, "quantifier block contains non-positive variable id"}
				}
				vs[i] = cnf.Variable(n)
			}
			if text[0] == 'a' {
				if haveX {
					return nil, &ParseError{line, "multiple universal quantifier blocks unsupported"}
				}
				x = vs
				haveX = true
			} else {
				if haveY {
					return nil, &ParseError{line, "multiple existential quantifier blocks unsupported"}
				}
				y = vs
				haveY = true
			}
		default:
			if !haveHeader {
				return nil, &ParseError{line, "clause before problem line"}
			}
			ints, err := parseIntList(text, line)
			if err != nil {
				return nil, err
			}
			if len(ints) == 0 || ints[len(ints)-1] != 0 {
				return nil, &ParseError{line, "clause must end with 0"}
			}
			ints = ints[:len(ints)-1]
			cl := make(cnf.Clause, len(ints))
			for i, n := range ints {
				if n == 0 {
					return nil, &ParseError{line, "unexpected 0 within clause"}
				}
				if n > 0 {
					cl[i] = cnf.Lit(cnf.Variable(n), true)
				} else {
					cl[i] = cnf.Lit(cnf.Variable(-n), false)
				}
			}
			clauses = append(clauses, cl)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("qdimacs: %w", err)
	}
	if !haveHeader {
		return nil, &ParseError{line, "missing problem line"}
	}
	if nVars < 0 || nClauses < 0 {
		return nil, &ParseError{line, "negative header counts"}
	}
	if nClauses != len(clauses) {
		return nil, &ParseError{line, fmt.Sprintf("declared %d clauses but found %d", nClauses, len(clauses))}
	}

	return cnf.NewSpec(clauses, x, y), nil
}

func parseIntList(s string, line int) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ParseError{line, fmt.Sprintf("non-integer token %q", f)}
		}
		out = append(out, n)
	}
	return out, nil
}
