// Package printer renders scheme0 values in their canonical textual form.
package printer

import (
	"strconv"
	"strings"

	"github.com/thomasrohde/scheme0/pkg/evaluator"
)

// Print renders a value: numbers in decimal, booleans as #t/#f, symbols as
// their name, nil as (), proper lists as (e1 ... eN), and improper lists as
// (e1 ... eN-1 . last). Rendering a cyclic pair graph is undefined and not
// attempted here.
func Print(v evaluator.Value) string {
	switch t := v.(type) {
	case evaluator.Number:
		return strconv.FormatInt(t.Value, 10)
	case evaluator.Boolean:
		if t.Value {
			return "#t"
		}
		return "#f"
	case evaluator.Symbol:
		return t.Name
	case evaluator.Nil:
		return "()"
	case *evaluator.Pair:
		return printPair(t)
	case *evaluator.Lambda:
		return "#<lambda>"
	case *evaluator.Primitive:
		return "#<builtin " + t.Name + ">"
	}
	return "#<unknown>"
}

func printPair(p *evaluator.Pair) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(Print(p.First))

	curr := p.Second
	for {
		if evaluator.IsNil(curr) {
			break
		}
		next, ok := curr.(*evaluator.Pair)
		if !ok {
			sb.WriteString(" . ")
			sb.WriteString(Print(curr))
			break
		}
		sb.WriteByte(' ')
		sb.WriteString(Print(next.First))
		curr = next.Second
	}

	sb.WriteByte(')')
	return sb.String()
}
