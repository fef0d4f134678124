// Package reader builds scheme0 expression trees from a token stream.
package reader

import (
	"fmt"

	"github.com/thomasrohde/scheme0/pkg/diagnostics"
	"github.com/thomasrohde/scheme0/pkg/evaluator"
	"github.com/thomasrohde/scheme0/pkg/lexer"
)

func syntaxErr(tok lexer.Token, msg string) error {
	span := tok.Span
	return diagnostics.NewSyntaxError(diagnostics.EParse, msg, &span)
}

// Read produces one expression from the tokenizer, leaving it positioned
// after that expression. The caller decides whether trailing tokens are
// acceptable.
func Read(tz *lexer.Tokenizer) (evaluator.Value, error) {
	if tz.IsEnd() {
		return nil, syntaxErr(tz.Peek(), "unexpected end of input")
	}

	tok := tz.Peek()
	tz.Advance()

	switch tok.Type {
	case lexer.TokConstant:
		return evaluator.NewNumber(tok.Num), nil

	case lexer.TokBoolean:
		return evaluator.NewBoolean(tok.Bool), nil

	case lexer.TokSymbol:
		return evaluator.NewSymbol(tok.Text), nil

	case lexer.TokQuote:
		if tz.IsEnd() {
			return nil, syntaxErr(tz.Peek(), "expected an expression after quote")
		}
		quoted, err := Read(tz)
		if err != nil {
			return nil, err
		}
		return evaluator.NewPair(
			evaluator.NewSymbol("quote"),
			evaluator.NewPair(quoted, evaluator.NewNil()),
		), nil

	case lexer.TokOpenParen:
		return readList(tz, tok)

	case lexer.TokCloseParen:
		return nil, syntaxErr(tok, "unexpected ')'")

	case lexer.TokDot:
		return nil, syntaxErr(tok, "unexpected '.' outside a list")
	}

	return nil, syntaxErr(tok, "unexpected token")
}

// ReadAll reads expressions until the tokenizer is exhausted.
func ReadAll(tz *lexer.Tokenizer) ([]evaluator.Value, error) {
	var exprs []evaluator.Value
	for !tz.IsEnd() {
		expr, err := Read(tz)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// readList consumes list elements after an already-consumed '(' up to the
// matching ')'. A proper list becomes right-nested pairs terminated by Nil;
// a dotted list must carry exactly one dot, followed by exactly one
// expression before the ')'.
func readList(tz *lexer.Tokenizer, open lexer.Token) (evaluator.Value, error) {
	var elems []evaluator.Value
	dotPos := -1

	for {
		if tz.IsEnd() {
			return nil, syntaxErr(open, "unterminated list: expected ')'")
		}

		tok := tz.Peek()
		if tok.Type == lexer.TokCloseParen {
			tz.Advance()
			break
		}
		if tok.Type == lexer.TokDot {
			if dotPos >= 0 {
				return nil, syntaxErr(tok, "more than one '.' in a list")
			}
			dotPos = len(elems)
			tz.Advance()
			continue
		}

		elem, err := Read(tz)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}

	if dotPos < 0 {
		if len(elems) == 0 {
			return evaluator.NewNil(), nil
		}
		if err := validateForm(open, elems); err != nil {
			return nil, err
		}
		return buildList(elems, evaluator.NewNil()), nil
	}

	// (a b . c): the dot sits before the final expression.
	if dotPos != len(elems)-1 || dotPos == 0 {
		return nil, syntaxErr(open, "misplaced '.' in a list")
	}
	tail := elems[len(elems)-1]
	return buildList(elems[:len(elems)-1], tail), nil
}

func buildList(elems []evaluator.Value, tail evaluator.Value) evaluator.Value {
	res := tail
	for i := len(elems) - 1; i >= 0; i-- {
		res = evaluator.NewPair(elems[i], res)
	}
	return res
}

// validateForm performs the read-time structural checks on special forms:
// if takes 2 or 3 operands; define and set! take exactly 2 operands unless
// the first operand is itself a list (the define shorthand), which needs at
// least one body expression; lambda takes a parameter list plus at least one
// body expression.
func validateForm(open lexer.Token, elems []evaluator.Value) error {
	head, ok := elems[0].(evaluator.Symbol)
	if !ok {
		return nil
	}

	switch head.Name {
	case "if":
		if len(elems) != 3 && len(elems) != 4 {
			return syntaxErr(open, "if takes a condition and 1 or 2 branches")
		}
	case "define", "set!":
		if len(elems) >= 2 {
			if _, isList := elems[1].(*evaluator.Pair); isList {
				if len(elems) < 3 {
					return syntaxErr(open, fmt.Sprintf("%s shorthand needs at least one body expression", head.Name))
				}
				return nil
			}
		}
		if len(elems) != 3 {
			return syntaxErr(open, fmt.Sprintf("%s takes exactly 2 operands", head.Name))
		}
	case "lambda":
		if len(elems) < 3 {
			return syntaxErr(open, "lambda takes a parameter list and at least one body expression")
		}
	}
	return nil
}
