package stdlib

import (
	"github.com/thomasrohde/scheme0/pkg/evaluator"
)

// boolean? (v) → #t iff v is a boolean
func stdlibIsBoolean(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("boolean?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(evaluator.Boolean)
	return evaluator.NewBoolean(ok), nil
}

// number? (v) → #t iff v is a number
func stdlibIsNumber(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("number?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(evaluator.Number)
	return evaluator.NewBoolean(ok), nil
}

// symbol? (v) → #t iff v is a symbol
func stdlibIsSymbol(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("symbol?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(evaluator.Symbol)
	return evaluator.NewBoolean(ok), nil
}

// pair? (v) → #t iff v is a cons cell
func stdlibIsPair(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("pair?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*evaluator.Pair)
	return evaluator.NewBoolean(ok), nil
}

// null? (v) → #t iff v is the empty list
func stdlibIsNull(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("null?", args, 1); err != nil {
		return nil, err
	}
	return evaluator.NewBoolean(evaluator.IsNil(args[0])), nil
}

// list? (v) → #t iff v is nil or a pair chain terminating in nil
func stdlibIsList(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("list?", args, 1); err != nil {
		return nil, err
	}
	return evaluator.NewBoolean(evaluator.IsProperList(args[0])), nil
}

// not (v) → #t iff v is the literal #f
func stdlibNot(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("not", args, 1); err != nil {
		return nil, err
	}
	return evaluator.NewBoolean(!evaluator.Truthy(args[0])), nil
}
