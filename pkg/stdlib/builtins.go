package stdlib

import (
	"fmt"

	"github.com/thomasrohde/scheme0/pkg/diagnostics"
	"github.com/thomasrohde/scheme0/pkg/evaluator"
)

// RegisterDefaults adds the full primitive catalog.
func RegisterDefaults(r *Registry) {
	// Predicates
	r.RegisterProc("boolean?", stdlibIsBoolean)
	r.RegisterProc("number?", stdlibIsNumber)
	r.RegisterProc("symbol?", stdlibIsSymbol)
	r.RegisterProc("pair?", stdlibIsPair)
	r.RegisterProc("null?", stdlibIsNull)
	r.RegisterProc("list?", stdlibIsList)
	r.RegisterProc("not", stdlibNot)

	// Arithmetic and comparison
	r.RegisterProc("abs", stdlibAbs)
	r.RegisterProc("=", compareChain("=", func(a, b int64) bool { return a == b }))
	r.RegisterProc("<", compareChain("<", func(a, b int64) bool { return a < b }))
	r.RegisterProc(">", compareChain(">", func(a, b int64) bool { return a > b }))
	r.RegisterProc("<=", compareChain("<=", func(a, b int64) bool { return a <= b }))
	r.RegisterProc(">=", compareChain(">=", func(a, b int64) bool { return a >= b }))
	r.RegisterProc("+", foldWithIdentity("+", 0, func(a, b int64) (int64, error) { return a + b, nil }))
	r.RegisterProc("*", foldWithIdentity("*", 1, func(a, b int64) (int64, error) { return a * b, nil }))
	r.RegisterProc("-", foldNonEmpty("-", func(a, b int64) (int64, error) { return a - b, nil }))
	r.RegisterProc("/", foldNonEmpty("/", divide))
	r.RegisterProc("min", foldNonEmpty("min", func(a, b int64) (int64, error) {
		if b < a {
			return b, nil
		}
		return a, nil
	}))
	r.RegisterProc("max", foldNonEmpty("max", func(a, b int64) (int64, error) {
		if b > a {
			return b, nil
		}
		return a, nil
	}))

	// List ops
	r.RegisterProc("cons", stdlibCons)
	r.RegisterProc("car", stdlibCar)
	r.RegisterProc("cdr", stdlibCdr)
	r.RegisterProc("list", stdlibList)
	r.RegisterProc("list-ref", stdlibListRef)
	r.RegisterProc("list-tail", stdlibListTail)

	// Special forms
	r.RegisterForm("quote", formQuote)
	r.RegisterForm("and", formAnd)
	r.RegisterForm("or", formOr)
	r.RegisterForm("if", formIf)
	r.RegisterForm("define", formDefine)
	r.RegisterForm("set!", formSet)
	r.RegisterForm("set-car!", setField(true))
	r.RegisterForm("set-cdr!", setField(false))
	r.RegisterForm("lambda", formLambda)
}

// --- shared argument helpers ---

func wantArity(name string, args []evaluator.Value, n int) error {
	if len(args) != n {
		return diagnostics.NewRuntimeError(diagnostics.EArity,
			fmt.Sprintf("%s expects %d arguments, got %d", name, n, len(args)))
	}
	return nil
}

func asNumber(name string, v evaluator.Value) (int64, error) {
	num, ok := v.(evaluator.Number)
	if !ok {
		return 0, diagnostics.NewRuntimeError(diagnostics.EType,
			fmt.Sprintf("%s expects a number, got %s", name, evaluator.KindName(v)))
	}
	return num.Value, nil
}

func asNumbers(name string, args []evaluator.Value) ([]int64, error) {
	nums := make([]int64, len(args))
	for i, v := range args {
		n, err := asNumber(name, v)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}

// operandSlice splits a raw operand list into a slice without evaluating.
func operandSlice(name string, operands evaluator.Value) ([]evaluator.Value, error) {
	var elems []evaluator.Value
	curr := operands
	for {
		switch t := curr.(type) {
		case evaluator.Nil:
			return elems, nil
		case *evaluator.Pair:
			elems = append(elems, t.First)
			curr = t.Second
		default:
			return nil, diagnostics.NewRuntimeError(diagnostics.EType,
				fmt.Sprintf("%s: malformed operand list", name))
		}
	}
}
