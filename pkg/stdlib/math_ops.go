package stdlib

import (
	"github.com/thomasrohde/scheme0/pkg/diagnostics"
	"github.com/thomasrohde/scheme0/pkg/evaluator"
)

// abs (n) → absolute value
func stdlibAbs(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("abs", args, 1); err != nil {
		return nil, err
	}
	n, err := asNumber("abs", args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = -n
	}
	return evaluator.NewNumber(n), nil
}

// compareChain builds a chained comparison over adjacent argument pairs.
// Zero or one argument is trivially #t.
func compareChain(name string, cmp func(a, b int64) bool) evaluator.ProcFunc {
	return func(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
		nums, err := asNumbers(name, args)
		if err != nil {
			return nil, err
		}
		for i := 0; i+1 < len(nums); i++ {
			if !cmp(nums[i], nums[i+1]) {
				return evaluator.NewBoolean(false), nil
			}
		}
		return evaluator.NewBoolean(true), nil
	}
}

// foldWithIdentity builds a left fold that yields the identity on zero
// arguments.
func foldWithIdentity(name string, identity int64, op func(a, b int64) (int64, error)) evaluator.ProcFunc {
	return func(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
		nums, err := asNumbers(name, args)
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return evaluator.NewNumber(identity), nil
		}
		return foldNums(nums, op)
	}
}

// foldNonEmpty builds a left fold that rejects zero arguments.
func foldNonEmpty(name string, op func(a, b int64) (int64, error)) evaluator.ProcFunc {
	return func(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
		nums, err := asNumbers(name, args)
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, diagnostics.NewRuntimeError(diagnostics.EArity,
				name+" expects at least 1 argument")
		}
		return foldNums(nums, op)
	}
}

func foldNums(nums []int64, op func(a, b int64) (int64, error)) (evaluator.Value, error) {
	res := nums[0]
	for _, n := range nums[1:] {
		var err error
		res, err = op(res, n)
		if err != nil {
			return nil, err
		}
	}
	return evaluator.NewNumber(res), nil
}

// divide truncates toward zero, matching Go's integer division.
func divide(a, b int64) (int64, error) {
	if b == 0 {
		return 0, diagnostics.NewRuntimeError(diagnostics.EDivZero, "division by zero")
	}
	return a / b, nil
}
