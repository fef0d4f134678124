package stdlib

import (
	"fmt"

	"github.com/thomasrohde/scheme0/pkg/diagnostics"
	"github.com/thomasrohde/scheme0/pkg/evaluator"
)

// cons (a b) → fresh pair
func stdlibCons(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("cons", args, 2); err != nil {
		return nil, err
	}
	return evaluator.NewPair(args[0], args[1]), nil
}

// car (p) → first field of a pair
func stdlibCar(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("car", args, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(*evaluator.Pair)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.EType,
			fmt.Sprintf("car expects a pair, got %s", evaluator.KindName(args[0])))
	}
	return p.First, nil
}

// cdr (p) → second field of a pair
func stdlibCdr(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("cdr", args, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(*evaluator.Pair)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.EType,
			fmt.Sprintf("cdr expects a pair, got %s", evaluator.KindName(args[0])))
	}
	return p.Second, nil
}

// list (v...) → proper list of the arguments
func stdlibList(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	res := evaluator.NewNil()
	for i := len(args) - 1; i >= 0; i-- {
		res = evaluator.NewPair(args[i], res)
	}
	return res, nil
}

// list-ref (l k) → k-th element, 0-indexed
func stdlibListRef(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("list-ref", args, 2); err != nil {
		return nil, err
	}
	k, err := asNumber("list-ref", args[1])
	if err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, diagnostics.NewRuntimeError(diagnostics.EIndex, "list-ref: index out of range")
	}

	tail, err := walkTail("list-ref", args[0], k)
	if err != nil {
		return nil, err
	}
	p, ok := tail.(*evaluator.Pair)
	if !ok {
		if evaluator.IsNil(tail) {
			return nil, diagnostics.NewRuntimeError(diagnostics.EIndex, "list-ref: index out of range")
		}
		return nil, diagnostics.NewRuntimeError(diagnostics.EType,
			fmt.Sprintf("list-ref expects a list, got %s", evaluator.KindName(tail)))
	}
	return p.First, nil
}

// list-tail (l k) → suffix beginning at index k; k == length yields ()
func stdlibListTail(ev *evaluator.Evaluator, args []evaluator.Value) (evaluator.Value, error) {
	if err := wantArity("list-tail", args, 2); err != nil {
		return nil, err
	}
	k, err := asNumber("list-tail", args[1])
	if err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, diagnostics.NewRuntimeError(diagnostics.EIndex, "list-tail: index out of range")
	}
	return walkTail("list-tail", args[0], k)
}

// walkTail advances k pairs into l, sharing structure with the input.
func walkTail(name string, l evaluator.Value, k int64) (evaluator.Value, error) {
	curr := l
	for ; k > 0; k-- {
		p, ok := curr.(*evaluator.Pair)
		if !ok {
			if evaluator.IsNil(curr) {
				return nil, diagnostics.NewRuntimeError(diagnostics.EIndex,
					name+": index out of range")
			}
			return nil, diagnostics.NewRuntimeError(diagnostics.EType,
				fmt.Sprintf("%s expects a list, got %s", name, evaluator.KindName(curr)))
		}
		curr = p.Second
	}
	return curr, nil
}
