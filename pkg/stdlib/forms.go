package stdlib

import (
	"fmt"

	"github.com/thomasrohde/scheme0/pkg/diagnostics"
	"github.com/thomasrohde/scheme0/pkg/evaluator"
)

// quote (expr) → expr unevaluated
func formQuote(ev *evaluator.Evaluator, operands evaluator.Value, env *evaluator.Env) (evaluator.Value, error) {
	elems, err := operandSlice("quote", operands)
	if err != nil {
		return nil, err
	}
	if err := wantArity("quote", elems, 1); err != nil {
		return nil, err
	}
	return elems[0], nil
}

// and (e...) → first falsy value, else the last evaluated value; empty is #t
func formAnd(ev *evaluator.Evaluator, operands evaluator.Value, env *evaluator.Env) (evaluator.Value, error) {
	elems, err := operandSlice("and", operands)
	if err != nil {
		return nil, err
	}
	var last evaluator.Value = evaluator.NewBoolean(true)
	for _, e := range elems {
		last, err = ev.Eval(e, env)
		if err != nil {
			return nil, err
		}
		if !evaluator.Truthy(last) {
			return last, nil
		}
	}
	return last, nil
}

// or (e...) → first truthy value, else the last evaluated value; empty is #f
func formOr(ev *evaluator.Evaluator, operands evaluator.Value, env *evaluator.Env) (evaluator.Value, error) {
	elems, err := operandSlice("or", operands)
	if err != nil {
		return nil, err
	}
	var last evaluator.Value = evaluator.NewBoolean(false)
	for _, e := range elems {
		last, err = ev.Eval(e, env)
		if err != nil {
			return nil, err
		}
		if evaluator.Truthy(last) {
			return last, nil
		}
	}
	return last, nil
}

// if (cond then [else]) → taken branch; the condition must be a boolean
func formIf(ev *evaluator.Evaluator, operands evaluator.Value, env *evaluator.Env) (evaluator.Value, error) {
	elems, err := operandSlice("if", operands)
	if err != nil {
		return nil, err
	}
	if len(elems) != 2 && len(elems) != 3 {
		return nil, diagnostics.NewRuntimeError(diagnostics.EArity,
			fmt.Sprintf("if expects 2 or 3 operands, got %d", len(elems)))
	}

	cond, err := ev.Eval(elems[0], env)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(evaluator.Boolean)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.EType,
			fmt.Sprintf("if condition must be a boolean, got %s", evaluator.KindName(cond)))
	}

	if b.Value {
		return ev.Eval(elems[1], env)
	}
	if len(elems) == 3 {
		return ev.Eval(elems[2], env)
	}
	return evaluator.NewNil(), nil
}

// define (name expr) binds in the current frame; (define (name params...)
// body...) desugars to a lambda binding.
func formDefine(ev *evaluator.Evaluator, operands evaluator.Value, env *evaluator.Env) (evaluator.Value, error) {
	elems, err := operandSlice("define", operands)
	if err != nil {
		return nil, err
	}
	if len(elems) < 2 {
		return nil, diagnostics.NewRuntimeError(diagnostics.EArity,
			fmt.Sprintf("define expects at least 2 operands, got %d", len(elems)))
	}

	switch target := elems[0].(type) {
	case evaluator.Symbol:
		if len(elems) != 2 {
			return nil, diagnostics.NewRuntimeError(diagnostics.EArity,
				fmt.Sprintf("define expects 2 operands, got %d", len(elems)))
		}
		val, err := ev.Eval(elems[1], env)
		if err != nil {
			return nil, err
		}
		env.Define(target.Name, val)
		return evaluator.NewNil(), nil

	case *evaluator.Pair:
		name, ok := target.First.(evaluator.Symbol)
		if !ok {
			return nil, diagnostics.NewRuntimeError(diagnostics.EType,
				"define shorthand expects a symbol as the function name")
		}
		params, err := paramNames("define", target.Second)
		if err != nil {
			return nil, err
		}
		env.Define(name.Name, &evaluator.Lambda{
			Env:    env,
			Params: params,
			Body:   elems[1:],
		})
		return evaluator.NewNil(), nil
	}

	return nil, diagnostics.NewRuntimeError(diagnostics.EType,
		fmt.Sprintf("define expects a symbol or a list, got %s", evaluator.KindName(elems[0])))
}

// set! (name expr) rebinds an existing variable in the nearest frame
func formSet(ev *evaluator.Evaluator, operands evaluator.Value, env *evaluator.Env) (evaluator.Value, error) {
	elems, err := operandSlice("set!", operands)
	if err != nil {
		return nil, err
	}
	if err := wantArity("set!", elems, 2); err != nil {
		return nil, err
	}
	name, ok := elems[0].(evaluator.Symbol)
	if !ok {
		return nil, diagnostics.NewRuntimeError(diagnostics.EType,
			fmt.Sprintf("set! expects a symbol, got %s", evaluator.KindName(elems[0])))
	}

	val, err := ev.Eval(elems[1], env)
	if err != nil {
		return nil, err
	}
	if !env.Set(name.Name, val) {
		return nil, diagnostics.NewNameError(
			fmt.Sprintf("set!: unbound symbol %q", name.Name))
	}
	return evaluator.NewNil(), nil
}

// setField builds set-car! / set-cdr!: both operands are evaluated, the
// first must yield a pair, and that pair is mutated in place.
func setField(car bool) evaluator.FormFunc {
	name := "set-cdr!"
	if car {
		name = "set-car!"
	}
	return func(ev *evaluator.Evaluator, operands evaluator.Value, env *evaluator.Env) (evaluator.Value, error) {
		elems, err := operandSlice(name, operands)
		if err != nil {
			return nil, err
		}
		if err := wantArity(name, elems, 2); err != nil {
			return nil, err
		}

		target, err := ev.Eval(elems[0], env)
		if err != nil {
			return nil, err
		}
		p, ok := target.(*evaluator.Pair)
		if !ok {
			return nil, diagnostics.NewRuntimeError(diagnostics.EType,
				fmt.Sprintf("%s expects a pair, got %s", name, evaluator.KindName(target)))
		}

		val, err := ev.Eval(elems[1], env)
		if err != nil {
			return nil, err
		}
		if car {
			p.First = val
		} else {
			p.Second = val
		}
		return evaluator.NewNil(), nil
	}
}

// lambda (params body...) → closure over the current environment
func formLambda(ev *evaluator.Evaluator, operands evaluator.Value, env *evaluator.Env) (evaluator.Value, error) {
	elems, err := operandSlice("lambda", operands)
	if err != nil {
		return nil, err
	}
	if len(elems) < 2 {
		return nil, diagnostics.NewRuntimeError(diagnostics.EArity,
			fmt.Sprintf("lambda expects at least 2 operands, got %d", len(elems)))
	}
	params, err := paramNames("lambda", elems[0])
	if err != nil {
		return nil, err
	}
	return &evaluator.Lambda{
		Env:    env,
		Params: params,
		Body:   elems[1:],
	}, nil
}

// paramNames walks a parameter list: nil or a proper list of symbols.
func paramNames(name string, list evaluator.Value) ([]string, error) {
	var params []string
	curr := list
	for {
		switch t := curr.(type) {
		case evaluator.Nil:
			return params, nil
		case *evaluator.Pair:
			sym, ok := t.First.(evaluator.Symbol)
			if !ok {
				return nil, diagnostics.NewRuntimeError(diagnostics.EType,
					fmt.Sprintf("%s: parameters must be symbols, got %s", name, evaluator.KindName(t.First)))
			}
			params = append(params, sym.Name)
			curr = t.Second
		default:
			return nil, diagnostics.NewRuntimeError(diagnostics.EType,
				fmt.Sprintf("%s: parameter list must be a proper list", name))
		}
	}
}
