package evaluator

import (
	"fmt"

	"github.com/thomasrohde/scheme0/pkg/diagnostics"
)

// Evaluator walks expression trees against an environment chain. Primitives
// are looked up in a process-wide table keyed by name, established at
// construction and never mutated afterwards.
type Evaluator struct {
	prims   map[string]*Primitive
	budget  Budget
	tracker BudgetTracker
}

// Options configures an Evaluator.
type Options struct {
	Primitives map[string]*Primitive
	Budget     Budget
}

// New creates an Evaluator over the given primitive table.
func New(opts Options) *Evaluator {
	return &Evaluator{
		prims:  opts.Primitives,
		budget: opts.Budget,
	}
}

// ResetBudget clears consumption counters before a top-level evaluation.
func (ev *Evaluator) ResetBudget() {
	ev.tracker = BudgetTracker{}
}

// Lookup returns the primitive registered under name, if any.
func (ev *Evaluator) Lookup(name string) (*Primitive, bool) {
	p, ok := ev.prims[name]
	return p, ok
}

func (ev *Evaluator) enter() error {
	ev.tracker.Depth++
	ev.tracker.Steps++
	if ev.budget.MaxDepth > 0 && ev.tracker.Depth > ev.budget.MaxDepth {
		return diagnostics.NewRuntimeError(diagnostics.EDepth,
			fmt.Sprintf("evaluation depth exceeded (max %d)", ev.budget.MaxDepth))
	}
	if ev.budget.MaxSteps > 0 && ev.tracker.Steps > ev.budget.MaxSteps {
		return diagnostics.NewRuntimeError(diagnostics.EDepth,
			fmt.Sprintf("evaluation step budget exceeded (max %d)", ev.budget.MaxSteps))
	}
	return nil
}

func (ev *Evaluator) leave() {
	ev.tracker.Depth--
}

// Eval evaluates one expression in env.
//
// Numbers, booleans, nil, lambdas, and builtins evaluate to themselves.
// A symbol resolves first against the primitive table, then through the
// environment chain. A pair evaluates its head to a callable and hands the
// callable the raw operand list; the callee decides which operands to
// evaluate.
func (ev *Evaluator) Eval(expr Value, env *Env) (Value, error) {
	if err := ev.enter(); err != nil {
		return nil, err
	}
	defer ev.leave()

	switch t := expr.(type) {
	case Number, Boolean, Nil, *Lambda, *Primitive:
		return expr, nil

	case Symbol:
		if prim, ok := ev.prims[t.Name]; ok {
			return prim, nil
		}
		if val, ok := env.Get(t.Name); ok {
			return val, nil
		}
		return nil, diagnostics.NewNameError(fmt.Sprintf("unbound symbol %q", t.Name))

	case *Pair:
		callee, err := ev.Eval(t.First, env)
		if err != nil {
			return nil, err
		}
		return ev.Apply(callee, t.Second, env)
	}

	return nil, diagnostics.NewRuntimeError(diagnostics.EType,
		fmt.Sprintf("cannot evaluate %s", KindName(expr)))
}

// Apply invokes a callable on a raw operand list in the caller's environment.
func (ev *Evaluator) Apply(callee Value, operands Value, env *Env) (Value, error) {
	switch fn := callee.(type) {
	case *Primitive:
		if fn.Special {
			return fn.Form(ev, operands, env)
		}
		args, err := ev.EvalOperands(fn.Name, operands, env)
		if err != nil {
			return nil, err
		}
		return fn.Proc(ev, args)

	case *Lambda:
		return ev.applyLambda(fn, operands, env)
	}

	return nil, diagnostics.NewRuntimeError(diagnostics.EApply,
		fmt.Sprintf("%s is not callable", KindName(callee)))
}

// EvalOperands evaluates every expression of a proper operand list in env.
func (ev *Evaluator) EvalOperands(name string, operands Value, env *Env) ([]Value, error) {
	var args []Value
	curr := operands
	for {
		switch t := curr.(type) {
		case Nil:
			return args, nil
		case *Pair:
			val, err := ev.Eval(t.First, env)
			if err != nil {
				return nil, err
			}
			args = append(args, val)
			curr = t.Second
		default:
			return nil, diagnostics.NewRuntimeError(diagnostics.EType,
				fmt.Sprintf("%s: malformed argument list", name))
		}
	}
}

// applyLambda evaluates the arguments in the caller's environment, binds them
// positionally in a fresh frame parented on the captured environment, then
// evaluates the body expressions in order, returning the last result.
func (ev *Evaluator) applyLambda(fn *Lambda, operands Value, env *Env) (Value, error) {
	args, err := ev.EvalOperands("lambda", operands, env)
	if err != nil {
		return nil, err
	}
	if len(args) != len(fn.Params) {
		return nil, diagnostics.NewRuntimeError(diagnostics.EArity,
			fmt.Sprintf("lambda expects %d arguments, got %d", len(fn.Params), len(args)))
	}

	frame := fn.Env.Child()
	for i, name := range fn.Params {
		frame.Define(name, args[i])
	}

	var res Value = Nil{}
	for _, body := range fn.Body {
		res, err = ev.Eval(body, frame)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
