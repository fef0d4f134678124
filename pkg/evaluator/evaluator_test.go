package evaluator_test

import (
	"testing"

	"github.com/thomasrohde/scheme0/pkg/diagnostics"
	"github.com/thomasrohde/scheme0/pkg/evaluator"
	"github.com/thomasrohde/scheme0/pkg/lexer"
	"github.com/thomasrohde/scheme0/pkg/reader"
	"github.com/thomasrohde/scheme0/pkg/stdlib"
)

// --- helpers ---

// newEvaluator builds an Evaluator over the default primitive catalog.
func newEvaluator(b evaluator.Budget) *evaluator.Evaluator {
	reg := stdlib.NewRegistry()
	stdlib.RegisterDefaults(reg)
	return evaluator.New(evaluator.Options{Primitives: reg.Table(), Budget: b})
}

// parse reads one expression from source.
func parse(t *testing.T, source string) evaluator.Value {
	t.Helper()
	tz, err := lexer.New(source, "test.scm")
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	expr, err := reader.Read(tz)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	return expr
}

// evalIn parses and evaluates source in env.
func evalIn(t *testing.T, ev *evaluator.Evaluator, env *evaluator.Env, source string) (evaluator.Value, error) {
	t.Helper()
	return ev.Eval(parse(t, source), env)
}

// mustEval evaluates source and fails the test on error.
func mustEval(t *testing.T, ev *evaluator.Evaluator, env *evaluator.Env, source string) evaluator.Value {
	t.Helper()
	val, err := evalIn(t, ev, env, source)
	if err != nil {
		t.Fatalf("unexpected eval error for %q: %v", source, err)
	}
	return val
}

func wantNumber(t *testing.T, v evaluator.Value, expected int64) {
	t.Helper()
	n, ok := v.(evaluator.Number)
	if !ok {
		t.Fatalf("expected number, got %s", evaluator.KindName(v))
	}
	if n.Value != expected {
		t.Errorf("expected %d, got %d", expected, n.Value)
	}
}

// ---------------------------------------------------------------------------
// Test: atoms are self-evaluating
// ---------------------------------------------------------------------------
func TestSelfEvaluating(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	wantNumber(t, mustEval(t, ev, env, "42"), 42)

	val := mustEval(t, ev, env, "#t")
	if b := val.(evaluator.Boolean); !b.Value {
		t.Error("expected #t")
	}

	val = mustEval(t, ev, env, "()")
	if !evaluator.IsNil(val) {
		t.Errorf("expected nil, got %s", evaluator.KindName(val))
	}
}

// ---------------------------------------------------------------------------
// Test: symbol resolution — primitives first, then the environment chain
// ---------------------------------------------------------------------------
func TestSymbolResolution(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)
	env.Define("x", evaluator.NewNumber(7))

	wantNumber(t, mustEval(t, ev, env, "x"), 7)

	val := mustEval(t, ev, env, "car")
	prim, ok := val.(*evaluator.Primitive)
	if !ok {
		t.Fatalf("expected builtin, got %s", evaluator.KindName(val))
	}
	if prim.Name != "car" {
		t.Errorf("expected builtin car, got %s", prim.Name)
	}

	// A user binding does not shadow the primitive table.
	env.Define("car", evaluator.NewNumber(1))
	val = mustEval(t, ev, env, "car")
	if _, ok := val.(*evaluator.Primitive); !ok {
		t.Errorf("expected the primitive to win, got %s", evaluator.KindName(val))
	}
}

func TestUnboundSymbol(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	_, err := evalIn(t, ev, env, "missing")
	if err == nil {
		t.Fatal("expected a name error")
	}
	if _, ok := err.(*diagnostics.NameError); !ok {
		t.Fatalf("expected *diagnostics.NameError, got %T", err)
	}
}

// ---------------------------------------------------------------------------
// Test: lambda application
// ---------------------------------------------------------------------------
func TestLambdaApplication(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	wantNumber(t, mustEval(t, ev, env, "((lambda (x) (+ 1 x)) 5)"), 6)
	wantNumber(t, mustEval(t, ev, env, "((lambda () 1 2 3))"), 3)
	wantNumber(t, mustEval(t, ev, env, "((lambda (a b) (* a b)) 3 4)"), 12)
}

func TestLambdaArityMismatch(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	_, err := evalIn(t, ev, env, "((lambda (x) x) 1 2)")
	if err == nil {
		t.Fatal("expected an arity error")
	}
	rtErr, ok := err.(*diagnostics.RuntimeError)
	if !ok {
		t.Fatalf("expected *diagnostics.RuntimeError, got %T", err)
	}
	if rtErr.Diag.Code != diagnostics.EArity {
		t.Errorf("expected code %s, got %s", diagnostics.EArity, rtErr.Diag.Code)
	}
}

// ---------------------------------------------------------------------------
// Test: arguments are evaluated in the caller's environment
// ---------------------------------------------------------------------------
func TestArgumentsEvaluatedInCallerEnv(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	mustEval(t, ev, env, "(define y 10)")
	wantNumber(t, mustEval(t, ev, env, "((lambda (x) x) y)"), 10)
}

// ---------------------------------------------------------------------------
// Test: closures capture the creation-site environment
// ---------------------------------------------------------------------------
func TestClosureCapture(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	mustEval(t, ev, env, "(define counter ((lambda (n) (lambda () (set! n (+ n 1)) n)) 0))")
	wantNumber(t, mustEval(t, ev, env, "(counter)"), 1)
	wantNumber(t, mustEval(t, ev, env, "(counter)"), 2)
	wantNumber(t, mustEval(t, ev, env, "(counter)"), 3)
}

func TestClosureSeesCurrentValue(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	// The lambda sees the binding's value at call time, not definition time.
	mustEval(t, ev, env, "(define x 1)")
	mustEval(t, ev, env, "(define (get-x) x)")
	mustEval(t, ev, env, "(set! x 2)")
	wantNumber(t, mustEval(t, ev, env, "(get-x)"), 2)
}

func TestClosuresShareFrame(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	mustEval(t, ev, env, `(define make-cell
		(lambda (v)
			(cons (lambda () v)
			      (lambda (nv) (set! v nv)))))`)
	mustEval(t, ev, env, "(define cell (make-cell 5))")
	wantNumber(t, mustEval(t, ev, env, "((car cell))"), 5)
	mustEval(t, ev, env, "((cdr cell) 42)")
	wantNumber(t, mustEval(t, ev, env, "((car cell))"), 42)
}

// ---------------------------------------------------------------------------
// Test: applying a non-callable fails
// ---------------------------------------------------------------------------
func TestApplyNonCallable(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	for _, src := range []string{"(1 2)", "(#t)", "((quote (1 2)) 3)"} {
		t.Run(src, func(t *testing.T) {
			_, err := evalIn(t, ev, env, src)
			if err == nil {
				t.Fatal("expected an apply error")
			}
			rtErr, ok := err.(*diagnostics.RuntimeError)
			if !ok {
				t.Fatalf("expected *diagnostics.RuntimeError, got %T", err)
			}
			if rtErr.Diag.Code != diagnostics.EApply {
				t.Errorf("expected code %s, got %s", diagnostics.EApply, rtErr.Diag.Code)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: recursion works through define
// ---------------------------------------------------------------------------
func TestRecursion(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{})
	env := evaluator.NewEnv(nil)

	mustEval(t, ev, env, "(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))")
	wantNumber(t, mustEval(t, ev, env, "(fact 5)"), 120)
	wantNumber(t, mustEval(t, ev, env, "(fact 10)"), 3628800)
}

// ---------------------------------------------------------------------------
// Test: the budget bounds runaway recursion
// ---------------------------------------------------------------------------
func TestDepthBudget(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{MaxDepth: 100})
	env := evaluator.NewEnv(nil)

	mustEval(t, ev, env, "(define (loop n) (loop (+ n 1)))")
	ev.ResetBudget()
	_, err := evalIn(t, ev, env, "(loop 0)")
	if err == nil {
		t.Fatal("expected a depth budget error")
	}
	rtErr, ok := err.(*diagnostics.RuntimeError)
	if !ok {
		t.Fatalf("expected *diagnostics.RuntimeError, got %T", err)
	}
	if rtErr.Diag.Code != diagnostics.EDepth {
		t.Errorf("expected code %s, got %s", diagnostics.EDepth, rtErr.Diag.Code)
	}
}

func TestStepBudget(t *testing.T) {
	ev := newEvaluator(evaluator.Budget{MaxSteps: 20})
	env := evaluator.NewEnv(nil)

	_, err := evalIn(t, ev, env, "(+ 1 (+ 2 (+ 3 (+ 4 (+ 5 (+ 6 (+ 7 (+ 8 (+ 9 (+ 10 (+ 11 (+ 12 (+ 13 (+ 14 (+ 15 16)))))))))))))))")
	if err == nil {
		t.Fatal("expected a step budget error")
	}
}
