// Package runtime wires the scheme0 components together behind one entry point.
package runtime

import (
	"github.com/thomasrohde/scheme0/pkg/diagnostics"
	"github.com/thomasrohde/scheme0/pkg/evaluator"
	"github.com/thomasrohde/scheme0/pkg/lexer"
	"github.com/thomasrohde/scheme0/pkg/printer"
	"github.com/thomasrohde/scheme0/pkg/reader"
	"github.com/thomasrohde/scheme0/pkg/stdlib"
)

// Interpreter evaluates source strings against one persistent global
// environment. It is strictly single-threaded; callers must not share an
// Interpreter across goroutines.
type Interpreter struct {
	ev      *evaluator.Evaluator
	globals *evaluator.Env
	budget  evaluator.Budget
	name    string
}

// Option is a functional option for configuring an Interpreter.
type Option func(*Interpreter)

// WithBudget caps evaluation depth and step counts per top-level call.
func WithBudget(b evaluator.Budget) Option {
	return func(in *Interpreter) {
		in.budget = b
	}
}

// WithSourceName sets the file name reported in diagnostics.
func WithSourceName(name string) Option {
	return func(in *Interpreter) {
		in.name = name
	}
}

// New creates an Interpreter with the default primitive catalog and a fresh
// global environment.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		globals: evaluator.NewEnv(nil),
	}
	for _, opt := range opts {
		opt(in)
	}
	reg := stdlib.NewRegistry()
	stdlib.RegisterDefaults(reg)
	in.ev = evaluator.New(evaluator.Options{
		Primitives: reg.Table(),
		Budget:     in.budget,
	})
	return in
}

// Run reads exactly one expression from source, evaluates it against the
// global environment, and renders the result. Trailing tokens are a syntax
// error. A Nil result renders as "()".
func (in *Interpreter) Run(source string) (string, error) {
	tz, err := lexer.New(source, in.name)
	if err != nil {
		return "", err
	}

	expr, err := reader.Read(tz)
	if err != nil {
		return "", err
	}
	if !tz.IsEnd() {
		tok := tz.Peek()
		span := tok.Span
		return "", diagnostics.NewSyntaxError(diagnostics.EParse,
			"trailing tokens after expression", &span)
	}

	in.ev.ResetBudget()
	val, err := in.ev.Eval(expr, in.globals)
	if err != nil {
		return "", err
	}
	return printer.Print(val), nil
}

// RunProgram evaluates every expression in source in order against the
// global environment and returns each rendering.
func (in *Interpreter) RunProgram(source string) ([]string, error) {
	tz, err := lexer.New(source, in.name)
	if err != nil {
		return nil, err
	}
	exprs, err := reader.ReadAll(tz)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		in.ev.ResetBudget()
		val, err := in.ev.Eval(expr, in.globals)
		if err != nil {
			return out, err
		}
		out = append(out, printer.Print(val))
	}
	return out, nil
}

// Globals exposes the interpreter's global environment frame.
func (in *Interpreter) Globals() *evaluator.Env {
	return in.globals
}
