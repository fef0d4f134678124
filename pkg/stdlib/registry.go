// Package stdlib provides the scheme0 primitive registry.
package stdlib

import (
	"github.com/thomasrohde/scheme0/pkg/evaluator"
)

// Registry holds the named primitives the evaluator resolves symbols against.
type Registry struct {
	prims map[string]*evaluator.Primitive
}

// NewRegistry creates a new empty primitive registry.
func NewRegistry() *Registry {
	return &Registry{
		prims: make(map[string]*evaluator.Primitive),
	}
}

// RegisterProc adds a procedure: its arguments are evaluated before it runs.
func (r *Registry) RegisterProc(name string, fn evaluator.ProcFunc) {
	r.prims[name] = &evaluator.Primitive{Name: name, Proc: fn}
}

// RegisterForm adds a special form: it receives its operands unevaluated.
func (r *Registry) RegisterForm(name string, fn evaluator.FormFunc) {
	r.prims[name] = &evaluator.Primitive{Name: name, Special: true, Form: fn}
}

// Get retrieves a primitive by name.
func (r *Registry) Get(name string) *evaluator.Primitive {
	return r.prims[name]
}

// Table returns the full name→primitive table.
func (r *Registry) Table() map[string]*evaluator.Primitive {
	return r.prims
}
