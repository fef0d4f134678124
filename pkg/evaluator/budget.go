package evaluator

// Budget holds optional ceilings for one top-level evaluation.
// A zero field means unlimited. The depth ceiling bounds evaluator
// recursion; the step ceiling bounds the total number of expressions
// evaluated, which keeps a runaway non-tail recursion from exhausting
// the Go stack.
type Budget struct {
	MaxDepth int
	MaxSteps int
}

// BudgetTracker tracks consumption against a Budget during one evaluation.
type BudgetTracker struct {
	Depth int
	Steps int
}
