package cp

import "time"

type Status int

const (
	// Optimal: a satisfying assignment was found and proved minimal.
	Optimal Status = iota
	// Feasible: a satisfying assignment was found but the time budget ran out
	// before optimality was proved.
	Feasible
	// Infeasible: no assignment satisfies the constraints.
	Infeasible
	// Unknown: the time budget ran out before any assignment was found.
	Unknown
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case Unknown:
		return "UNKNOWN"
	default:
		return "INVALID"
	}
}

// Result reports the outcome of a solve. Values holds one boolean per model
// variable (Values[v-1] for variable v) and is non-nil exactly when Status is
// Optimal or Feasible. Objective is the objective value of that assignment.
type Result struct {
	Status    Status
	Values    []bool
	Objective int
}

// Value returns the assignment of a variable.
func (r Result) Value(v Var) bool {
	return int(v) >= 1 && int(v) <= len(r.Values) && r.Values[int(v)-1]
}

// Solver is the narrow contract a solving backend must satisfy. Infeasible and
// Unknown are ordinary results, not errors; the error return is reserved for
// backend failures (e.g. a missing external binary).
type Solver interface {
	Solve(model *Model, timeLimit time.Duration) (Result, error)
}
