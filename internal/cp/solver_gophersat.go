package cp

import (
	"time"

	pb "github.com/crillab/gophersat/solver"
)

type gophersatSolver struct{}

// NewGophersatSolver returns the default, in-process solving backend built on
// gophersat's pseudo-boolean engine.
func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

// Solve searches for a minimal satisfying assignment by iterative objective
// tightening: once a model is found, the objective is bounded below the
// incumbent and the search repeats until unsatisfiability proves the incumbent
// optimal. Running out of budget with an incumbent in hand yields Feasible.
func (solver *gophersatSolver) Solve(m *Model, timeLimit time.Duration) (Result, error) {
	deadline := time.Now().Add(timeLimit)

	if m.infeasible {
		return Result{Status: Infeasible}, nil
	}
	constraints := gtEqConstraints(m)

	values, status := solveWithin(constraints, m.variables, deadline)
	if status == searchTimeout {
		return Result{Status: Unknown}, nil
	} else if status == searchUnsat {
		return Result{Status: Infeasible}, nil
	}

	if len(m.objective) == 0 {
		return Result{Status: Optimal, Values: values}, nil
	}

	best := values
	bestObjective := objectiveValue(m.objective, values)

	for bestObjective > 0 {
		bounded := append(constraints[:len(constraints):len(constraints)], sumAtMost(m.objective, bestObjective-1))
		values, status = solveWithin(bounded, m.variables, deadline)

		if status == searchTimeout {
			return Result{Status: Feasible, Values: best, Objective: bestObjective}, nil
		} else if status == searchUnsat { // The incumbent is proved optimal
			break
		}

		best = values
		bestObjective = objectiveValue(m.objective, best)
	}

	return Result{Status: Optimal, Values: best, Objective: bestObjective}, nil
}

type searchStatus int

const (
	searchSat searchStatus = iota
	searchUnsat
	searchTimeout
)

// solveWithin runs one gophersat search raced against the deadline. The
// engine offers no external cancellation, so on timeout the search goroutine
// is abandoned and left to finish in the background.
func solveWithin(constraints []pb.PBConstr, variables int, deadline time.Time) ([]bool, searchStatus) {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return nil, searchTimeout
	}

	type outcome struct {
		status pb.Status
		model  []bool
	}
	done := make(chan outcome, 1)

	go func() {
		problem := pb.ParsePBConstrs(constraints)
		engine := pb.New(problem)
		status := engine.Solve()

		var model []bool
		if status == pb.Sat {
			model = engine.Model()
		}
		done <- outcome{status: status, model: model}
	}()

	select {
	case out := <-done:
		switch out.status {
		case pb.Sat:
			// Pad to the full variable count: variables absent from every
			// constraint are unconstrained and default to false.
			values := make([]bool, variables)
			copy(values, out.model)
			return values, searchSat
		case pb.Unsat:
			return nil, searchUnsat
		default:
			return nil, searchTimeout
		}
	case <-time.After(remaining):
		return nil, searchTimeout
	}
}

// gtEqConstraints rewrites every stored constraint into gophersat's
// positive-weight GtEq form: a negative coefficient c on variable v becomes
// weight -c on literal -v, shifting the bound by -c. Constraints whose bound
// drops to zero or below are tautologies and are omitted.
func gtEqConstraints(m *Model) []pb.PBConstr {
	constraints := make([]pb.PBConstr, 0, len(m.constraints))

	for _, constraint := range m.constraints {
		lits := make([]int, 0, len(constraint.terms))
		weights := make([]int, 0, len(constraint.terms))
		bound := constraint.atLeast

		for _, term := range constraint.terms {
			if term.Coef > 0 {
				lits = append(lits, int(term.Var))
				weights = append(weights, term.Coef)
			} else {
				lits = append(lits, -int(term.Var))
				weights = append(weights, -term.Coef)
				bound -= term.Coef
			}
		}

		if bound <= 0 {
			continue
		}
		constraints = append(constraints, pb.GtEq(lits, weights, bound))
	}

	return constraints
}

// sumAtMost encodes sum(vars) <= bound as at least len(vars)-bound negated
// literals being true.
func sumAtMost(vars []Var, bound int) pb.PBConstr {
	lits := make([]int, len(vars))
	weights := make([]int, len(vars))
	for i, v := range vars {
		lits[i] = -int(v)
		weights[i] = 1
	}
	return pb.GtEq(lits, weights, len(vars)-bound)
}

func objectiveValue(objective []Var, values []bool) int {
	total := 0
	for _, v := range objective {
		if values[int(v)-1] {
			total++
		}
	}
	return total
}
