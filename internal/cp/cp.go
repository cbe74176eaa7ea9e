package cp

import (
	"fmt"
	"strings"
)

// Var is a 1-based handle to a boolean decision variable, following the
// DIMACS/OPB convention where variable k appears as literal k or -k.
type Var int

// Term is a single integer-weighted variable inside a linear constraint.
type Term struct {
	Var  Var
	Coef int
}

// linear is the single internal constraint form: sum(Coef*Var) >= atLeast.
// At-most constraints and implications are negated into this form on entry.
type linear struct {
	terms   []Term
	atLeast int
}

// Model accumulates boolean variables, linear inequalities over them, and an
// optional minimization objective. It is a plain data holder: solving is the
// job of a Solver implementation, and a Model must not be shared between
// concurrent solves.
type Model struct {
	variables   int
	names       []string
	constraints []linear
	objective   []Var
	infeasible  bool
}

func NewModel() *Model {
	return &Model{}
}

// NewBoolVar creates a fresh boolean variable. The name is kept for
// diagnostics only; identity is the returned handle.
func (m *Model) NewBoolVar(name string) Var {
	m.variables++
	m.names = append(m.names, name)
	return Var(m.variables)
}

// AddAtLeast constrains sum(vars) >= bound.
func (m *Model) AddAtLeast(vars []Var, bound int) {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coef: 1}
	}
	m.AddLinearAtLeast(terms, bound)
}

// AddAtMost constrains sum(vars) <= bound.
func (m *Model) AddAtMost(vars []Var, bound int) {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coef: -1}
	}
	m.AddLinearAtLeast(terms, -bound)
}

// AddLinearAtLeast constrains sum(terms) >= bound. Coefficients may be
// negative.
func (m *Model) AddLinearAtLeast(terms []Term, bound int) {
	kept := make([]Term, 0, len(terms))
	for _, term := range terms {
		m.checkVar(term.Var)
		if term.Coef != 0 {
			kept = append(kept, term)
		}
	}

	// A constraint whose bound exceeds the largest achievable sum can never
	// hold; record it so solvers can report Infeasible without searching.
	if bound > maxSum(kept) {
		m.infeasible = true
	}

	m.constraints = append(m.constraints, linear{terms: kept, atLeast: bound})
}

// AddLinearAtMost constrains sum(terms) <= bound.
func (m *Model) AddLinearAtMost(terms []Term, bound int) {
	negated := make([]Term, len(terms))
	for i, term := range terms {
		negated[i] = Term{Var: term.Var, Coef: -term.Coef}
	}
	m.AddLinearAtLeast(negated, -bound)
}

// AddImplication constrains cause=1 => effect=0, i.e. cause + effect <= 1.
func (m *Model) AddImplication(cause, effect Var) {
	m.AddLinearAtLeast([]Term{{Var: cause, Coef: -1}, {Var: effect, Coef: -1}}, -1)
}

// Minimize declares the objective: minimize sum(vars). A later call replaces
// the previous objective.
func (m *Model) Minimize(vars []Var) {
	for _, v := range vars {
		m.checkVar(v)
	}
	m.objective = append([]Var(nil), vars...)
}

func (m *Model) NumVariables() int   { return m.variables }
func (m *Model) NumConstraints() int { return len(m.constraints) }

// Name returns the diagnostic name given to a variable at creation.
func (m *Model) Name(v Var) string {
	m.checkVar(v)
	return m.names[int(v)-1]
}

func (m *Model) checkVar(v Var) {
	if int(v) < 1 || int(v) > m.variables {
		panic(fmt.Sprintf("cp: variable %d outside model with %d variables", v, m.variables))
	}
}

func maxSum(terms []Term) int {
	sum := 0
	for _, term := range terms {
		if term.Coef > 0 {
			sum += term.Coef
		}
	}
	return sum
}

// ToOPB serializes the model in OPB pseudo-boolean format, objective first,
// one constraint per line.
func (m *Model) ToOPB() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "* #variable= %d #constraint= %d\n", m.variables, len(m.constraints))

	if len(m.objective) > 0 {
		builder.WriteString("min:")
		for _, v := range m.objective {
			fmt.Fprintf(&builder, " +1 x%d", v)
		}
		builder.WriteString(" ;\n")
	}

	for _, constraint := range m.constraints {
		for _, term := range constraint.terms {
			fmt.Fprintf(&builder, "%+d x%d ", term.Coef, term.Var)
		}
		fmt.Fprintf(&builder, ">= %d ;\n", constraint.atLeast)
	}

	return builder.String()
}
