package model

import (
	"fmt"

	"github.com/IlayMenahem/residentProblem/internal/cp"
)

// Grid is the dense resident-by-hour decision variable space. Cell (r, t) is
// true when resident r works hour t. Variables live in a flat arena indexed
// r*hours+t, so lookup is O(1) and idempotent: the same cell always yields the
// same variable. A Grid belongs to exactly one model and one solve.
type Grid struct {
	residents int
	hours     int
	vars      []cp.Var
}

// NewGrid creates one boolean variable per (resident, hour) cell on the given
// model.
func NewGrid(m *cp.Model, residents, hours int) (*Grid, error) {
	if residents < 1 {
		return nil, &ConfigurationError{Field: "n_residents", Reason: fmt.Sprintf("grid needs at least one resident, got %v", residents)}
	}
	if hours < 1 {
		return nil, &ConfigurationError{Field: "n_hours", Reason: fmt.Sprintf("grid needs at least one hour, got %v", hours)}
	}

	vars := make([]cp.Var, residents*hours)
	for r := 0; r < residents; r++ {
		for t := 0; t < hours; t++ {
			vars[r*hours+t] = m.NewBoolVar(fmt.Sprintf("x_%d_%d", r, t))
		}
	}

	return &Grid{residents: residents, hours: hours, vars: vars}, nil
}

// Var returns the decision variable of cell (r, t).
func (g *Grid) Var(r, t int) cp.Var {
	if r < 0 || r >= g.residents || t < 0 || t >= g.hours {
		panic(fmt.Sprintf("grid cell (%d, %d) outside %dx%d grid", r, t, g.residents, g.hours))
	}
	return g.vars[r*g.hours+t]
}

// Vars returns every grid variable in row-major order.
func (g *Grid) Vars() []cp.Var {
	return g.vars
}

func (g *Grid) Residents() int { return g.residents }
func (g *Grid) Hours() int     { return g.hours }
