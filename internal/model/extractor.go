package model

// extractSchedule projects a solved assignment through the grid into an
// immutable Schedule. The assignment must report a value for every grid
// variable.
func extractSchedule(g *Grid, values []bool, params SchedulingParams) (*Schedule, error) {
	if len(values) < g.residents*g.hours {
		return nil, &ExtractionError{Expected: g.residents * g.hours, Reported: len(values)}
	}

	assignments := make([][]bool, g.residents)
	for r := 0; r < g.residents; r++ {
		assignments[r] = make([]bool, g.hours)
		for t := 0; t < g.hours; t++ {
			assignments[r][t] = values[int(g.Var(r, t))-1]
		}
	}

	return &Schedule{params: params, assignments: assignments}, nil
}
