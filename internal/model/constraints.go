package model

import (
	"fmt"

	"github.com/IlayMenahem/residentProblem/internal/cp"
	"github.com/samber/lo"
)

// The seven rule compilers below are independent and order-agnostic: each one
// reads only the grid and the parameters and emits its constraints into the
// shared model. None of them relies on constraints added by another.

// addMinOnDutyConstraint: at least MinOnDuty residents are working at every
// hour of the horizon.
func addMinOnDutyConstraint(m *cp.Model, g *Grid, params SchedulingParams) {
	for t := 0; t < params.NHours; t++ {
		column := make([]cp.Var, params.NResidents)
		for r := 0; r < params.NResidents; r++ {
			column[r] = g.Var(r, t)
		}
		m.AddAtLeast(column, params.MinOnDuty)
	}
}

// addMinRestConstraint: at least MinRest hours of rest between two shifts.
//
// When a shift ends at hour t (x[r][t]=1, x[r][t+1]=0), hours t+1 through
// t+MinRest must all be free. Hour t+1 is free already by the shift-end
// condition, so only offsets s in [2, MinRest] are enforced, through
//
//	x[r][t+s] + x[r][t] - x[r][t+1] <= 1
//
// which reaches 2 exactly when the shift ends at t and work resumes at t+s.
func addMinRestConstraint(m *cp.Model, g *Grid, params SchedulingParams) {
	for r := 0; r < params.NResidents; r++ {
		for t := 0; t+1 < params.NHours; t++ {
			for s := 2; s <= params.MinRest && t+s < params.NHours; s++ {
				m.AddLinearAtMost([]cp.Term{
					{Var: g.Var(r, t+s), Coef: 1},
					{Var: g.Var(r, t), Coef: 1},
					{Var: g.Var(r, t+1), Coef: -1},
				}, 1)
			}
		}
	}
}

// addMaxConsecutiveConstraint: no resident works more than MaxConsecutive
// hours in a row. Every window of MaxConsecutive+1 hours holds at most
// MaxConsecutive working hours.
func addMaxConsecutiveConstraint(m *cp.Model, g *Grid, params SchedulingParams) {
	for r := 0; r < params.NResidents; r++ {
		for t := 0; t+params.MaxConsecutive < params.NHours; t++ {
			window := make([]cp.Var, params.MaxConsecutive+1)
			for s := range window {
				window[s] = g.Var(r, t+s)
			}
			m.AddAtMost(window, params.MaxConsecutive)
		}
	}
}

// addMaxWeeklyConstraint: no resident works more than MaxWeekly hours in any
// 168-hour week block. A trailing partial block is capped at the same bound.
func addMaxWeeklyConstraint(m *cp.Model, g *Grid, params SchedulingParams) {
	for r := 0; r < params.NResidents; r++ {
		for weekStart := 0; weekStart < params.NHours; weekStart += hoursPerWeek {
			weekEnd := min(weekStart+hoursPerWeek, params.NHours)
			block := make([]cp.Var, 0, weekEnd-weekStart)
			for t := weekStart; t < weekEnd; t++ {
				block = append(block, g.Var(r, t))
			}
			m.AddAtMost(block, params.MaxWeekly)
		}
	}
}

// addMinTeachingConstraint: every resident works at least MinTeaching of the
// designated teaching hours.
func addMinTeachingConstraint(m *cp.Model, g *Grid, params SchedulingParams) {
	validTeachingHours := lo.Filter(params.TeachingHours, func(hour int, _ int) bool {
		return hour >= 0 && hour < params.NHours
	})

	for r := 0; r < params.NResidents; r++ {
		hours := make([]cp.Var, len(validTeachingHours))
		for i, t := range validTeachingHours {
			hours[i] = g.Var(r, t)
		}
		m.AddAtLeast(hours, params.MinTeaching)
	}
}

// addMinShiftLengthConstraint: every shift lasts at least MinShiftLength
// hours.
//
// A shift starts at hour t when x[r][t]=1 and x[r][t-1]=0 (with x[r][-1]
// taken as 0). At a start the window must be fully worked:
//
//	sum(x[r][t .. t+S-1]) >= S*x[r][t] - S*x[r][t-1]
//
// The right side is positive only at a genuine 0->1 transition; mid-shift or
// off-duty it drops to zero or below and the constraint is vacuous. In the
// final S-1 hours a started shift could not reach full length, so new starts
// are forbidden there outright via x[r][t] <= x[r][t-1] (and x[r][0] = 0 when
// even the first window does not fit).
func addMinShiftLengthConstraint(m *cp.Model, g *Grid, params SchedulingParams) {
	S := params.MinShiftLength

	for r := 0; r < params.NResidents; r++ {
		for t := 0; t < params.NHours; t++ {
			if t+S > params.NHours {
				if t > 0 {
					m.AddLinearAtMost([]cp.Term{
						{Var: g.Var(r, t), Coef: 1},
						{Var: g.Var(r, t-1), Coef: -1},
					}, 0)
				} else {
					m.AddAtMost([]cp.Var{g.Var(r, 0)}, 0)
				}
				continue
			}

			// x[r][t] carries both its window membership (+1) and the -S
			// shift-start weight.
			terms := make([]cp.Term, 0, S+1)
			terms = append(terms, cp.Term{Var: g.Var(r, t), Coef: 1 - S})
			for s := 1; s < S; s++ {
				terms = append(terms, cp.Term{Var: g.Var(r, t+s), Coef: 1})
			}
			if t > 0 {
				terms = append(terms, cp.Term{Var: g.Var(r, t-1), Coef: S})
			}
			m.AddLinearAtLeast(terms, 0)
		}
	}
}

// addMinDaysOffConstraint: every resident gets at least MinDaysOffPerWeek
// full 24-hour rest windows in every week block. One indicator variable is
// introduced per valid window start; indicator=1 implies the resident is off
// for all 24 hours of the window, and each week requires at least
// MinDaysOffPerWeek indicators set. Windows may overlap. Week blocks shorter
// than 24 hours are skipped.
func addMinDaysOffConstraint(m *cp.Model, g *Grid, params SchedulingParams) {
	for r := 0; r < params.NResidents; r++ {
		for weekStart := 0; weekStart < params.NHours; weekStart += hoursPerWeek {
			weekEnd := min(weekStart+hoursPerWeek, params.NHours)
			if weekEnd-weekStart < hoursPerDay {
				continue
			}

			indicators := make([]cp.Var, 0, weekEnd-hoursPerDay+1-weekStart)
			for t := weekStart; t <= weekEnd-hoursPerDay; t++ {
				indicator := m.NewBoolVar(fmt.Sprintf("day_off_%d_%d", r, t))
				for s := 0; s < hoursPerDay; s++ {
					m.AddImplication(indicator, g.Var(r, t+s))
				}
				indicators = append(indicators, indicator)
			}

			m.AddAtLeast(indicators, params.MinDaysOffPerWeek)
		}
	}
}

// minimizeTotalWork declares the objective: minimize total working hours
// across all residents.
func minimizeTotalWork(m *cp.Model, g *Grid) {
	m.Minimize(g.Vars())
}
