package model

import (
	"time"

	"github.com/IlayMenahem/residentProblem/internal/cp"
)

// Rosterer builds duty rosters satisfying the seven scheduling rules and
// independently verifies candidate schedules against them.
type Rosterer interface {
	// Build compiles the parameters into a constraint model and solves it.
	// Infeasible and Unknown are routine planning outcomes reported through
	// the status with a nil schedule; the error return is reserved for
	// configuration problems and backend failures.
	Build(params SchedulingParams, timeLimit time.Duration) (*Schedule, cp.Status, error)

	Verify(schedule *Schedule) Report
}

func NewRosterer(solver cp.Solver) Rosterer {
	return &cpRosterer{solver: solver}
}

type cpRosterer struct {
	solver cp.Solver
}

func (rosterer *cpRosterer) Build(params SchedulingParams, timeLimit time.Duration) (*Schedule, cp.Status, error) {
	if err := params.Validate(); err != nil {
		return nil, cp.Unknown, err
	}

	// Each solve gets a fresh model and grid; sharing a grid between
	// concurrent solves is unsafe.
	m := cp.NewModel()
	grid, err := NewGrid(m, params.NResidents, params.NHours)
	if err != nil {
		return nil, cp.Unknown, err
	}

	addMinOnDutyConstraint(m, grid, params)
	addMinRestConstraint(m, grid, params)
	addMaxConsecutiveConstraint(m, grid, params)
	addMaxWeeklyConstraint(m, grid, params)
	addMinTeachingConstraint(m, grid, params)
	addMinShiftLengthConstraint(m, grid, params)
	addMinDaysOffConstraint(m, grid, params)
	minimizeTotalWork(m, grid)

	result, err := rosterer.solver.Solve(m, timeLimit)
	if err != nil {
		return nil, cp.Unknown, err
	}
	if result.Status == cp.Infeasible || result.Status == cp.Unknown {
		return nil, result.Status, nil
	}

	schedule, err := extractSchedule(grid, result.Values, params)
	if err != nil {
		return nil, result.Status, err
	}

	return schedule, result.Status, nil
}

func (rosterer *cpRosterer) Verify(schedule *Schedule) Report {
	return Validate(schedule)
}
