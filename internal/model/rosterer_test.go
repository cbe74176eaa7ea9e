package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/IlayMenahem/residentProblem/internal/cp"
	"github.com/stretchr/testify/assert"
)

const testTimeLimit = 60 * time.Second

type recordingSolver struct {
	calls  int
	result cp.Result
	err    error
}

func (s *recordingSolver) Solve(m *cp.Model, timeLimit time.Duration) (cp.Result, error) {
	s.calls++
	return s.result, s.err
}

func TestBuildSatisfiableScenario(t *testing.T) {
	// Arrange
	params := SchedulingParams{
		NResidents:     3,
		NHours:         24,
		MinOnDuty:      1,
		MinRest:        1,
		MaxConsecutive: 8,
		MaxWeekly:      40,
		MinTeaching:    0,
		MinShiftLength: 4,
	}
	rosterer := NewRosterer(cp.NewGophersatSolver())

	// Act
	schedule, status, err := rosterer.Build(params, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.NotNil(t, schedule)
	assert.Contains(t, []cp.Status{cp.Optimal, cp.Feasible}, status)
	assert.True(t, rosterer.Verify(schedule).Passed())
	for tt := 0; tt < params.NHours; tt++ {
		assert.GreaterOrEqual(t, schedule.OnDutyCount(tt), params.MinOnDuty)
	}
}

func TestBuildAllRulesSimultaneously(t *testing.T) {
	// Arrange: every rule binds and a feasible roster exists (e.g. four
	// 8-hour shift blocks rotated so each resident keeps a free day).
	params := SchedulingParams{
		NResidents:        4,
		NHours:            48,
		MinOnDuty:         1,
		MinRest:           2,
		MaxConsecutive:    8,
		MaxWeekly:         40,
		TeachingHours:     nil,
		MinTeaching:       0,
		MinShiftLength:    4,
		MinDaysOffPerWeek: 1,
	}
	rosterer := NewRosterer(cp.NewGophersatSolver())

	// Act
	schedule, status, err := rosterer.Build(params, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.NotNil(t, schedule)
	assert.Contains(t, []cp.Status{cp.Optimal, cp.Feasible}, status)

	report := rosterer.Verify(schedule)
	assert.True(t, report.Passed(), fmt.Sprintf("%+v", report.Failures()))
}

func TestBuildCoverageAboveHeadcountIsInfeasible(t *testing.T) {
	// Arrange
	params := SchedulingParams{
		NResidents:     3,
		NHours:         24,
		MinOnDuty:      4,
		MaxConsecutive: 8,
		MaxWeekly:      40,
		MinShiftLength: 4,
	}
	rosterer := NewRosterer(cp.NewGophersatSolver())

	// Act
	schedule, status, err := rosterer.Build(params, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Nil(t, schedule)
	assert.Equal(t, cp.Infeasible, status)
}

func TestBuildTeachingSupplyTooSmallIsInfeasible(t *testing.T) {
	// Arrange: only two teaching hours exist but three are required
	params := SchedulingParams{
		NResidents:     2,
		NHours:         24,
		MaxConsecutive: 8,
		MaxWeekly:      40,
		TeachingHours:  []int{4, 5},
		MinTeaching:    3,
		MinShiftLength: 1,
	}
	rosterer := NewRosterer(cp.NewGophersatSolver())

	// Act
	schedule, status, err := rosterer.Build(params, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Nil(t, schedule)
	assert.Equal(t, cp.Infeasible, status)
}

func TestBuildNoRoomForFullDayOffIsInfeasible(t *testing.T) {
	// Arrange: full hourly coverage by three residents leaves nobody a free
	// 24-hour window in a 48-hour horizon.
	params := SchedulingParams{
		NResidents:        3,
		NHours:            48,
		MinOnDuty:         1,
		MinRest:           2,
		MaxConsecutive:    8,
		MaxWeekly:         48,
		MinShiftLength:    4,
		MinDaysOffPerWeek: 1,
	}
	rosterer := NewRosterer(cp.NewGophersatSolver())

	// Act
	schedule, status, err := rosterer.Build(params, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Nil(t, schedule)
	assert.Equal(t, cp.Infeasible, status)
}

func TestBuildMinimalHorizon(t *testing.T) {
	// Arrange
	params := SchedulingParams{
		NResidents:     1,
		NHours:         1,
		MinOnDuty:      1,
		MaxConsecutive: 1,
		MaxWeekly:      168,
		TeachingHours:  []int{0},
		MinTeaching:    1,
		MinShiftLength: 1,
	}
	rosterer := NewRosterer(cp.NewGophersatSolver())

	// Act
	schedule, status, err := rosterer.Build(params, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.NotNil(t, schedule)
	assert.Equal(t, cp.Optimal, status)
	assert.True(t, schedule.Value(0, 0))
}

func TestBuildConfigurationErrorReportedBeforeSolving(t *testing.T) {
	// Arrange
	params := SchedulingParams{
		NResidents:     3,
		NHours:         24,
		MaxConsecutive: 8,
		MinShiftLength: 30, // exceeds the horizon
	}
	solver := &recordingSolver{}
	rosterer := NewRosterer(solver)

	// Act
	schedule, _, err := rosterer.Build(params, testTimeLimit)

	// Assert
	assert.Nil(t, schedule)
	var confErr *ConfigurationError
	assert.ErrorAs(t, err, &confErr)
	assert.Equal(t, "min_shift_length", confErr.Field)
	assert.Equal(t, 0, solver.calls) // rejected before any solver interaction
}

func TestBuildZeroTimeBudgetReportsUnknown(t *testing.T) {
	// Arrange
	params := SchedulingParams{
		NResidents:     2,
		NHours:         12,
		MinOnDuty:      1,
		MaxConsecutive: 6,
		MaxWeekly:      40,
		MinShiftLength: 2,
	}
	rosterer := NewRosterer(cp.NewGophersatSolver())

	// Act
	schedule, status, err := rosterer.Build(params, 0)

	// Assert
	assert.Nil(t, err)
	assert.Nil(t, schedule)
	assert.Equal(t, cp.Unknown, status)
}

func TestBuildPropagatesSolverFailure(t *testing.T) {
	// Arrange
	solver := &recordingSolver{err: fmt.Errorf("backend unavailable")}
	rosterer := NewRosterer(solver)
	params := SchedulingParams{
		NResidents:     2,
		NHours:         12,
		MaxConsecutive: 6,
		MinShiftLength: 2,
	}

	// Act
	schedule, _, err := rosterer.Build(params, testTimeLimit)

	// Assert
	assert.Nil(t, schedule)
	assert.NotNil(t, err)
	assert.Equal(t, 1, solver.calls)
}

func TestBuildMinimizesTotalWork(t *testing.T) {
	// Arrange: one resident, coverage only through teaching attendance. The
	// optimum is a single shift of exactly MinShiftLength hours.
	params := SchedulingParams{
		NResidents:     1,
		NHours:         12,
		MinOnDuty:      0,
		MaxConsecutive: 12,
		MaxWeekly:      168,
		TeachingHours:  []int{3},
		MinTeaching:    1,
		MinShiftLength: 4,
	}
	rosterer := NewRosterer(cp.NewGophersatSolver())

	// Act
	schedule, status, err := rosterer.Build(params, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, cp.Optimal, status)
	assert.Equal(t, 4, schedule.WorkingHours(0))
	assert.True(t, schedule.Value(0, 3))
}
