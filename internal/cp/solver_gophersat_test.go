package cp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testTimeLimit = 30 * time.Second

func TestGophersatMinimizesCardinalityObjective(t *testing.T) {
	// Arrange
	m := NewModel()
	vars := []Var{m.NewBoolVar("a"), m.NewBoolVar("b"), m.NewBoolVar("c")}
	m.AddAtLeast(vars, 2)
	m.Minimize(vars)

	// Act
	result, err := NewGophersatSolver().Solve(m, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Optimal, result.Status)
	assert.Equal(t, 2, result.Objective)
	assert.Equal(t, 2, trueCount(result.Values))
}

func TestGophersatWeightedObjectivePrefersHeavySingle(t *testing.T) {
	// Arrange: 2a + b >= 2 is satisfied by a alone, so minimizing a+b picks a.
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddLinearAtLeast([]Term{{Var: a, Coef: 2}, {Var: b, Coef: 1}}, 2)
	m.Minimize([]Var{a, b})

	// Act
	result, err := NewGophersatSolver().Solve(m, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Optimal, result.Status)
	assert.Equal(t, 1, result.Objective)
	assert.True(t, result.Value(a))
	assert.False(t, result.Value(b))
}

func TestGophersatNegativeCoefficientNormalization(t *testing.T) {
	// Arrange: a - b >= 0 with b forced true forces a.
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddLinearAtLeast([]Term{{Var: a, Coef: 1}, {Var: b, Coef: -1}}, 0)
	m.AddAtLeast([]Var{b}, 1)

	// Act
	result, err := NewGophersatSolver().Solve(m, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Optimal, result.Status)
	assert.True(t, result.Value(a))
	assert.True(t, result.Value(b))
}

func TestGophersatImplication(t *testing.T) {
	// Arrange
	m := NewModel()
	cause := m.NewBoolVar("cause")
	effect := m.NewBoolVar("effect")
	m.AddAtLeast([]Var{cause}, 1)
	m.AddImplication(cause, effect)

	// Act
	result, err := NewGophersatSolver().Solve(m, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Optimal, result.Status)
	assert.True(t, result.Value(cause))
	assert.False(t, result.Value(effect))
}

func TestGophersatInfeasibleBySearch(t *testing.T) {
	// Arrange: a >= 1 together with a <= 0
	m := NewModel()
	a := m.NewBoolVar("a")
	m.AddAtLeast([]Var{a}, 1)
	m.AddAtMost([]Var{a}, 0)

	// Act
	result, err := NewGophersatSolver().Solve(m, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Infeasible, result.Status)
	assert.Nil(t, result.Values)
}

func TestGophersatInfeasibleByUnreachableBound(t *testing.T) {
	// Arrange
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	m.AddAtLeast([]Var{a, b}, 3)

	// Act
	result, err := NewGophersatSolver().Solve(m, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Infeasible, result.Status)
}

func TestGophersatNoObjectiveReportsOptimal(t *testing.T) {
	// Arrange
	m := NewModel()
	a := m.NewBoolVar("a")
	m.AddAtLeast([]Var{a}, 1)

	// Act
	result, err := NewGophersatSolver().Solve(m, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Optimal, result.Status)
	assert.True(t, result.Value(a))
}

func TestGophersatExhaustedBudgetReportsUnknown(t *testing.T) {
	// Arrange
	m := NewModel()
	a := m.NewBoolVar("a")
	m.AddAtLeast([]Var{a}, 1)

	// Act
	result, err := NewGophersatSolver().Solve(m, 0)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, Unknown, result.Status)
	assert.Nil(t, result.Values)
}

func TestGophersatUnconstrainedVariablesDefaultFalse(t *testing.T) {
	// Arrange: b appears in no constraint but must still be reported.
	m := NewModel()
	a := m.NewBoolVar("a")
	m.NewBoolVar("b")
	m.AddAtLeast([]Var{a}, 1)
	m.Minimize([]Var{a})

	// Act
	result, err := NewGophersatSolver().Solve(m, testTimeLimit)

	// Assert
	assert.Nil(t, err)
	assert.Len(t, result.Values, 2)
	assert.False(t, result.Values[1])
}

func trueCount(values []bool) int {
	count := 0
	for _, value := range values {
		if value {
			count++
		}
	}
	return count
}
