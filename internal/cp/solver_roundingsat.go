package cp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

const roundingsatPath = "roundingsat"

type roundingsatSolver struct{}

// NewRoundingsatSolver returns a backend that shells out to the roundingsat
// pseudo-boolean optimizer, feeding the model in OPB format through standard
// input. The time budget is enforced by cancelling the process.
func NewRoundingsatSolver() Solver {
	return &roundingsatSolver{}
}

func (solver *roundingsatSolver) Solve(m *Model, timeLimit time.Duration) (Result, error) {
	if m.infeasible {
		return Result{Status: Infeasible}, nil
	}

	opb := m.ToOPB() // Transform the model into OPB string format

	ctx, cancel := context.WithTimeout(context.Background(), timeLimit)
	defer cancel()

	cmd := exec.CommandContext(ctx, roundingsatPath)
	cmd.Stdin = strings.NewReader(opb) // Feed opb into roundingsat's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// roundingsat signals its verdict on the "s" line and uses non-zero exit
	// codes for SAT/UNSAT/OPTIMUM, so the exit status alone is not an error.
	status, ok := parseStatusLine(stdOut.String())
	if !ok {
		if ctx.Err() == context.DeadlineExceeded {
			return Result{Status: Unknown}, nil
		}
		return Result{}, fmt.Errorf("an error occurred during roundingsat execution: %v : %v", runErr, stderr.String())
	}

	switch status {
	case "UNSATISFIABLE":
		return Result{Status: Infeasible}, nil
	case "OPTIMUM FOUND", "SATISFIABLE":
		values, err := parseValueLine(stdOut.String(), m.variables)
		if err != nil {
			return Result{}, err
		}
		result := Result{Status: Feasible, Values: values, Objective: objectiveValue(m.objective, values)}
		if status == "OPTIMUM FOUND" || len(m.objective) == 0 {
			result.Status = Optimal
		}
		return result, nil
	default:
		return Result{Status: Unknown}, nil
	}
}

func parseStatusLine(output string) (string, bool) {
	line, ok := lo.Find(strings.Split(output, "\n"), func(line string) bool {
		return strings.HasPrefix(line, "s ")
	})
	if !ok {
		return "", false
	}
	return strings.TrimSpace(line[2:]), true
}

// parseValueLine reads the "v" line, whose tokens are x<k> for true variables
// and -x<k> for false ones.
func parseValueLine(output string, variables int) ([]bool, error) {
	line, ok := lo.Find(strings.Split(output, "\n"), func(line string) bool {
		return strings.HasPrefix(line, "v ")
	})
	if !ok {
		return nil, fmt.Errorf("roundingsat reported a solution without a value line")
	}

	values := make([]bool, variables)
	for _, token := range strings.Fields(line[2:]) {
		positive := true
		if strings.HasPrefix(token, "-") {
			positive = false
			token = token[1:]
		}
		index, err := strconv.Atoi(strings.TrimPrefix(token, "x"))
		if err != nil {
			return nil, fmt.Errorf("invalid literal in roundingsat output: %v", err)
		}
		if index >= 1 && index <= variables {
			values[index-1] = positive
		}
	}
	return values, nil
}
