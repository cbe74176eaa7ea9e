package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/IlayMenahem/residentProblem/internal/cp"
	"github.com/IlayMenahem/residentProblem/internal/model"
	"github.com/caarlos0/env/v11"
)

var solvers = map[string]func() cp.Solver{
	"gophersat":   cp.NewGophersatSolver,
	"roundingsat": cp.NewRoundingsatSolver,
}

// defaults are taken from the environment so scripted runs can pin a solver
// and budget without repeating flags.
type config struct {
	Solver    string        `env:"ROSTER_SOLVER" envDefault:"gophersat"`
	TimeLimit time.Duration `env:"ROSTER_TIME_LIMIT" envDefault:"60s"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("cannot parse environment configuration: %v", err)
	}

	// Define arguments
	solverPtr := flag.String("solver", cfg.Solver, "Solving backend. Allowed values are: \"gophersat\" (embedded, default) and \"roundingsat\" (external binary)")
	limitPtr := flag.Duration("limit", cfg.TimeLimit, "Time budget for the solve (e.g. 30s, 2m)")
	filePathPtr := flag.String("file", "", "Path to the JSON parameters file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the schedule will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()
	solverStr := strings.ToLower(*solverPtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	newSolver, ok := solvers[solverStr]
	if !ok {
		log.Fatalf("%v is not a valid solver", solverStr)
	} else if filePath == "" {
		log.Fatal("a parameters file must be specified")
	}

	// Extract input
	params, err := model.ParamsFromJSON(filePath)
	if err != nil {
		log.Fatalf("cannot parse parameters file: %v", err)
	}

	// Build schedule
	rosterer := model.NewRosterer(newSolver())
	schedule, status, err := rosterer.Build(params, *limitPtr)
	if err != nil {
		log.Fatalf("an error occurred during schedule construction: %v", err)
	} else if status == cp.Infeasible {
		fmt.Println("No feasible schedule exists.")
		os.Exit(20)
	} else if status == cp.Unknown {
		fmt.Println("No schedule found within the time limit.")
		os.Exit(40)
	}

	// Verify schedule correctness independently of the solver
	report := rosterer.Verify(schedule)
	if !report.Passed() {
		for _, verdict := range report.Failures() {
			fmt.Printf("violated: %v\n", verdict.Detail)
		}
		os.Exit(15)
	}

	// Build output: per-resident ordered working-hour lists
	workingHours := make([][]int, params.NResidents)
	for r := 0; r < params.NResidents; r++ {
		workingHours[r] = make([]int, 0, schedule.WorkingHours(r))
		for t := 0; t < params.NHours; t++ {
			if schedule.Value(r, t) {
				workingHours[r] = append(workingHours[r], t)
			}
		}
	}

	output, err := json.Marshal(map[string]any{
		"status":        status.String(),
		"working_hours": workingHours,
	})
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	if outFile == "" {
		fmt.Println(string(output))
	} else if err := os.WriteFile(outFile, output, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}

	os.Exit(10)
}
