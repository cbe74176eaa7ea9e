package main

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/IlayMenahem/residentProblem/internal/cp"
	"github.com/IlayMenahem/residentProblem/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const (
	hoursPerDay  = 24
	hoursPerWeek = 168
)

// Hour 0 is Sunday 00:00.
var days = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

var (
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	workingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	teachingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	weekStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// buildTeachingHours returns sorted absolute hour indices for the given days
// and daily time range. startHour is inclusive, endHour exclusive.
func buildTeachingHours(dayNames []string, startHour, endHour int) []int {
	hours := make([]int, 0, len(dayNames)*(endHour-startHour))
	for _, day := range dayNames {
		for h := startHour; h < endHour; h++ {
			hours = append(hours, days[day]*hoursPerDay+h)
		}
	}
	slices.Sort(hours)
	return hours
}

// Example: schedule 10 residents over one week with realistic hospital rules:
// at least 3 on duty at all times, 10 hours of rest between shifts, no shift
// longer than 12 hours or shorter than 6, at most 60 working hours a week, one
// full day off, and teaching rounds 12:00-16:00 Sunday through Thursday with
// at least 10 attended hours per resident.
func main() {
	teachingHours := buildTeachingHours(
		[]string{"sunday", "monday", "tuesday", "wednesday", "thursday"},
		12, 16,
	)

	params := model.SchedulingParams{
		NResidents:        10,
		NHours:            168,
		MinOnDuty:         3,
		MinRest:           10,
		MaxConsecutive:    12,
		MaxWeekly:         60,
		TeachingHours:     teachingHours,
		MinTeaching:       10,
		MinShiftLength:    6,
		MinDaysOffPerWeek: 1,
	}

	rosterer := model.NewRosterer(cp.NewGophersatSolver())

	fmt.Println("Solving resident scheduling problem ...")
	schedule, status, err := rosterer.Build(params, 60*time.Second)
	if err != nil {
		log.Fatalf("cannot build schedule: %v", err)
	} else if status == cp.Infeasible {
		fmt.Println("No feasible schedule exists.")
		return
	} else if status == cp.Unknown {
		fmt.Println("No schedule found within the time limit.")
		return
	}

	printSummary(schedule, status)
	fmt.Println()
	renderHeatmap(schedule)
	fmt.Println()

	report := rosterer.Verify(schedule)
	if !report.Passed() {
		for _, verdict := range report.Failures() {
			fmt.Printf("  violated: %v\n", verdict.Detail)
		}
		log.Fatal("verification failed")
	}
	fmt.Println("All scheduling rules satisfied.")
}

func printSummary(schedule *model.Schedule, status cp.Status) {
	params := schedule.Params()

	fmt.Printf("Schedule summary (%v residents, %v hours, %v)\n", params.NResidents, params.NHours, status)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("%-12v%10v%14v%12v\n", "Resident", "Total hrs", "Teaching hrs", "Max consec")
	fmt.Println(strings.Repeat("-", 60))
	for r := 0; r < params.NResidents; r++ {
		fmt.Printf("  R%-9d%10d%14d%12d\n", r, schedule.WorkingHours(r), schedule.TeachingHoursCount(r), schedule.MaxConsecutive(r))
	}
}

// renderHeatmap prints the roster grid: one row per resident, one column per
// hour. Working hours are solid blocks, teaching hours green, week boundaries
// marked in red.
func renderHeatmap(schedule *model.Schedule) {
	params := schedule.Params()

	teaching := make(map[int]bool, len(params.TeachingHours))
	for _, t := range params.TeachingHours {
		teaching[t] = true
	}

	var builder strings.Builder
	for r := 0; r < params.NResidents; r++ {
		builder.WriteString(labelStyle.Render(fmt.Sprintf("R%-3d", r)))
		for t := 0; t < params.NHours; t++ {
			if t > 0 && t%hoursPerWeek == 0 {
				builder.WriteString(weekStyle.Render("|"))
			}
			switch {
			case schedule.Value(r, t) && teaching[t]:
				builder.WriteString(teachingStyle.Render("█"))
			case schedule.Value(r, t):
				builder.WriteString(workingStyle.Render("█"))
			case teaching[t]:
				builder.WriteString(teachingStyle.Render("·"))
			default:
				builder.WriteString(" ")
			}
		}
		builder.WriteString("\n")
	}
	builder.WriteString(labelStyle.Render(fmt.Sprintf("    (columns are hours 0-%d; green marks teaching hours)", params.NHours-1)))

	fmt.Println(builder.String())
}
