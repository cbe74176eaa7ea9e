package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Schedule is a feasible resident roster: a read-only projection of one solved
// assignment. assignments[r][t] is true when resident r works hour t. It is
// never mutated after creation and is discarded when superseded by a new
// solve.
type Schedule struct {
	params      SchedulingParams
	assignments [][]bool
}

// Params returns the parameters the schedule was solved with.
func (s *Schedule) Params() SchedulingParams {
	return s.params
}

// Value reports whether resident r works hour t.
func (s *Schedule) Value(r, t int) bool {
	if r < 0 || r >= s.params.NResidents || t < 0 || t >= s.params.NHours {
		panic(fmt.Sprintf("schedule cell (%d, %d) outside %dx%d schedule", r, t, s.params.NResidents, s.params.NHours))
	}
	return s.assignments[r][t]
}

// WorkingHours returns the total hours assigned to a resident over the full
// horizon.
func (s *Schedule) WorkingHours(r int) int {
	return lo.CountBy(s.assignments[r], func(working bool) bool { return working })
}

// OnDutyCount returns the number of residents on duty at a given hour.
func (s *Schedule) OnDutyCount(t int) int {
	count := 0
	for r := 0; r < s.params.NResidents; r++ {
		if s.assignments[r][t] {
			count++
		}
	}
	return count
}

// TeachingHoursCount returns the hours a resident worked during any of the
// designated teaching hours.
func (s *Schedule) TeachingHoursCount(r int) int {
	count := 0
	for _, t := range s.params.TeachingHours {
		if t >= 0 && t < s.params.NHours && s.assignments[r][t] {
			count++
		}
	}
	return count
}

// MaxConsecutive returns the longest run of consecutive working hours of a
// resident.
func (s *Schedule) MaxConsecutive(r int) int {
	longest, run := 0, 0
	for _, working := range s.assignments[r] {
		if working {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// ShiftLengths returns the length of every shift of a resident, in order.
func (s *Schedule) ShiftLengths(r int) []int {
	shifts := make([]int, 0)
	run := 0
	for _, working := range s.assignments[r] {
		if working {
			run++
		} else if run > 0 {
			shifts = append(shifts, run)
			run = 0
		}
	}
	if run > 0 {
		shifts = append(shifts, run)
	}
	return shifts
}
