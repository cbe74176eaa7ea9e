package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Rule identifies one of the seven scheduling rules.
type Rule int

const (
	RuleMinOnDuty Rule = iota
	RuleMinRest
	RuleMaxConsecutive
	RuleMaxWeekly
	RuleMinTeaching
	RuleMinShiftLength
	RuleMinDaysOff
)

func (r Rule) String() string {
	switch r {
	case RuleMinOnDuty:
		return "minimum on-duty coverage"
	case RuleMinRest:
		return "minimum rest between shifts"
	case RuleMaxConsecutive:
		return "maximum consecutive hours"
	case RuleMaxWeekly:
		return "maximum weekly hours"
	case RuleMinTeaching:
		return "minimum teaching attendance"
	case RuleMinShiftLength:
		return "minimum shift length"
	case RuleMinDaysOff:
		return "minimum days off per week"
	default:
		return "unknown rule"
	}
}

// Verdict is the outcome of checking one rule. A failing verdict carries the
// first violating witness; -1 marks witness dimensions the rule has no use
// for.
type Verdict struct {
	Rule     Rule
	Passed   bool
	Resident int
	Hour     int
	Week     int
	Detail   string
}

// Report holds one verdict per rule, in rule order.
type Report []Verdict

func (report Report) Passed() bool {
	return lo.EveryBy(report, func(v Verdict) bool { return v.Passed })
}

func (report Report) Failures() []Verdict {
	return lo.Filter(report, func(v Verdict, _ int) bool { return !v.Passed })
}

// Validate re-checks all seven rules directly against the schedule matrix.
// Each check is re-derived from the rule definition, deliberately sharing no
// code with the constraint compilers, so that it can catch compiler bugs.
func Validate(schedule *Schedule) Report {
	return Report{
		checkMinOnDuty(schedule),
		checkMinRest(schedule),
		checkMaxConsecutive(schedule),
		checkMaxWeekly(schedule),
		checkMinTeaching(schedule),
		checkMinShiftLength(schedule),
		checkMinDaysOff(schedule),
	}
}

func passed(rule Rule) Verdict {
	return Verdict{Rule: rule, Passed: true, Resident: -1, Hour: -1, Week: -1}
}

func failed(rule Rule, resident, hour, week int, detail string) Verdict {
	return Verdict{Rule: rule, Resident: resident, Hour: hour, Week: week, Detail: detail}
}

func checkMinOnDuty(s *Schedule) Verdict {
	params := s.params
	for t := 0; t < params.NHours; t++ {
		if count := s.OnDutyCount(t); count < params.MinOnDuty {
			return failed(RuleMinOnDuty, -1, t, -1,
				fmt.Sprintf("only %v residents on duty at hour %v (need %v)", count, t, params.MinOnDuty))
		}
	}
	return passed(RuleMinOnDuty)
}

// checkMinRest scans every shift boundary and confirms no work resumes within
// MinRest hours of it.
func checkMinRest(s *Schedule) Verdict {
	params := s.params
	for r := 0; r < params.NResidents; r++ {
		for t := 0; t+1 < params.NHours; t++ {
			if !s.Value(r, t) || s.Value(r, t+1) {
				continue // not a shift end
			}
			for offset := 1; offset <= params.MinRest && t+offset < params.NHours; offset++ {
				if s.Value(r, t+offset) {
					return failed(RuleMinRest, r, t+offset, -1,
						fmt.Sprintf("resident %v resumes work at hour %v, only %v hours after the shift ending at %v", r, t+offset, offset, t))
				}
			}
		}
	}
	return passed(RuleMinRest)
}

func checkMaxConsecutive(s *Schedule) Verdict {
	params := s.params
	for r := 0; r < params.NResidents; r++ {
		run := 0
		for t := 0; t < params.NHours; t++ {
			if !s.Value(r, t) {
				run = 0
				continue
			}
			run++
			if run > params.MaxConsecutive {
				return failed(RuleMaxConsecutive, r, t, -1,
					fmt.Sprintf("resident %v works %v consecutive hours at hour %v (max %v)", r, run, t, params.MaxConsecutive))
			}
		}
	}
	return passed(RuleMaxConsecutive)
}

func checkMaxWeekly(s *Schedule) Verdict {
	params := s.params
	for r := 0; r < params.NResidents; r++ {
		for weekStart := 0; weekStart < params.NHours; weekStart += hoursPerWeek {
			weekEnd := min(weekStart+hoursPerWeek, params.NHours)
			weekly := 0
			for t := weekStart; t < weekEnd; t++ {
				if s.Value(r, t) {
					weekly++
				}
			}
			if weekly > params.MaxWeekly {
				week := weekStart / hoursPerWeek
				return failed(RuleMaxWeekly, r, weekStart, week,
					fmt.Sprintf("resident %v works %v hours in week %v (max %v)", r, weekly, week, params.MaxWeekly))
			}
		}
	}
	return passed(RuleMaxWeekly)
}

func checkMinTeaching(s *Schedule) Verdict {
	params := s.params
	for r := 0; r < params.NResidents; r++ {
		if count := s.TeachingHoursCount(r); count < params.MinTeaching {
			return failed(RuleMinTeaching, r, -1, -1,
				fmt.Sprintf("resident %v attends %v teaching hours (need %v)", r, count, params.MinTeaching))
		}
	}
	return passed(RuleMinTeaching)
}

// checkMinShiftLength measures every maximal run of working hours, including
// one that reaches the end of the horizon.
func checkMinShiftLength(s *Schedule) Verdict {
	params := s.params
	for r := 0; r < params.NResidents; r++ {
		shiftStart := -1
		for t := 0; t < params.NHours; t++ {
			if s.Value(r, t) {
				if shiftStart < 0 {
					shiftStart = t
				}
				continue
			}
			if shiftStart >= 0 {
				if length := t - shiftStart; length < params.MinShiftLength {
					return failed(RuleMinShiftLength, r, shiftStart, -1,
						fmt.Sprintf("resident %v works a %v-hour shift starting at hour %v (min %v)", r, length, shiftStart, params.MinShiftLength))
				}
				shiftStart = -1
			}
		}
		if shiftStart >= 0 {
			if length := params.NHours - shiftStart; length < params.MinShiftLength {
				return failed(RuleMinShiftLength, r, shiftStart, -1,
					fmt.Sprintf("resident %v works a %v-hour shift starting at hour %v (min %v)", r, length, shiftStart, params.MinShiftLength))
			}
		}
	}
	return passed(RuleMinShiftLength)
}

// checkMinDaysOff counts, per week, every 24-hour window the resident spends
// fully off duty. Overlapping windows count separately, matching the
// compiler's indicator semantics. Week blocks shorter than 24 hours are
// skipped.
func checkMinDaysOff(s *Schedule) Verdict {
	params := s.params
	for r := 0; r < params.NResidents; r++ {
		for weekStart := 0; weekStart < params.NHours; weekStart += hoursPerWeek {
			weekEnd := min(weekStart+hoursPerWeek, params.NHours)
			if weekEnd-weekStart < hoursPerDay {
				continue
			}

			freeWindows := 0
			for t := weekStart; t <= weekEnd-hoursPerDay; t++ {
				free := true
				for offset := 0; offset < hoursPerDay; offset++ {
					if s.Value(r, t+offset) {
						free = false
						break
					}
				}
				if free {
					freeWindows++
				}
			}

			if freeWindows < params.MinDaysOffPerWeek {
				week := weekStart / hoursPerWeek
				return failed(RuleMinDaysOff, r, weekStart, week,
					fmt.Sprintf("resident %v has %v full days off in week %v (need %v)", r, freeWindows, week, params.MinDaysOffPerWeek))
			}
		}
	}
	return passed(RuleMinDaysOff)
}
