// Package ovulation predicts ovulation, the fertile window and upcoming
// periods from the last menstrual period (LMP).
package ovulation

import (
	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

type Phase string

const (
	Menstrual  Phase = "menstrual"
	Follicular Phase = "follicular"
	Ovulatory  Phase = "ovulation"
	Luteal     Phase = "luteal"
)

const (
	// The luteal phase is taken as a fixed 14 days.
	lutealDays = 14
	// The fertile window opens this many days before ovulation.
	fertileLeadDays = 5

	maxLMPAgeDays    = 90
	projectionCycles = 6
)

type Input struct {
	LMP          calc.Date `json:"lmp" validate:"-"`
	CycleLength  int       `json:"cycleLength" validate:"gte=21,lte=45"`
	PeriodLength int       `json:"periodLength" validate:"gte=2,lte=10"`
	Today        calc.Date `json:"today" validate:"-"`
}

func (in Input) Validate() error {
	verr := validate.Struct(in)

	switch {
	case in.LMP.IsZero():
		verr.Add("lmp", "is required")
	case in.Today.IsZero():
		verr.Add("today", "is required")
	case in.LMP.After(in.Today):
		verr.Add("lmp", "must not be in the future")
	case in.Today.DaysSince(in.LMP) > maxLMPAgeDays:
		verr.Add("lmp", "must be within the last %d days", maxLMPAgeDays)
	}

	return verr.OrNil()
}

// Cycle is one predicted menstrual cycle.
type Cycle struct {
	PeriodStart   calc.Date      `json:"periodStart"`
	PeriodEnd     calc.Date      `json:"periodEnd"`
	Ovulation     calc.Date      `json:"ovulation"`
	FertileWindow calc.DateRange `json:"fertileWindow"`
}

// CycleStarting predicts the cycle that begins on start.
func CycleStarting(start calc.Date, cycleLength, periodLength int) Cycle {
	ov := start.AddDays(cycleLength - lutealDays)
	return Cycle{
		PeriodStart:   start,
		PeriodEnd:     start.AddDays(periodLength - 1),
		Ovulation:     ov,
		FertileWindow: calc.DateRange{Start: ov.AddDays(-fertileLeadDays), End: ov},
	}
}

type Result struct {
	// The fields below describe the cycle that started on LMP.
	OvulationDate  calc.Date      `json:"ovulationDate"`
	FertileWindow  calc.DateRange `json:"fertileWindow"`
	NextPeriodDate calc.Date      `json:"nextPeriodDate"`
	// PregnancyTestDate is the earliest reliable home test day: the day the
	// next period is due.
	PregnancyTestDate calc.Date `json:"pregnancyTestDate"`

	CurrentPhase        Phase    `json:"currentPhase"`
	CycleDay            int      `json:"cycleDay"`
	DaysUntilNextPeriod int      `json:"daysUntilNextPeriod"`
	DaysUntilOvulation  int      `json:"daysUntilOvulation"`
	UpcomingCycles      []Cycle  `json:"upcomingCycles"`
	Tips                []string `json:"tips"`
}

// PhaseOn returns the phase for a day offset within a cycle, 0 being the
// first day of the period. Menstrual wins where windows overlap in short
// cycles.
func PhaseOn(day, cycleLength, periodLength int) Phase {
	ov := cycleLength - lutealDays
	switch {
	case day < periodLength:
		return Menstrual
	case day < ov-fertileLeadDays:
		return Follicular
	case day <= ov:
		return Ovulatory
	default:
		return Luteal
	}
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	first := CycleStarting(in.LMP, in.CycleLength, in.PeriodLength)
	next := in.LMP.AddDays(in.CycleLength)

	res := Result{
		OvulationDate:     first.Ovulation,
		FertileWindow:     first.FertileWindow,
		NextPeriodDate:    next,
		PregnancyTestDate: next,
	}

	elapsed := in.Today.DaysSince(in.LMP)
	n := elapsed / in.CycleLength
	day := elapsed % in.CycleLength
	current := CycleStarting(in.LMP.AddDays(n*in.CycleLength), in.CycleLength, in.PeriodLength)

	res.CurrentPhase = PhaseOn(day, in.CycleLength, in.PeriodLength)
	res.CycleDay = day + 1
	res.DaysUntilNextPeriod = in.CycleLength - day

	nextOv := current.Ovulation
	if nextOv.Before(in.Today) {
		nextOv = nextOv.AddDays(in.CycleLength)
	}
	res.DaysUntilOvulation = nextOv.DaysSince(in.Today)

	for i := 1; i <= projectionCycles; i++ {
		start := in.LMP.AddDays((n + i) * in.CycleLength)
		res.UpcomingCycles = append(res.UpcomingCycles, CycleStarting(start, in.CycleLength, in.PeriodLength))
	}

	res.Tips = tips(res.CurrentPhase, in)
	return res, nil
}

func tips(p Phase, in Input) []string {
	out := []string{
		"Predictions assume a regular cycle; tracking basal body temperature or LH tests improves accuracy.",
	}
	switch p {
	case Menstrual:
		out = append(out, "Iron-rich foods and gentle activity can help during your period.")
	case Follicular:
		out = append(out, "Your fertile window is approaching.")
	case Ovulatory:
		out = append(out, "You are in your fertile window; conception is most likely in the two days before ovulation.")
	case Luteal:
		out = append(out, "If you are trying to conceive, a home pregnancy test is most reliable from the day your period is due.")
	default:
		calc.UnknownVariant("cycle phase", p)
	}
	if in.CycleLength < 24 || in.CycleLength > 38 {
		out = append(out, "Cycles shorter than 24 or longer than 38 days are worth discussing with a doctor.")
	}
	return out
}
