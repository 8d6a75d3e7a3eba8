// Package sleep suggests bedtimes or wake times that line up with whole
// 90-minute sleep cycles.
package sleep

import (
	"math"
	"sort"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/lookup"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

type Mode string

const (
	// WakeAt takes a wake-up time and suggests bedtimes.
	WakeAt Mode = "wake"
	// SleepAt takes a bedtime and suggests wake-up times.
	SleepAt Mode = "bed"
)

const (
	cycleMinutes   = 90
	latencyMinutes = 15
)

type quality struct {
	cycles int
	label  string
}

// Candidates in the order they are offered.
var qualities = []quality{
	{cycles: 5, label: "Excellent"},
	{cycles: 6, label: "Very good"},
	{cycles: 4, label: "Fair"},
}

type Chronotype string

const (
	EarlyBird    Chronotype = "early_bird"
	Intermediate Chronotype = "intermediate"
	NightOwl     Chronotype = "night_owl"
)

// Bedtimes are ranked on a clock that starts at 18:00 so that 23:30 comes
// before 00:30.
var eveningStart = At(18, 0)

var (
	bedtimeChronotypes = lookup.Bands[Chronotype]{
		{Below: 4 * 60, Value: EarlyBird},    // 18:00-21:59
		{Below: 6 * 60, Value: Intermediate}, // 22:00-23:59
		{Below: math.Inf(1), Value: NightOwl},
	}
	wakeChronotypes = lookup.Bands[Chronotype]{
		{Below: 6 * 60, Value: EarlyBird},
		{Below: 8 * 60, Value: Intermediate},
		{Below: math.Inf(1), Value: NightOwl},
	}
)

// HoursRange is a recommended nightly sleep duration.
type HoursRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// recommendedHours by age in years.
var recommendedHours = lookup.Bands[HoursRange]{
	{Below: 3, Value: HoursRange{11, 14}},
	{Below: 6, Value: HoursRange{10, 13}},
	{Below: 14, Value: HoursRange{9, 11}},
	{Below: 18, Value: HoursRange{8, 10}},
	{Below: 65, Value: HoursRange{7, 9}},
	{Below: math.Inf(1), Value: HoursRange{7, 8}},
}

// RecommendedHours returns the nightly sleep recommendation for age.
func RecommendedHours(age int) HoursRange {
	return recommendedHours.Find(float64(age))
}

type Input struct {
	Mode Mode `json:"mode" validate:"oneof=wake bed"`
	// Time is the wake-up time for WakeAt and the bedtime for SleepAt.
	Time  Clock `json:"time" validate:"gte=0,lt=1440"`
	Count int   `json:"count" validate:"gte=1,lte=3"`
	Age   *int  `json:"age,omitempty" validate:"omitempty,gte=1,lte=120"`
}

func (in Input) Validate() error {
	return validate.Struct(in).OrNil()
}

type Candidate struct {
	Time       Clock   `json:"time"`
	Cycles     int     `json:"cycles"`
	SleepHours float64 `json:"sleepHours"`
	Quality    string  `json:"quality"`
	// MeetsRecommendation is only set when an age was given.
	MeetsRecommendation *bool `json:"meetsRecommendation,omitempty"`
}

type Result struct {
	Mode             Mode        `json:"mode"`
	Target           Clock       `json:"target"`
	Candidates       []Candidate `json:"candidates"`
	Chronotype       Chronotype  `json:"chronotype"`
	RecommendedHours *HoursRange `json:"recommendedHours,omitempty"`
	Tips             []string    `json:"tips"`
}

// candidateTime is the bedtime (WakeAt) or wake time (SleepAt) for the
// given number of cycles.
func candidateTime(m Mode, target Clock, cycles int) Clock {
	total := cycles*cycleMinutes + latencyMinutes
	switch m {
	case WakeAt:
		return target.Add(-total)
	case SleepAt:
		return target.Add(total)
	default:
		calc.UnknownVariant("sleep mode", m)
		return 0
	}
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Mode: in.Mode, Target: in.Time}
	if in.Age != nil {
		r := RecommendedHours(*in.Age)
		res.RecommendedHours = &r
	}

	for _, q := range qualities[:in.Count] {
		c := Candidate{
			Time:       candidateTime(in.Mode, in.Time, q.cycles),
			Cycles:     q.cycles,
			SleepHours: float64(q.cycles*cycleMinutes) / 60,
			Quality:    q.label,
		}
		if res.RecommendedHours != nil {
			meets := c.SleepHours >= res.RecommendedHours.Min
			c.MeetsRecommendation = &meets
		}
		res.Candidates = append(res.Candidates, c)
	}

	res.Chronotype = chronotype(in.Mode, res.Candidates)
	res.Tips = tips(in.Mode, res.Chronotype)
	return res, nil
}

func chronotype(m Mode, cs []Candidate) Chronotype {
	times := make([]Clock, len(cs))
	for i, c := range cs {
		times[i] = c.Time
	}

	switch m {
	case WakeAt:
		sort.Slice(times, func(i, j int) bool {
			return times[i].since(eveningStart) < times[j].since(eveningStart)
		})
		return bedtimeChronotypes.Find(float64(times[0].since(eveningStart)))
	case SleepAt:
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
		return wakeChronotypes.Find(float64(times[0]))
	default:
		calc.UnknownVariant("sleep mode", m)
		return ""
	}
}

func tips(m Mode, c Chronotype) []string {
	out := []string{
		"Keep the same sleep and wake times every day, including weekends.",
		"Most people take about 15 minutes to fall asleep; the suggested times already allow for it.",
	}
	if m == WakeAt {
		out = append(out, "Dim the lights and put screens away 30-60 minutes before bed.")
	} else {
		out = append(out, "Get daylight soon after waking to anchor your body clock.")
	}
	switch c {
	case EarlyBird:
		out = append(out, "Schedule demanding work in the morning when you are most alert.")
	case Intermediate:
	case NightOwl:
		out = append(out, "Avoid caffeine after early afternoon, and shift your schedule earlier gradually if it clashes with your commitments.")
	default:
		calc.UnknownVariant("chronotype", c)
	}
	return out
}
