// Package heartrate computes maximum heart rate and five training zones.
package heartrate

import (
	"math"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

// Method selects how maximum heart rate and zone bounds are derived:
// AgeFormula, Karvonen or Custom.
type Method interface {
	Name() string
	isMethod()
}

// AgeFormula estimates max HR as 220 - age and takes zones from max HR.
type AgeFormula struct{}

// Karvonen uses the age estimate for max HR but takes zones from the heart
// rate reserve, which needs a resting heart rate.
type Karvonen struct {
	RestingHR int `json:"restingHr" validate:"gte=30,lte=120"`
}

// Custom uses a measured max HR.
type Custom struct {
	MaxHR int `json:"maxHr" validate:"gte=100,lte=230"`
}

func (AgeFormula) Name() string { return "age" }
func (Karvonen) Name() string   { return "karvonen" }
func (Custom) Name() string     { return "custom" }

func (AgeFormula) isMethod() {}
func (Karvonen) isMethod()   {}
func (Custom) isMethod()     {}

// Zone is one training zone. Percentages are of max HR, or of the heart rate
// reserve for Karvonen.
type Zone struct {
	Number        int     `json:"zone"`
	Name          string  `json:"name"`
	MinPercentage float64 `json:"minPercentage"`
	MaxPercentage float64 `json:"maxPercentage"`
	MinBPM        int     `json:"minBpm"`
	MaxBPM        int     `json:"maxBpm"`
	Description   string  `json:"description"`
	Benefits      string  `json:"benefits"`
}

type zoneDef struct {
	name, description, benefits string
}

// zonePercentages are the boundaries between consecutive zones.
var zonePercentages = [...]float64{50, 60, 70, 80, 90, 100}

var zoneDefs = [...]zoneDef{
	{"Recovery", "Very light effort; easy conversation.", "Aids recovery and warms up the body."},
	{"Fat Burn", "Light effort; comfortable breathing.", "Builds basic endurance and fat metabolism."},
	{"Aerobic", "Moderate effort; speaking in short sentences.", "Improves cardiovascular fitness and efficiency."},
	{"Threshold", "Hard effort; speaking is difficult.", "Raises lactate threshold and speed endurance."},
	{"Maximum", "Maximal effort; sustainable for short intervals only.", "Develops peak power and VO2 max."},
}

type Input struct {
	Age    int    `json:"age" validate:"gte=10,lte=100"`
	Method Method `json:"-" validate:"-"`
	// RestingHR is optional for AgeFormula and Custom; it is only reported
	// back there. Karvonen carries its own.
	RestingHR *int `json:"restingHr,omitempty" validate:"omitempty,gte=30,lte=120"`
}

// AgeMaxHR is the age-formula estimate of maximum heart rate.
func AgeMaxHR(age int) int {
	return 220 - age
}

func (in Input) Validate() error {
	verr := validate.Struct(in)

	switch m := in.Method.(type) {
	case nil:
		verr.Add("method", "is required")
	case AgeFormula:
		if in.RestingHR != nil && !verr.Has("restingHr") && !verr.Has("age") && *in.RestingHR >= AgeMaxHR(in.Age) {
			verr.Add("restingHr", "must be lower than the maximum heart rate")
		}
	case Karvonen:
		verr.Check("method", m)
		if !verr.Has("method.restingHr") && !verr.Has("age") && m.RestingHR >= AgeMaxHR(in.Age) {
			verr.Add("method.restingHr", "must be lower than the maximum heart rate")
		}
		if in.RestingHR != nil && *in.RestingHR != m.RestingHR {
			verr.Add("restingHr", "conflicts with method.restingHr; Karvonen uses the method's resting heart rate")
		}
	case Custom:
		verr.Check("method", m)
		if !verr.Has("method.maxHr") && !verr.Has("age") {
			if float64(m.MaxHR) < 0.8*float64(AgeMaxHR(in.Age)) {
				verr.Add("method.maxHr", "is implausibly low for your age (below 80%% of %d)", AgeMaxHR(in.Age))
			}
			if in.RestingHR != nil && *in.RestingHR >= m.MaxHR {
				verr.Add("restingHr", "must be lower than the maximum heart rate")
			}
		}
	default:
		calc.UnknownVariant("heart rate method", m)
	}

	return verr.OrNil()
}

type Result struct {
	Method    string `json:"method"`
	MaxHR     int    `json:"maxHr"`
	RestingHR *int   `json:"restingHr,omitempty"`
	// ReserveHR is only set for Karvonen.
	ReserveHR *int     `json:"reserveHr,omitempty"`
	Zones     []Zone   `json:"zones"`
	FatBurn   Target   `json:"fatBurn"`
	Cardio    Target   `json:"cardio"`
	Tips      []string `json:"tips"`
}

// Target is a bpm range spanning one or more zones.
type Target struct {
	MinBPM int `json:"minBpm"`
	MaxBPM int `json:"maxBpm"`
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Method: in.Method.Name(), RestingHR: in.RestingHR}

	var bpm func(pct float64) int
	switch m := in.Method.(type) {
	case AgeFormula:
		res.MaxHR = AgeMaxHR(in.Age)
		bpm = func(pct float64) int { return int(math.Round(float64(res.MaxHR) * pct / 100)) }
	case Karvonen:
		res.MaxHR = AgeMaxHR(in.Age)
		reserve := res.MaxHR - m.RestingHR
		res.ReserveHR = &reserve
		resting := m.RestingHR
		res.RestingHR = &resting
		bpm = func(pct float64) int { return int(math.Round(float64(reserve)*pct/100)) + resting }
	case Custom:
		res.MaxHR = m.MaxHR
		bpm = func(pct float64) int { return int(math.Round(float64(res.MaxHR) * pct / 100)) }
	default:
		calc.UnknownVariant("heart rate method", m)
	}

	for i, def := range zoneDefs {
		lo, hi := zonePercentages[i], zonePercentages[i+1]
		res.Zones = append(res.Zones, Zone{
			Number:        i + 1,
			Name:          def.name,
			MinPercentage: lo,
			MaxPercentage: hi,
			MinBPM:        bpm(lo),
			MaxBPM:        bpm(hi),
			Description:   def.description,
			Benefits:      def.benefits,
		})
	}

	res.FatBurn = Target{MinBPM: res.Zones[1].MinBPM, MaxBPM: res.Zones[1].MaxBPM}
	res.Cardio = Target{MinBPM: res.Zones[2].MinBPM, MaxBPM: res.Zones[3].MaxBPM}
	res.Tips = tips(in)

	return res, nil
}

func tips(in Input) []string {
	out := []string{
		"Spend most of your weekly training time (about 80%) in zones 1-2.",
		"Reserve zones 4-5 for short intervals once or twice a week.",
	}
	if _, ok := in.Method.(Karvonen); !ok {
		out = append(out, "Measuring your resting heart rate enables the more personalised Karvonen method.")
	}
	if in.Age >= 60 {
		out = append(out, "Check with your doctor before regular training in zones 4-5.")
	}
	return out
}
