// Package hydration estimates daily fluid needs from body weight, age,
// activity, climate and health factors.
package hydration

import (
	"fmt"
	"math"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/lookup"
	"github.com/charlie0129/healthcalc/pkg/calc/units"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityVigorous Intensity = "vigorous"
	IntensityExtreme  Intensity = "extreme"
)

// liters lost per hour of exercise
var intensityRates = map[Intensity]float64{
	IntensityLight:    0.4,
	IntensityModerate: 0.6,
	IntensityVigorous: 0.8,
	IntensityExtreme:  1.0,
}

type SweatRate string

const (
	SweatLow     SweatRate = "low"
	SweatAverage SweatRate = "average"
	SweatHigh    SweatRate = "high"
)

var sweatFactors = map[SweatRate]float64{
	SweatLow:     0.8,
	SweatAverage: 1.0,
	SweatHigh:    1.2,
}

type Climate string

const (
	Temperate Climate = "temperate"
	Warm      Climate = "warm"
	Hot       Climate = "hot"
	Humid     Climate = "humid"
	Extreme   Climate = "extreme"
)

var climateFractions = map[Climate]float64{
	Temperate: 0,
	Warm:      0.1,
	Hot:       0.2,
	Humid:     0.3,
	Extreme:   0.4,
}

type Condition string

const (
	Fever            Condition = "fever"
	VomitingDiarrhea Condition = "vomiting_diarrhea"
	KidneyStones     Condition = "kidney_stones"
	UrinaryInfection Condition = "urinary_infection"
	Diabetes         Condition = "diabetes"
)

var conditionFractions = map[Condition]float64{
	Fever:            0.15,
	VomitingDiarrhea: 0.25,
	KidneyStones:     0.20,
	UrinaryInfection: 0.10,
	Diabetes:         0.10,
}

var (
	weightBands = lookup.Bands[float64]{
		{Below: 60, Value: 0.9},
		{Below: 90, Value: 1.0},
		{Below: math.Inf(1), Value: 1.1},
	}
	// ml per kg, by age in years
	ageRates = lookup.Bands[float64]{
		{Below: 31, Value: 40},
		{Below: 56, Value: 35},
		{Below: 66, Value: 30},
		{Below: math.Inf(1), Value: 25},
	}
)

const (
	pregnancyL       = 0.3
	breastfeedingL   = 0.7
	alcoholPerDrinkL = 0.1

	wakingHours = 16
)

type Input struct {
	Gender   calc.Gender `json:"gender" validate:"oneof=male female"`
	Age      int         `json:"age" validate:"gte=1,lte=120"`
	WeightKg float64     `json:"weightKg" validate:"gte=10,lte=300"`

	ExerciseHours float64   `json:"exerciseHours" validate:"gte=0,lte=12"`
	Intensity     Intensity `json:"intensity,omitempty" validate:"omitempty,oneof=light moderate vigorous extreme"`
	SweatRate     SweatRate `json:"sweatRate,omitempty" validate:"omitempty,oneof=low average high"`

	Climate    Climate     `json:"climate" validate:"oneof=temperate warm hot humid extreme"`
	Conditions []Condition `json:"conditions,omitempty" validate:"dive,oneof=fever vomiting_diarrhea kidney_stones urinary_infection diabetes"`

	Pregnant      bool `json:"pregnant,omitempty"`
	Breastfeeding bool `json:"breastfeeding,omitempty"`

	CaffeineMg    float64 `json:"caffeineMg,omitempty" validate:"gte=0,lte=2000"`
	AlcoholDrinks int     `json:"alcoholDrinks,omitempty" validate:"gte=0,lte=30"`
}

func (in Input) Validate() error {
	verr := validate.Struct(in)

	if in.ExerciseHours > 0 && in.Intensity == "" {
		verr.Add("intensity", "is required when exercise hours are given")
	}
	if in.Gender == calc.Male {
		if in.Pregnant {
			verr.Add("pregnant", "only applies to female users")
		}
		if in.Breastfeeding {
			verr.Add("breastfeeding", "only applies to female users")
		}
	}
	seen := make(map[Condition]bool, len(in.Conditions))
	for i, c := range in.Conditions {
		if seen[c] {
			verr.Add(fmt.Sprintf("conditions[%d]", i), "is listed twice")
		}
		seen[c] = true
	}

	return verr.OrNil()
}

// Component is one line of the intake breakdown, in liters.
type Component struct {
	Name   string  `json:"name"`
	Liters float64 `json:"liters"`
}

type Result struct {
	BaselineL float64        `json:"baselineL"`
	TotalL    float64        `json:"totalL"`
	TotalFlOz float64        `json:"totalFlOz"`
	TotalCups float64        `json:"totalCups"`
	HourlyMl  float64        `json:"hourlyMl"`
	Breakdown []Component    `json:"breakdown"`
	Tips      []string       `json:"tips"`
	Warnings  []calc.Warning `json:"warnings,omitempty"`
}

// Baseline blends three resting estimates, in liters.
func Baseline(g calc.Gender, age int, kg float64) float64 {
	simple := 35 * kg
	rate := ageRates.Find(float64(age))
	if g == calc.Female {
		rate *= 0.95
	}
	return (0.4*simple + 0.3*HollidaySegar(kg) + 0.3*rate*kg) / 1000
}

// HollidaySegar is the tiered maintenance fluid estimate in ml: 100 ml/kg
// for the first 10 kg, 50 ml/kg for the next 10 kg and 20 ml/kg beyond.
func HollidaySegar(kg float64) float64 {
	switch {
	case kg <= 10:
		return 100 * kg
	case kg <= 20:
		return 1000 + 50*(kg-10)
	default:
		return 1500 + 20*(kg-20)
	}
}

// ExerciseLiters is the extra fluid lost during exercise.
func ExerciseLiters(hours float64, i Intensity, s SweatRate, kg float64) float64 {
	if hours == 0 {
		return 0
	}
	rate, ok := intensityRates[i]
	if !ok {
		calc.UnknownVariant("exercise intensity", i)
	}
	if s == "" {
		s = SweatAverage
	}
	sweat, ok := sweatFactors[s]
	if !ok {
		calc.UnknownVariant("sweat rate", s)
	}
	return hours * rate * sweat * weightBands.Find(kg)
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	base := Baseline(in.Gender, in.Age, in.WeightKg)
	parts := []Component{{Name: "Baseline", Liters: base}}
	add := func(name string, l float64) {
		if l > 0 {
			parts = append(parts, Component{Name: name, Liters: l})
		}
	}

	add("Exercise", ExerciseLiters(in.ExerciseHours, in.Intensity, in.SweatRate, in.WeightKg))

	climate, ok := climateFractions[in.Climate]
	if !ok {
		calc.UnknownVariant("climate", in.Climate)
	}
	add("Climate", base*climate)

	var cond float64
	for _, c := range in.Conditions {
		f, ok := conditionFractions[c]
		if !ok {
			calc.UnknownVariant("health condition", c)
		}
		cond += f
	}
	add("Health conditions", base*cond)

	if in.Pregnant {
		add("Pregnancy", pregnancyL)
	}
	if in.Breastfeeding {
		add("Breastfeeding", breastfeedingL)
	}

	switch {
	case in.CaffeineMg > 400:
		add("Caffeine", 0.2)
	case in.CaffeineMg > 200:
		add("Caffeine", 0.1)
	}
	add("Alcohol", alcoholPerDrinkL*float64(in.AlcoholDrinks))

	var total float64
	for i := range parts {
		total += parts[i].Liters
		parts[i].Liters = lookup.Round(parts[i].Liters, 2)
	}

	res := Result{
		BaselineL: lookup.Round(base, 2),
		TotalL:    lookup.Round(total, 2),
		TotalFlOz: lookup.Round(units.LitersToFlOz(total), 1),
		TotalCups: lookup.Round(units.LitersToCups(total), 1),
		HourlyMl:  math.Round(total * 1000 / wakingHours),
		Breakdown: parts,
		Tips:      tips(in),
	}

	if total > 6 {
		res.Warnings = append(res.Warnings, calc.Warning{
			Severity: calc.SeverityWarning,
			Message:  "Drinking more than 6 liters a day can dilute blood sodium. Spread intake evenly and include electrolytes.",
		})
	}
	for _, c := range in.Conditions {
		if c == KidneyStones || c == VomitingDiarrhea {
			res.Warnings = append(res.Warnings, calc.Warning{
				Severity: calc.SeverityCaution,
				Message:  "Follow your doctor's fluid guidance for your condition; it takes precedence over this estimate.",
			})
			break
		}
	}

	return res, nil
}

func tips(in Input) []string {
	out := []string{
		"Drink steadily through the day rather than large amounts at once.",
		"Pale yellow urine is a good sign of adequate hydration.",
	}
	if in.ExerciseHours > 0 {
		out = append(out, "Drink 400-600 ml about two hours before exercise and sip every 15-20 minutes during it.")
	}
	if in.ExerciseHours >= 1 && (in.Intensity == IntensityVigorous || in.Intensity == IntensityExtreme) {
		out = append(out, "For long or intense sessions, replace electrolytes as well as water.")
	}
	if in.Climate != Temperate {
		out = append(out, "Hot or humid weather raises losses through sweat; carry water with you.")
	}
	if in.CaffeineMg > 200 || in.AlcoholDrinks > 0 {
		out = append(out, "Match each caffeinated or alcoholic drink with a glass of water.")
	}
	if in.Age > 65 {
		out = append(out, "Thirst becomes a less reliable signal with age; drink on a schedule.")
	}
	return out
}
