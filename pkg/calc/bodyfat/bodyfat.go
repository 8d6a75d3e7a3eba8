// Package bodyfat estimates body-fat percentage with one of four methods and
// derives a body composition breakdown from it.
package bodyfat

import (
	"math"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/lookup"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

type Category string

const (
	Essential Category = "essential"
	Athletic  Category = "athletic"
	Fitness   Category = "fitness"
	Average   Category = "average"
	Obese     Category = "obese"
)

var categories = map[calc.Gender]lookup.Bands[Category]{
	calc.Male: {
		{Below: 6, Value: Essential},
		{Below: 14, Value: Athletic},
		{Below: 18, Value: Fitness},
		{Below: 25, Value: Average},
		{Below: math.Inf(1), Value: Obese},
	},
	calc.Female: {
		{Below: 14, Value: Essential},
		{Below: 21, Value: Athletic},
		{Below: 25, Value: Fitness},
		{Below: 32, Value: Average},
		{Below: math.Inf(1), Value: Obese},
	},
}

// Healthy ranges by age band (upper bound exclusive on age).
var healthyRanges = map[calc.Gender]lookup.Bands[Range]{
	calc.Male: {
		{Below: 40, Value: Range{Min: 8, Max: 19}},
		{Below: 60, Value: Range{Min: 11, Max: 21}},
		{Below: math.Inf(1), Value: Range{Min: 13, Max: 24}},
	},
	calc.Female: {
		{Below: 40, Value: Range{Min: 21, Max: 32}},
		{Below: 60, Value: Range{Min: 23, Max: 33}},
		{Below: math.Inf(1), Value: Range{Min: 24, Max: 35}},
	},
}

const boneMassShare = 0.15

type Input struct {
	Gender       calc.Gender  `json:"gender" validate:"oneof=male female"`
	Age          int          `json:"age" validate:"gte=18,lte=90"`
	WeightKg     float64      `json:"weightKg" validate:"gte=30,lte=300"`
	HeightCm     float64      `json:"heightCm" validate:"gte=120,lte=250"`
	Measurements Measurements `json:"-" validate:"-"`
}

func (in Input) Validate() error {
	verr := validate.Struct(in)
	if in.Measurements == nil {
		verr.Add("measurements", "is required")
		return verr.OrNil()
	}
	if verr.Has("gender") {
		// Method rules are gender-specific.
		return verr.OrNil()
	}
	in.Measurements.validate(in.Gender, verr)
	return verr.OrNil()
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Composition struct {
	FatMassKg    float64 `json:"fatMassKg"`
	LeanMassKg   float64 `json:"leanMassKg"`
	BoneMassKg   float64 `json:"boneMassKg"`
	MuscleMassKg float64 `json:"muscleMassKg"`
}

type Result struct {
	Method Method `json:"method"`
	// BodyFatPercent is the unrounded formula output.
	BodyFatPercent  float64        `json:"bodyFatPercent"`
	Category        Category       `json:"category"`
	Composition     Composition    `json:"composition"`
	HealthyRange    Range          `json:"healthyRange"`
	Recommendations []string       `json:"recommendations"`
	Warnings        []calc.Warning `json:"warnings,omitempty"`
}

const (
	minPlausiblePercent = 2
	maxPlausiblePercent = 60
)

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	pct := percent(in.Measurements, in.Gender, in.Age, in.WeightKg, in.HeightCm)
	category := Classify(in.Gender, pct)

	plausible := pct >= minPlausiblePercent && pct <= maxPlausiblePercent

	// Composition is derived from the estimate clamped to the plausible
	// range so masses stay within body weight.
	fat := in.WeightKg * math.Max(minPlausiblePercent, math.Min(pct, maxPlausiblePercent)) / 100
	lean := in.WeightKg - fat
	bone := in.WeightKg * boneMassShare

	res := Result{
		Method:         in.Measurements.Method(),
		BodyFatPercent: pct,
		Category:       category,
		Composition: Composition{
			FatMassKg:    lookup.Round(fat, 1),
			LeanMassKg:   lookup.Round(lean, 1),
			BoneMassKg:   lookup.Round(bone, 1),
			MuscleMassKg: lookup.Round(lean-bone, 1),
		},
		HealthyRange:    healthyRanges[in.Gender].Find(float64(in.Age)),
		Recommendations: recommendations(category),
	}

	if !plausible {
		res.Warnings = append(res.Warnings, calc.Warning{
			Severity: calc.SeverityWarning,
			Message:  "This estimate is outside the typical human range. Please re-check your measurements.",
		})
	}
	if plausible && category == Essential {
		res.Warnings = append(res.Warnings, calc.Warning{
			Severity: calc.SeverityCaution,
			Message:  "Body fat at essential levels is hard to sustain and can affect hormonal health.",
		})
	}

	return res, nil
}

// Classify maps a body-fat percentage to its gender-specific category.
func Classify(g calc.Gender, pct float64) Category {
	bands, ok := categories[g]
	if !ok {
		calc.UnknownVariant("gender", g)
	}
	return bands.Find(pct)
}

func recommendations(c Category) []string {
	switch c {
	case Essential:
		return []string{
			"Increase energy intake with nutrient-dense foods.",
			"Make sure you eat enough healthy fats to support hormone production.",
			"Consider working with a sports dietitian.",
		}
	case Athletic, Fitness:
		return []string{
			"Maintain your current training and nutrition habits.",
			"Keep protein intake around 1.6-2.2 g per kg of body weight.",
			"Include progressive strength training to preserve muscle.",
		}
	case Average:
		return []string{
			"Combine strength training 2-3 times a week with regular cardio.",
			"A small calorie deficit with high protein intake reduces fat while keeping muscle.",
			"Track your measurements monthly rather than daily.",
		}
	case Obese:
		return []string{
			"Consult a healthcare provider about a structured fat-loss plan.",
			"Start with daily walking and build up to 150+ minutes of activity per week.",
			"Prioritise whole foods, vegetables and lean protein.",
			"Aim to lose 0.5-1% of body weight per week.",
		}
	default:
		calc.UnknownVariant("body fat category", c)
		return nil
	}
}
