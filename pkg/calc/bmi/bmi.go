// Package bmi computes adult body mass index.
package bmi

import (
	"math"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/lookup"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

// Category is the adult BMI classification.
type Category string

const (
	Underweight Category = "underweight"
	Normal      Category = "normal"
	Overweight  Category = "overweight"
	Obese       Category = "obese"
)

const (
	// normalLower and normalUpper bound the normal band used for the ideal
	// weight range. The band is [18.5, 25), so the displayed upper bound is
	// the last one-decimal value inside it.
	normalLower = 18.5
	normalUpper = 24.9
)

var categories = lookup.Bands[Category]{
	{Below: 18.5, Value: Underweight},
	{Below: 25, Value: Normal},
	{Below: 30, Value: Overweight},
	{Below: math.Inf(1), Value: Obese},
}

type Input struct {
	WeightKg float64 `json:"weightKg" validate:"gte=10,lte=500"`
	HeightCm float64 `json:"heightCm" validate:"gte=50,lte=272"`
}

func (in Input) Validate() error {
	return validate.Struct(in).OrNil()
}

type Result struct {
	// BMI is rounded to one decimal; Category is derived from the rounded
	// value so the two never disagree.
	BMI           float64  `json:"bmi"`
	Category      Category `json:"category"`
	Description   string   `json:"description"`
	BMIPrime      float64  `json:"bmiPrime"`
	PonderalIndex float64  `json:"ponderalIndex"`
	IdealWeight   Range    `json:"idealWeightKg"`
	// WeightToNormalKg is the change needed to enter the normal band:
	// positive to gain, negative to lose, 0 when already inside.
	WeightToNormalKg float64        `json:"weightToNormalKg"`
	Recommendations  []string       `json:"recommendations"`
	Warnings         []calc.Warning `json:"warnings,omitempty"`
}

// Range is an inclusive numeric range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	m := in.HeightCm / 100
	raw := in.WeightKg / (m * m)
	value := lookup.Round(raw, 1)
	category := Classify(value)

	ideal := IdealWeight(in.HeightCm)

	var toNormal float64
	switch {
	case in.WeightKg < ideal.Min:
		toNormal = lookup.Round(ideal.Min-in.WeightKg, 1)
	case in.WeightKg > ideal.Max:
		toNormal = lookup.Round(ideal.Max-in.WeightKg, 1)
	}

	res := Result{
		BMI:              value,
		Category:         category,
		Description:      describe(category),
		BMIPrime:         lookup.Round(raw/25, 2),
		PonderalIndex:    lookup.Round(in.WeightKg/(m*m*m), 1),
		IdealWeight:      ideal,
		WeightToNormalKg: toNormal,
		Recommendations:  recommendations(category),
	}

	if value < 16 {
		res.Warnings = append(res.Warnings, calc.Warning{
			Severity: calc.SeverityCritical,
			Message:  "A BMI below 16 indicates severe thinness. Please consult a healthcare provider.",
		})
	}
	if value >= 40 {
		res.Warnings = append(res.Warnings, calc.Warning{
			Severity: calc.SeverityWarning,
			Message:  "A BMI of 40 or above carries a high risk of weight-related conditions. Medical guidance is recommended.",
		})
	}

	return res, nil
}

// Classify maps a BMI value to its category. Intervals are half-open:
// 24.9 is normal, 25.0 is overweight.
func Classify(bmi float64) Category {
	return categories.Find(bmi)
}

// IdealWeight inverts the normal band over heightCm.
func IdealWeight(heightCm float64) Range {
	m := heightCm / 100
	return Range{
		Min: lookup.Round(normalLower*m*m, 1),
		Max: lookup.Round(normalUpper*m*m, 1),
	}
}

func describe(c Category) string {
	switch c {
	case Underweight:
		return "Your weight is below the healthy range for your height."
	case Normal:
		return "Your weight is within the healthy range for your height."
	case Overweight:
		return "Your weight is above the healthy range for your height."
	case Obese:
		return "Your weight is well above the healthy range for your height."
	default:
		calc.UnknownVariant("bmi category", c)
		return ""
	}
}

func recommendations(c Category) []string {
	switch c {
	case Underweight:
		return []string{
			"Add nutrient-dense foods such as nuts, whole grains and dairy to each meal.",
			"Include strength training to build lean muscle mass.",
			"Eat smaller, more frequent meals if large portions are difficult.",
			"Talk to a healthcare provider to rule out underlying causes.",
		}
	case Normal:
		return []string{
			"Keep a balanced diet rich in vegetables, fruit and lean protein.",
			"Aim for at least 150 minutes of moderate activity per week.",
			"Re-check your BMI periodically to stay in the healthy range.",
		}
	case Overweight:
		return []string{
			"Aim for a modest calorie deficit of 300-500 kcal per day.",
			"Increase daily movement, for example a brisk 30-minute walk.",
			"Prefer whole foods and limit sugary drinks and refined snacks.",
			"Prioritise 7-9 hours of sleep, which supports appetite regulation.",
		}
	case Obese:
		return []string{
			"Consult a healthcare provider for a personalised weight-management plan.",
			"Start with low-impact activity such as walking, cycling or swimming.",
			"Focus on sustainable habits: portion control and regular meals.",
			"Monitor blood pressure, blood sugar and cholesterol regularly.",
		}
	default:
		calc.UnknownVariant("bmi category", c)
		return nil
	}
}
