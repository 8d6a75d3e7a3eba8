// Package kidsbmi classifies BMI for children and teens aged 2 to 20 by
// percentile against an age- and gender-specific reference table.
package kidsbmi

import (
	"math"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/lookup"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

type Category string

const (
	Underweight Category = "underweight"
	Healthy     Category = "healthy"
	Overweight  Category = "overweight"
	Obese       Category = "obese"
)

var categories = lookup.Bands[Category]{
	{Below: 5, Value: Underweight},
	{Below: 85, Value: Healthy},
	{Below: 95, Value: Overweight},
	{Below: math.Inf(1), Value: Obese},
}

// Mid-parental height offset between boys and girls, in cm.
const midParentalOffsetCm = 13

type Input struct {
	Gender    calc.Gender `json:"gender" validate:"oneof=male female"`
	AgeMonths int         `json:"ageMonths" validate:"gte=24,lte=240"`
	WeightKg  float64     `json:"weightKg" validate:"gte=5,lte=200"`
	HeightCm  float64     `json:"heightCm" validate:"gte=70,lte=220"`

	// Both parents' heights are needed for the adult height prediction.
	FatherHeightCm *float64 `json:"fatherHeightCm,omitempty" validate:"omitempty,gte=130,lte=230"`
	MotherHeightCm *float64 `json:"motherHeightCm,omitempty" validate:"omitempty,gte=130,lte=230"`
}

func (in Input) Validate() error {
	verr := validate.Struct(in)
	if (in.FatherHeightCm == nil) != (in.MotherHeightCm == nil) {
		field := "fatherHeightCm"
		if in.MotherHeightCm == nil {
			field = "motherHeightCm"
		}
		verr.Add(field, "both parents' heights are required for a height prediction")
	}
	return verr.OrNil()
}

type Result struct {
	BMI         float64  `json:"bmi"`
	Percentile  float64  `json:"percentile"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	AgeYears    float64  `json:"ageYears"`
	// HealthyWeightKg spans the 5th to 85th percentile BMI at this height.
	HealthyWeightKg        Range          `json:"healthyWeightKg"`
	PredictedAdultHeightCm *float64       `json:"predictedAdultHeightCm,omitempty"`
	Nutrition              []string       `json:"nutrition"`
	Activity               []string       `json:"activity"`
	Warnings               []calc.Warning `json:"warnings,omitempty"`
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	age := float64(in.AgeMonths)
	m := in.HeightCm / 100
	bmi := in.WeightKg / (m * m)

	pct := lookup.Round(PercentileFor(in.Gender, age, bmi), 1)
	category := Classify(pct)

	ref := ReferenceRow(in.Gender, age)

	res := Result{
		BMI:         lookup.Round(bmi, 1),
		Percentile:  pct,
		Category:    category,
		Description: describe(category),
		AgeYears:    lookup.Round(age/12, 1),
		HealthyWeightKg: Range{
			Min: lookup.Round(ref[0]*m*m, 1),
			Max: lookup.Round(ref[5]*m*m, 1),
		},
		Nutrition: nutrition(category, ageGroupOf(in.AgeMonths)),
		Activity:  activity(ageGroupOf(in.AgeMonths)),
	}

	if in.FatherHeightCm != nil && in.MotherHeightCm != nil {
		h := PredictAdultHeight(in.Gender, *in.FatherHeightCm, *in.MotherHeightCm)
		res.PredictedAdultHeightCm = &h
	}

	if category == Underweight || category == Obese {
		res.Warnings = append(res.Warnings, calc.Warning{
			Severity: calc.SeverityCaution,
			Message:  "Discuss this result with your child's pediatrician, who can assess growth over time.",
		})
	}

	return res, nil
}

// Classify maps a percentile to its category.
func Classify(percentile float64) Category {
	return categories.Find(percentile)
}

// PredictAdultHeight uses the mid-parental method.
func PredictAdultHeight(g calc.Gender, fatherCm, motherCm float64) float64 {
	sum := fatherCm + motherCm
	switch g {
	case calc.Male:
		return lookup.Round((sum+midParentalOffsetCm)/2, 1)
	case calc.Female:
		return lookup.Round((sum-midParentalOffsetCm)/2, 1)
	default:
		calc.UnknownVariant("gender", g)
		return 0
	}
}

func describe(c Category) string {
	switch c {
	case Underweight:
		return "BMI is below the 5th percentile for age and gender."
	case Healthy:
		return "BMI is between the 5th and 85th percentile for age and gender."
	case Overweight:
		return "BMI is between the 85th and 95th percentile for age and gender."
	case Obese:
		return "BMI is at or above the 95th percentile for age and gender."
	default:
		calc.UnknownVariant("kids bmi category", c)
		return ""
	}
}
