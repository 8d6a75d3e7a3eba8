// Package bloodsugar classifies glucose and HbA1c readings and derives an
// overall diabetes risk level.
package bloodsugar

import (
	"fmt"
	"math"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/lookup"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

// Category is ordered by severity; a larger value is worse.
type Category int

const (
	Normal Category = iota
	Prediabetes
	Diabetes
)

func (c Category) String() string {
	switch c {
	case Normal:
		return "normal"
	case Prediabetes:
		return "prediabetes"
	case Diabetes:
		return "diabetes"
	default:
		calc.UnknownVariant("glucose category", int(c))
		return ""
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	for _, v := range []Category{Normal, Prediabetes, Diabetes} {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown glucose category %q", b)
}

// Thresholds in mg/dL (glucose) and percent (HbA1c).
var (
	fastingBands = lookup.Bands[Category]{
		{Below: 100, Value: Normal},
		{Below: 126, Value: Prediabetes},
		{Below: math.Inf(1), Value: Diabetes},
	}
	postMealBands = lookup.Bands[Category]{
		{Below: 140, Value: Normal},
		{Below: 200, Value: Prediabetes},
		{Below: math.Inf(1), Value: Diabetes},
	}
	hba1cBands = lookup.Bands[Category]{
		{Below: 5.7, Value: Normal},
		{Below: 6.5, Value: Prediabetes},
		{Below: math.Inf(1), Value: Diabetes},
	}
)

const hypoglycemiaBelow = 70

type History string

const (
	HistoryNone     History = "none"
	HistoryFamily   History = "family"
	HistoryPersonal History = "personal"
)

func (h History) weight() int {
	switch h {
	case HistoryNone:
		return 0
	case HistoryFamily:
		return 1
	case HistoryPersonal:
		return 2
	default:
		calc.UnknownVariant("diabetes history", h)
		return 0
	}
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

var riskBands = lookup.Bands[RiskLevel]{
	{Below: 1, Value: RiskLow},
	{Below: 3, Value: RiskModerate},
	{Below: 5, Value: RiskHigh},
	{Below: math.Inf(1), Value: RiskVeryHigh},
}

// Input readings are in mg/dL and percent; mmol/L is converted at the
// boundary.
type Input struct {
	FastingMgdl  float64  `json:"fastingMgdl" validate:"gte=20,lte=600"`
	PostMealMgdl *float64 `json:"postMealMgdl,omitempty" validate:"omitempty,gte=20,lte=800"`
	HbA1c        *float64 `json:"hba1c,omitempty" validate:"omitempty,gte=3,lte=20"`
	History      History  `json:"history" validate:"oneof=none family personal"`
}

func (in Input) Validate() error {
	return validate.Struct(in).OrNil()
}

type Reading struct {
	Value    float64  `json:"value"`
	Category Category `json:"category"`
}

type Result struct {
	Fasting  Reading  `json:"fasting"`
	PostMeal *Reading `json:"postMeal,omitempty"`
	HbA1c    *Reading `json:"hba1c,omitempty"`
	// EstimatedAverageGlucose is derived from HbA1c, in mg/dL.
	EstimatedAverageGlucose *float64       `json:"estimatedAverageGlucose,omitempty"`
	Overall                 Category       `json:"overall"`
	Risk                    RiskLevel      `json:"risk"`
	Recommendations         []string       `json:"recommendations"`
	Warnings                []calc.Warning `json:"warnings,omitempty"`
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{
		Fasting: Reading{Value: in.FastingMgdl, Category: fastingBands.Find(in.FastingMgdl)},
	}
	worst := res.Fasting.Category

	if in.PostMealMgdl != nil {
		r := Reading{Value: *in.PostMealMgdl, Category: postMealBands.Find(*in.PostMealMgdl)}
		res.PostMeal = &r
		worst = max(worst, r.Category)
	}
	if in.HbA1c != nil {
		r := Reading{Value: *in.HbA1c, Category: hba1cBands.Find(*in.HbA1c)}
		res.HbA1c = &r
		worst = max(worst, r.Category)

		eag := lookup.Round(EstimatedAverageGlucose(*in.HbA1c), 1)
		res.EstimatedAverageGlucose = &eag
	}

	res.Overall = worst
	res.Risk = Risk(worst, in.History)
	res.Recommendations = recommendations(res.Risk)

	if in.FastingMgdl < hypoglycemiaBelow {
		res.Warnings = append(res.Warnings, calc.Warning{
			Severity: calc.SeverityCritical,
			Message:  "A fasting glucose below 70 mg/dL indicates low blood sugar. Eat fast-acting carbohydrates and seek medical advice if symptoms persist.",
		})
	}
	if worst == Diabetes {
		res.Warnings = append(res.Warnings, calc.Warning{
			Severity: calc.SeverityWarning,
			Message:  "One or more readings are in the diabetes range. A diagnosis requires confirmation by a healthcare provider.",
		})
	}

	return res, nil
}

// Risk combines the worst reading with diabetes history.
func Risk(worst Category, h History) RiskLevel {
	score := 2*int(worst) + h.weight()
	return riskBands.Find(float64(score))
}

// EstimatedAverageGlucose converts HbA1c (%) to mg/dL.
func EstimatedAverageGlucose(hba1c float64) float64 {
	return 28.7*hba1c - 46.7
}

func recommendations(r RiskLevel) []string {
	switch r {
	case RiskLow:
		return []string{
			"Keep up a balanced diet and regular physical activity.",
			"Re-check fasting glucose every 3 years, or sooner if symptoms appear.",
		}
	case RiskModerate:
		return []string{
			"Reduce refined carbohydrates and sugary drinks.",
			"Aim for 150 minutes of moderate activity per week.",
			"Re-test within a year.",
		}
	case RiskHigh:
		return []string{
			"Schedule an appointment with your doctor to confirm these results.",
			"Losing 5-7% of body weight significantly lowers progression risk.",
			"Ask about a structured diabetes prevention programme.",
		}
	case RiskVeryHigh:
		return []string{
			"See a healthcare provider promptly to discuss diagnosis and treatment.",
			"Monitor your blood glucose as advised by your care team.",
			"Learn the symptoms of high and low blood sugar.",
		}
	default:
		calc.UnknownVariant("risk level", r)
		return nil
	}
}
