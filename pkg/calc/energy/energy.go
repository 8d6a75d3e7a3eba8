// Package energy computes basal metabolic rate, total daily energy
// expenditure, goal calories and a macro split.
//
// The BMR calculator and the calorie calculator share this package. They
// differ only in Variant: VariantCalorie floors goal calories at a minimum
// safe intake, VariantBMR reports metabolic detail instead.
package energy

import (
	"fmt"
	"math"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

type Variant string

const (
	VariantBMR     Variant = "bmr"
	VariantCalorie Variant = "calorie"
)

type ActivityLevel string

const (
	Sedentary       ActivityLevel = "sedentary"
	Light           ActivityLevel = "light"
	Moderate        ActivityLevel = "moderate"
	VeryActive      ActivityLevel = "very_active"
	ExtremelyActive ActivityLevel = "extremely_active"
)

// ActivityLevels lists every level in ascending order.
var ActivityLevels = []ActivityLevel{Sedentary, Light, Moderate, VeryActive, ExtremelyActive}

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:       1.2,
	Light:           1.375,
	Moderate:        1.55,
	VeryActive:      1.725,
	ExtremelyActive: 1.9,
}

// Multiplier returns the TDEE multiplier for l.
func (l ActivityLevel) Multiplier() float64 {
	m, ok := activityMultipliers[l]
	if !ok {
		calc.UnknownVariant("activity level", l)
	}
	return m
}

type Goal string

const (
	Lose     Goal = "lose"
	Maintain Goal = "maintain"
	Gain     Goal = "gain"
)

type Thyroid string

const (
	ThyroidNone  Thyroid = "none"
	Hypothyroid  Thyroid = "hypothyroid"
	Hyperthyroid Thyroid = "hyperthyroid"
)

const (
	kcalPerKg = 7700

	minSafeCaloriesMale   = 1500
	minSafeCaloriesFemale = 1200

	fiberPer1000Kcal = 14

	caffeineMaxBoost = 0.10
)

type Input struct {
	Gender   calc.Gender   `json:"gender" validate:"oneof=male female"`
	Age      int           `json:"age" validate:"gte=15,lte=100"`
	WeightKg float64       `json:"weightKg" validate:"gte=30,lte=300"`
	HeightCm float64       `json:"heightCm" validate:"gte=120,lte=250"`
	Formula  Formula       `json:"-" validate:"-"`
	Activity ActivityLevel `json:"activity" validate:"oneof=sedentary light moderate very_active extremely_active"`
	Goal     Goal          `json:"goal" validate:"oneof=lose maintain gain"`
	// WeeklyChangeKg is negative for weight loss.
	WeeklyChangeKg float64  `json:"weeklyChangeKg" validate:"gte=-1,lte=1"`
	TargetWeightKg *float64 `json:"targetWeightKg,omitempty" validate:"omitempty,gte=30,lte=300"`

	Thyroid    Thyroid `json:"thyroid,omitempty" validate:"omitempty,oneof=none hypothyroid hyperthyroid"`
	Diabetes   bool    `json:"diabetes,omitempty"`
	Smoker     bool    `json:"smoker,omitempty"`
	CaffeineMg float64 `json:"caffeineMg,omitempty" validate:"gte=0,lte=1000"`
}

func (in Input) Validate() error {
	verr := validate.Struct(in)

	switch f := in.Formula.(type) {
	case nil:
		verr.Add("formula", "is required")
	case KatchMcArdle:
		verr.Check("formula", f)
	}

	if !verr.Has("goal") && !verr.Has("weeklyChangeKg") {
		switch {
		case in.Goal == Lose && in.WeeklyChangeKg > 0:
			verr.Add("weeklyChangeKg", "must not be positive when the goal is to lose weight")
		case in.Goal == Gain && in.WeeklyChangeKg < 0:
			verr.Add("weeklyChangeKg", "must not be negative when the goal is to gain weight")
		case in.Goal == Maintain && in.WeeklyChangeKg != 0:
			verr.Add("weeklyChangeKg", "must be 0 when the goal is to maintain weight")
		}
	}

	return verr.OrNil()
}

// Adjustment is one multiplicative correction applied to the base BMR.
type Adjustment struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

type Macros struct {
	ProteinG       int `json:"proteinG"`
	FatG           int `json:"fatG"`
	CarbsG         int `json:"carbsG"`
	FiberG         int `json:"fiberG"`
	ProteinPercent int `json:"proteinPercent"`
	FatPercent     int `json:"fatPercent"`
	CarbsPercent   int `json:"carbsPercent"`
}

type ActivityCalories struct {
	Level    ActivityLevel `json:"level"`
	Calories int           `json:"calories"`
}

type Result struct {
	Variant            Variant            `json:"variant"`
	Formula            string             `json:"formula"`
	BaseBMR            int                `json:"baseBmr"`
	BMR                int                `json:"bmr"`
	Adjustments        []Adjustment       `json:"adjustments,omitempty"`
	ActivityMultiplier float64            `json:"activityMultiplier"`
	TDEE               int                `json:"tdee"`
	DailyDelta         int                `json:"dailyDelta"`
	GoalCalories       int                `json:"goalCalories"`
	FlooredToMinimum   bool               `json:"flooredToMinimum,omitempty"`
	Macros             Macros             `json:"macros"`
	ActivityTable      []ActivityCalories `json:"activityTable"`
	MetabolicAge       *int               `json:"metabolicAge,omitempty"`
	WeeksToTarget      *int               `json:"weeksToTarget,omitempty"`
	Insights           []string           `json:"insights,omitempty"`
	Warnings           []calc.Warning     `json:"warnings,omitempty"`
}

// CalculateBMR is Calculate with VariantBMR.
func CalculateBMR(in Input) (Result, error) { return Calculate(in, VariantBMR) }

// CalculateCalories is Calculate with VariantCalorie.
func CalculateCalories(in Input) (Result, error) { return Calculate(in, VariantCalorie) }

func Calculate(in Input, v Variant) (Result, error) {
	if v != VariantBMR && v != VariantCalorie {
		calc.UnknownVariant("energy variant", v)
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	base := BaseBMR(in.Formula, in.Gender, in.Age, in.WeightKg, in.HeightCm)
	adjustments := adjustmentsFor(in)
	bmr := base
	for _, a := range adjustments {
		bmr *= a.Factor
	}

	mult := in.Activity.Multiplier()
	tdee := bmr * mult
	delta := in.WeeklyChangeKg * kcalPerKg / 7
	goal := math.Round(tdee + delta)

	res := Result{
		Variant:            v,
		Formula:            in.Formula.Name(),
		BaseBMR:            int(math.Round(base)),
		BMR:                int(math.Round(bmr)),
		Adjustments:        adjustments,
		ActivityMultiplier: mult,
		TDEE:               int(math.Round(tdee)),
		DailyDelta:         int(math.Round(delta)),
	}

	if v == VariantCalorie {
		if floor := minSafeCalories(in.Gender); goal < floor {
			goal = floor
			res.FlooredToMinimum = true
			res.Warnings = append(res.Warnings, calc.Warning{
				Severity: calc.SeverityCaution,
				Message:  fmt.Sprintf("Goal calories were raised to the minimum safe intake of %d kcal. Consider a slower rate of change.", int(floor)),
			})
		}
	}
	res.GoalCalories = int(goal)
	res.Macros = macrosFor(in.Goal, in.WeightKg, goal)

	for _, l := range ActivityLevels {
		res.ActivityTable = append(res.ActivityTable, ActivityCalories{
			Level:    l,
			Calories: int(math.Round(bmr * l.Multiplier())),
		})
	}

	if in.TargetWeightKg != nil && in.WeeklyChangeKg != 0 {
		diff := *in.TargetWeightKg - in.WeightKg
		if diff*in.WeeklyChangeKg > 0 {
			weeks := int(math.Ceil(diff / in.WeeklyChangeKg))
			res.WeeksToTarget = &weeks
		}
	}

	if v == VariantBMR {
		age := MetabolicAge(in.Gender, in.WeightKg, in.HeightCm, bmr)
		res.MetabolicAge = &age
		res.Insights = append(res.Insights, metabolicInsight(age, in.Age))
	}

	res.Warnings = append(res.Warnings, warningsFor(in, bmr, tdee, goal)...)
	return res, nil
}

func adjustmentsFor(in Input) []Adjustment {
	var out []Adjustment
	switch in.Thyroid {
	case "", ThyroidNone:
	case Hypothyroid:
		out = append(out, Adjustment{Name: "hypothyroidism", Factor: 0.85})
	case Hyperthyroid:
		out = append(out, Adjustment{Name: "hyperthyroidism", Factor: 1.20})
	default:
		calc.UnknownVariant("thyroid condition", in.Thyroid)
	}
	if in.Diabetes {
		out = append(out, Adjustment{Name: "diabetes", Factor: 1.05})
	}
	if in.Smoker {
		out = append(out, Adjustment{Name: "smoking", Factor: 1.10})
	}
	if in.CaffeineMg > 0 {
		boost := math.Min(0.02*in.CaffeineMg/100, caffeineMaxBoost)
		out = append(out, Adjustment{Name: "caffeine", Factor: 1 + boost})
	}
	return out
}

func minSafeCalories(g calc.Gender) float64 {
	switch g {
	case calc.Male:
		return minSafeCaloriesMale
	case calc.Female:
		return minSafeCaloriesFemale
	default:
		calc.UnknownVariant("gender", g)
		return 0
	}
}

func macrosFor(g Goal, weightKg, calories float64) Macros {
	var proteinPerKg, fatShare float64
	switch g {
	case Lose:
		proteinPerKg, fatShare = 2.2, 0.25
	case Maintain:
		proteinPerKg, fatShare = 1.8, 0.30
	case Gain:
		proteinPerKg, fatShare = 2.0, 0.25
	default:
		calc.UnknownVariant("goal", g)
	}

	protein := weightKg * proteinPerKg
	fat := calories * fatShare / 9
	carbs := math.Max(0, (calories-protein*4-fat*9)/4)

	m := Macros{
		ProteinG: int(math.Round(protein)),
		FatG:     int(math.Round(fat)),
		CarbsG:   int(math.Round(carbs)),
		FiberG:   int(math.Round(calories / 1000 * fiberPer1000Kcal)),
	}
	if calories > 0 {
		m.ProteinPercent = int(math.Round(protein * 4 / calories * 100))
		m.FatPercent = int(math.Round(fatShare * 100))
		m.CarbsPercent = int(math.Round(carbs * 4 / calories * 100))
	}
	return m
}

// MetabolicAge is the age at which unadjusted Mifflin-St Jeor gives bmr for
// the same gender, weight and height, clamped to 18-80.
func MetabolicAge(g calc.Gender, weightKg, heightCm, bmr float64) int {
	age := (mifflin(g, weightKg, heightCm) - bmr) / 5
	return int(math.Round(math.Max(18, math.Min(80, age))))
}

func metabolicInsight(metabolicAge, age int) string {
	switch {
	case metabolicAge < age-2:
		return fmt.Sprintf("Your metabolic age of %d is younger than your actual age of %d: your metabolism is above average for your profile.", metabolicAge, age)
	case metabolicAge > age+2:
		return fmt.Sprintf("Your metabolic age of %d is older than your actual age of %d. Strength training and regular activity can raise your resting metabolism.", metabolicAge, age)
	default:
		return fmt.Sprintf("Your metabolic age of %d matches your actual age.", metabolicAge)
	}
}

func warningsFor(in Input, bmr, tdee, goal float64) []calc.Warning {
	var out []calc.Warning
	if goal < 0.8*bmr {
		out = append(out, calc.Warning{
			Severity: calc.SeverityCritical,
			Message:  "Goal calories are below 80% of your BMR. Eating this little can cause muscle loss and nutrient deficiencies; consult a healthcare provider.",
		})
	}
	if goal > tdee+1000 {
		out = append(out, calc.Warning{
			Severity: calc.SeverityWarning,
			Message:  "A surplus of more than 1000 kcal per day mostly adds fat. Consider a slower rate of gain.",
		})
	}
	if in.Age > 65 {
		out = append(out, calc.Warning{
			Severity: calc.SeverityCaution,
			Message:  "Energy needs change with age. Check with your doctor before making large dietary changes.",
		})
	}
	return out
}
