package energy

import "github.com/charlie0129/healthcalc/pkg/calc"

// Formula selects the BMR equation. It is a closed set: MifflinStJeor,
// HarrisBenedict and KatchMcArdle.
type Formula interface {
	Name() string
	isFormula()
}

// MifflinStJeor is the default equation.
type MifflinStJeor struct{}

// HarrisBenedict is the 1984 revised Harris-Benedict equation.
type HarrisBenedict struct{}

// KatchMcArdle derives BMR from lean mass and therefore needs body fat.
type KatchMcArdle struct {
	BodyFatPercent float64 `json:"bodyFatPercent" validate:"gte=3,lte=60"`
}

func (MifflinStJeor) Name() string  { return "mifflin-st-jeor" }
func (HarrisBenedict) Name() string { return "harris-benedict" }
func (KatchMcArdle) Name() string   { return "katch-mcardle" }

func (MifflinStJeor) isFormula()  {}
func (HarrisBenedict) isFormula() {}
func (KatchMcArdle) isFormula()   {}

// ParseFormula maps a formula name to its variant. Katch-McArdle needs the
// caller-supplied body fat.
func ParseFormula(name string, bodyFatPercent float64) (Formula, bool) {
	switch name {
	case "", MifflinStJeor{}.Name(), "mifflin":
		return MifflinStJeor{}, true
	case HarrisBenedict{}.Name(), "harris":
		return HarrisBenedict{}, true
	case KatchMcArdle{}.Name(), "katch":
		return KatchMcArdle{BodyFatPercent: bodyFatPercent}, true
	default:
		return nil, false
	}
}

// BaseBMR evaluates f before any medical or lifestyle adjustment.
func BaseBMR(f Formula, g calc.Gender, age int, weightKg, heightCm float64) float64 {
	a := float64(age)
	switch f := f.(type) {
	case MifflinStJeor:
		return mifflin(g, weightKg, heightCm) - 5*a
	case HarrisBenedict:
		switch g {
		case calc.Male:
			return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*a
		case calc.Female:
			return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*a
		default:
			calc.UnknownVariant("gender", g)
		}
	case KatchMcArdle:
		lean := weightKg * (1 - f.BodyFatPercent/100)
		return 370 + 21.6*lean
	default:
		calc.UnknownVariant("bmr formula", f)
	}
	return 0
}

// mifflin is the age-independent part of Mifflin-St Jeor.
func mifflin(g calc.Gender, weightKg, heightCm float64) float64 {
	v := 10*weightKg + 6.25*heightCm
	switch g {
	case calc.Male:
		return v + 5
	case calc.Female:
		return v - 161
	default:
		calc.UnknownVariant("gender", g)
		return 0
	}
}
