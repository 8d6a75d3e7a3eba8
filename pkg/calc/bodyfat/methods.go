package bodyfat

import (
	"math"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/units"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

// Measurements is the method-specific measurement set. Each variant carries
// exactly the fields its formula needs: USNavy, YMCA, JacksonPollock3 and
// JacksonPollock7.
type Measurements interface {
	Method() Method
	validate(g calc.Gender, verr *validate.ValidationError)
}

type Method string

const (
	MethodUSNavy Method = "navy"
	MethodYMCA   Method = "ymca"
	MethodJP3    Method = "jackson-pollock-3"
	MethodJP7    Method = "jackson-pollock-7"
)

// USNavy uses circumferences in cm. Hip is required for women only.
type USNavy struct {
	NeckCm  float64  `json:"neckCm" validate:"gte=20,lte=80"`
	WaistCm float64  `json:"waistCm" validate:"gte=40,lte=200"`
	HipCm   *float64 `json:"hipCm,omitempty" validate:"omitempty,gte=50,lte=200"`
}

// YMCA needs only the waist circumference at the navel.
type YMCA struct {
	WaistCm float64 `json:"waistCm" validate:"gte=40,lte=200"`
}

// JacksonPollock3 takes three skinfolds in mm. Men use chest, abdomen and
// thigh; women use triceps, suprailiac and thigh.
type JacksonPollock3 struct {
	Chest      float64 `json:"chest,omitempty" validate:"omitempty,gte=2,lte=80"`
	Abdomen    float64 `json:"abdomen,omitempty" validate:"omitempty,gte=2,lte=80"`
	Triceps    float64 `json:"triceps,omitempty" validate:"omitempty,gte=2,lte=80"`
	Suprailiac float64 `json:"suprailiac,omitempty" validate:"omitempty,gte=2,lte=80"`
	Thigh      float64 `json:"thigh" validate:"gte=2,lte=80"`
}

// JacksonPollock7 takes seven skinfolds in mm, the same sites for both
// genders.
type JacksonPollock7 struct {
	Chest       float64 `json:"chest" validate:"gte=2,lte=80"`
	Midaxillary float64 `json:"midaxillary" validate:"gte=2,lte=80"`
	Triceps     float64 `json:"triceps" validate:"gte=2,lte=80"`
	Subscapular float64 `json:"subscapular" validate:"gte=2,lte=80"`
	Abdomen     float64 `json:"abdomen" validate:"gte=2,lte=80"`
	Suprailiac  float64 `json:"suprailiac" validate:"gte=2,lte=80"`
	Thigh       float64 `json:"thigh" validate:"gte=2,lte=80"`
}

func (USNavy) Method() Method          { return MethodUSNavy }
func (YMCA) Method() Method            { return MethodYMCA }
func (JacksonPollock3) Method() Method { return MethodJP3 }
func (JacksonPollock7) Method() Method { return MethodJP7 }

func (m USNavy) validate(g calc.Gender, verr *validate.ValidationError) {
	verr.Check("measurements", m)
	if g == calc.Female && m.HipCm == nil {
		verr.Add("measurements.hipCm", "is required for women")
	}
	if !verr.Has("measurements.waistCm") && !verr.Has("measurements.neckCm") {
		switch {
		case g == calc.Male && m.WaistCm <= m.NeckCm:
			verr.Add("measurements.waistCm", "must be larger than the neck circumference")
		case g == calc.Female && m.HipCm != nil && m.WaistCm+*m.HipCm <= m.NeckCm:
			verr.Add("measurements.waistCm", "waist plus hip must be larger than the neck circumference")
		}
	}
}

func (m YMCA) validate(_ calc.Gender, verr *validate.ValidationError) {
	verr.Check("measurements", m)
}

func (m JacksonPollock3) validate(g calc.Gender, verr *validate.ValidationError) {
	verr.Check("measurements", m)
	var required map[string]float64
	switch g {
	case calc.Male:
		required = map[string]float64{"chest": m.Chest, "abdomen": m.Abdomen}
	case calc.Female:
		required = map[string]float64{"triceps": m.Triceps, "suprailiac": m.Suprailiac}
	default:
		return
	}
	for field, v := range required {
		if v == 0 {
			verr.Add("measurements."+field, "is required for %ss", g)
		}
	}
}

func (m JacksonPollock7) validate(_ calc.Gender, verr *validate.ValidationError) {
	verr.Check("measurements", m)
}

// percent evaluates the formula for the measurement variant.
func percent(m Measurements, g calc.Gender, age int, weightKg, heightCm float64) float64 {
	switch m := m.(type) {
	case USNavy:
		return navy(m, g, heightCm)
	case YMCA:
		return ymca(m, g, weightKg)
	case JacksonPollock3:
		return siri(jp3Density(m, g, age))
	case JacksonPollock7:
		return siri(jp7Density(m, g, age))
	default:
		calc.UnknownVariant("body fat method", m)
		return 0
	}
}

func navy(m USNavy, g calc.Gender, heightCm float64) float64 {
	switch g {
	case calc.Male:
		return 495/(1.0324-0.19077*math.Log10(m.WaistCm-m.NeckCm)+0.15456*math.Log10(heightCm)) - 450
	case calc.Female:
		return 495/(1.29579-0.35004*math.Log10(m.WaistCm+*m.HipCm-m.NeckCm)+0.22100*math.Log10(heightCm)) - 450
	default:
		calc.UnknownVariant("gender", g)
		return 0
	}
}

func ymca(m YMCA, g calc.Gender, weightKg float64) float64 {
	waistIn := units.CmToInch(m.WaistCm)
	lb := units.KgToLb(weightKg)
	var constant float64
	switch g {
	case calc.Male:
		constant = -98.42
	case calc.Female:
		constant = -76.76
	default:
		calc.UnknownVariant("gender", g)
	}
	return (constant + 4.15*waistIn - 0.082*lb) / lb * 100
}

func jp3Density(m JacksonPollock3, g calc.Gender, age int) float64 {
	a := float64(age)
	switch g {
	case calc.Male:
		s := m.Chest + m.Abdomen + m.Thigh
		return 1.10938 - 0.0008267*s + 0.0000016*s*s - 0.0002574*a
	case calc.Female:
		s := m.Triceps + m.Suprailiac + m.Thigh
		return 1.0994921 - 0.0009929*s + 0.0000023*s*s - 0.0001392*a
	default:
		calc.UnknownVariant("gender", g)
		return 0
	}
}

func jp7Density(m JacksonPollock7, g calc.Gender, age int) float64 {
	a := float64(age)
	s := m.Chest + m.Midaxillary + m.Triceps + m.Subscapular + m.Abdomen + m.Suprailiac + m.Thigh
	switch g {
	case calc.Male:
		return 1.112 - 0.00043499*s + 0.00000055*s*s - 0.00028826*a
	case calc.Female:
		return 1.097 - 0.00046971*s + 0.00000056*s*s - 0.00012828*a
	default:
		calc.UnknownVariant("gender", g)
		return 0
	}
}

// siri converts body density to percent fat.
func siri(density float64) float64 {
	return 495/density - 450
}
