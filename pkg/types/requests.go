// Package types holds the request bodies shared by the HTTP server, the
// client and the CLI.
//
// Requests carry raw user input: numbers in the caller's unit system, dates
// as YYYY-MM-DD and times of day as HH:MM. Each request converts itself into
// the calculator's metric Input; problems found while converting are
// reported as a *validate.ValidationError, just like the calculator's own
// range checks.
package types

import (
	"strings"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/bloodsugar"
	"github.com/charlie0129/healthcalc/pkg/calc/bmi"
	"github.com/charlie0129/healthcalc/pkg/calc/bodyfat"
	"github.com/charlie0129/healthcalc/pkg/calc/energy"
	"github.com/charlie0129/healthcalc/pkg/calc/heartrate"
	"github.com/charlie0129/healthcalc/pkg/calc/hydration"
	"github.com/charlie0129/healthcalc/pkg/calc/kidsbmi"
	"github.com/charlie0129/healthcalc/pkg/calc/ovulation"
	"github.com/charlie0129/healthcalc/pkg/calc/pregnancy"
	"github.com/charlie0129/healthcalc/pkg/calc/sleep"
	"github.com/charlie0129/healthcalc/pkg/calc/units"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

// Defaults fill in what a request leaves out.
type Defaults struct {
	Units units.System
	Today calc.Date
}

// WithUnits selects how weight and length fields are read: "metric" (kg,
// cm) or "imperial" (lb, in). Empty means the server default.
type WithUnits struct {
	Units string `json:"units,omitempty"`
}

func (u WithUnits) system(d Defaults, verr *validate.ValidationError) units.System {
	if u.Units == "" {
		if d.Units == "" {
			return units.Metric
		}
		return d.Units
	}
	sys, err := units.ParseSystem(u.Units)
	if err != nil {
		verr.Add("units", "must be metric or imperial")
		return units.Metric
	}
	return sys
}

func parseDate(field, s string, verr *validate.ValidationError) calc.Date {
	if s == "" {
		return calc.Date{}
	}
	d, err := calc.ParseDate(s)
	if err != nil {
		verr.Add(field, "must be a date in YYYY-MM-DD format")
	}
	return d
}

// today parses an optional "today" override, falling back to d.Today.
func today(s string, d Defaults, verr *validate.ValidationError) calc.Date {
	if s == "" {
		return d.Today
	}
	return parseDate("today", s, verr)
}

func length(p *float64, sys units.System) *float64 {
	if p == nil {
		return nil
	}
	v := units.LengthToCm(*p, sys)
	return &v
}

func weight(p *float64, sys units.System) *float64 {
	if p == nil {
		return nil
	}
	v := units.WeightToKg(*p, sys)
	return &v
}

type BMIRequest struct {
	WithUnits
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

func (r BMIRequest) Input(d Defaults) (bmi.Input, error) {
	verr := &validate.ValidationError{}
	sys := r.system(d, verr)
	return bmi.Input{
		WeightKg: units.WeightToKg(r.Weight, sys),
		HeightCm: units.LengthToCm(r.Height, sys),
	}, verr.OrNil()
}

type KidsBMIRequest struct {
	WithUnits
	Gender       calc.Gender `json:"gender"`
	AgeMonths    int         `json:"ageMonths"`
	Weight       float64     `json:"weight"`
	Height       float64     `json:"height"`
	FatherHeight *float64    `json:"fatherHeight,omitempty"`
	MotherHeight *float64    `json:"motherHeight,omitempty"`
}

func (r KidsBMIRequest) Input(d Defaults) (kidsbmi.Input, error) {
	verr := &validate.ValidationError{}
	sys := r.system(d, verr)
	return kidsbmi.Input{
		Gender:         r.Gender,
		AgeMonths:      r.AgeMonths,
		WeightKg:       units.WeightToKg(r.Weight, sys),
		HeightCm:       units.LengthToCm(r.Height, sys),
		FatherHeightCm: length(r.FatherHeight, sys),
		MotherHeightCm: length(r.MotherHeight, sys),
	}, verr.OrNil()
}

type EnergyRequest struct {
	WithUnits
	Gender  calc.Gender `json:"gender"`
	Age     int         `json:"age"`
	Weight  float64     `json:"weight"`
	Height  float64     `json:"height"`
	Formula string      `json:"formula,omitempty"`
	// BodyFatPercent is only used by the Katch-McArdle formula.
	BodyFatPercent float64              `json:"bodyFatPercent,omitempty"`
	Activity       energy.ActivityLevel `json:"activity"`
	Goal           energy.Goal          `json:"goal,omitempty"`
	// WeeklyChange is in kg or lb per week, negative to lose weight.
	WeeklyChange float64  `json:"weeklyChange,omitempty"`
	TargetWeight *float64 `json:"targetWeight,omitempty"`

	Thyroid    energy.Thyroid `json:"thyroid,omitempty"`
	Diabetes   bool           `json:"diabetes,omitempty"`
	Smoker     bool           `json:"smoker,omitempty"`
	CaffeineMg float64        `json:"caffeineMg,omitempty"`
}

func (r EnergyRequest) Input(d Defaults) (energy.Input, error) {
	verr := &validate.ValidationError{}
	sys := r.system(d, verr)

	formula, ok := energy.ParseFormula(strings.ToLower(r.Formula), r.BodyFatPercent)
	if !ok {
		verr.Add("formula", "must be one of: mifflin-st-jeor, harris-benedict, katch-mcardle")
	}
	goal := r.Goal
	if goal == "" {
		goal = energy.Maintain
	}

	return energy.Input{
		Gender:         r.Gender,
		Age:            r.Age,
		WeightKg:       units.WeightToKg(r.Weight, sys),
		HeightCm:       units.LengthToCm(r.Height, sys),
		Formula:        formula,
		Activity:       r.Activity,
		Goal:           goal,
		WeeklyChangeKg: units.WeightToKg(r.WeeklyChange, sys),
		TargetWeightKg: weight(r.TargetWeight, sys),
		Thyroid:        r.Thyroid,
		Diabetes:       r.Diabetes,
		Smoker:         r.Smoker,
		CaffeineMg:     r.CaffeineMg,
	}, verr.OrNil()
}

// BodyFatMeasurements selects the method with Method and carries the fields
// that method needs: circumferences (in the request's length unit) for navy
// and ymca, skinfolds in mm for the Jackson-Pollock methods.
type BodyFatMeasurements struct {
	Method bodyfat.Method `json:"method"`

	Neck  float64  `json:"neck,omitempty"`
	Waist float64  `json:"waist,omitempty"`
	Hip   *float64 `json:"hip,omitempty"`

	Chest       float64 `json:"chest,omitempty"`
	Midaxillary float64 `json:"midaxillary,omitempty"`
	Triceps     float64 `json:"triceps,omitempty"`
	Subscapular float64 `json:"subscapular,omitempty"`
	Abdomen     float64 `json:"abdomen,omitempty"`
	Suprailiac  float64 `json:"suprailiac,omitempty"`
	Thigh       float64 `json:"thigh,omitempty"`
}

type BodyFatRequest struct {
	WithUnits
	Gender       calc.Gender         `json:"gender"`
	Age          int                 `json:"age"`
	Weight       float64             `json:"weight"`
	Height       float64             `json:"height"`
	Measurements BodyFatMeasurements `json:"measurements"`
}

func (r BodyFatRequest) Input(d Defaults) (bodyfat.Input, error) {
	verr := &validate.ValidationError{}
	sys := r.system(d, verr)

	m := r.Measurements
	var ms bodyfat.Measurements
	switch bodyfat.Method(strings.ToLower(string(m.Method))) {
	case bodyfat.MethodUSNavy:
		ms = bodyfat.USNavy{
			NeckCm:  units.LengthToCm(m.Neck, sys),
			WaistCm: units.LengthToCm(m.Waist, sys),
			HipCm:   length(m.Hip, sys),
		}
	case bodyfat.MethodYMCA:
		ms = bodyfat.YMCA{WaistCm: units.LengthToCm(m.Waist, sys)}
	case bodyfat.MethodJP3, "jp3":
		ms = bodyfat.JacksonPollock3{
			Chest:      m.Chest,
			Abdomen:    m.Abdomen,
			Triceps:    m.Triceps,
			Suprailiac: m.Suprailiac,
			Thigh:      m.Thigh,
		}
	case bodyfat.MethodJP7, "jp7":
		ms = bodyfat.JacksonPollock7{
			Chest:       m.Chest,
			Midaxillary: m.Midaxillary,
			Triceps:     m.Triceps,
			Subscapular: m.Subscapular,
			Abdomen:     m.Abdomen,
			Suprailiac:  m.Suprailiac,
			Thigh:       m.Thigh,
		}
	case "":
		verr.Add("measurements.method", "is required")
	default:
		verr.Add("measurements.method", "must be one of: navy, ymca, jackson-pollock-3, jackson-pollock-7")
	}

	return bodyfat.Input{
		Gender:       r.Gender,
		Age:          r.Age,
		WeightKg:     units.WeightToKg(r.Weight, sys),
		HeightCm:     units.LengthToCm(r.Height, sys),
		Measurements: ms,
	}, verr.OrNil()
}

type HeartRateMethod struct {
	Type      string `json:"type"`
	RestingHR int    `json:"restingHr,omitempty"`
	MaxHR     int    `json:"maxHr,omitempty"`
}

type HeartRateRequest struct {
	Age    int             `json:"age"`
	Method HeartRateMethod `json:"method"`
	// RestingHR is reported back by the age and custom methods.
	RestingHR *int `json:"restingHr,omitempty"`
}

func (r HeartRateRequest) Input(_ Defaults) (heartrate.Input, error) {
	verr := &validate.ValidationError{}

	var m heartrate.Method
	switch strings.ToLower(r.Method.Type) {
	case "", "age":
		m = heartrate.AgeFormula{}
	case "karvonen":
		m = heartrate.Karvonen{RestingHR: r.Method.RestingHR}
	case "custom":
		m = heartrate.Custom{MaxHR: r.Method.MaxHR}
	default:
		verr.Add("method.type", "must be one of: age, karvonen, custom")
	}

	return heartrate.Input{Age: r.Age, Method: m, RestingHR: r.RestingHR}, verr.OrNil()
}

type BloodSugarRequest struct {
	// GlucoseUnit is "mg/dL" (default) or "mmol/L". HbA1c is always %.
	GlucoseUnit string             `json:"glucoseUnit,omitempty"`
	Fasting     float64            `json:"fasting"`
	PostMeal    *float64           `json:"postMeal,omitempty"`
	HbA1c       *float64           `json:"hba1c,omitempty"`
	History     bloodsugar.History `json:"history,omitempty"`
}

func (r BloodSugarRequest) Input(_ Defaults) (bloodsugar.Input, error) {
	verr := &validate.ValidationError{}

	toMgdl := func(v float64) float64 { return v }
	switch strings.ToLower(r.GlucoseUnit) {
	case "", "mg/dl", "mgdl":
	case "mmol/l", "mmol":
		toMgdl = units.MmolToMgdl
	default:
		verr.Add("glucoseUnit", "must be mg/dL or mmol/L")
	}

	in := bloodsugar.Input{
		FastingMgdl: toMgdl(r.Fasting),
		HbA1c:       r.HbA1c,
		History:     r.History,
	}
	if r.PostMeal != nil {
		v := toMgdl(*r.PostMeal)
		in.PostMealMgdl = &v
	}
	if in.History == "" {
		in.History = bloodsugar.HistoryNone
	}
	return in, verr.OrNil()
}

type HydrationRequest struct {
	WithUnits
	Gender calc.Gender `json:"gender"`
	Age    int         `json:"age"`
	Weight float64     `json:"weight"`

	ExerciseHours float64             `json:"exerciseHours,omitempty"`
	Intensity     hydration.Intensity `json:"intensity,omitempty"`
	SweatRate     hydration.SweatRate `json:"sweatRate,omitempty"`

	Climate    hydration.Climate     `json:"climate,omitempty"`
	Conditions []hydration.Condition `json:"conditions,omitempty"`

	Pregnant      bool `json:"pregnant,omitempty"`
	Breastfeeding bool `json:"breastfeeding,omitempty"`

	CaffeineMg    float64 `json:"caffeineMg,omitempty"`
	AlcoholDrinks int     `json:"alcoholDrinks,omitempty"`
}

func (r HydrationRequest) Input(d Defaults) (hydration.Input, error) {
	verr := &validate.ValidationError{}
	sys := r.system(d, verr)

	climate := r.Climate
	if climate == "" {
		climate = hydration.Temperate
	}

	return hydration.Input{
		Gender:        r.Gender,
		Age:           r.Age,
		WeightKg:      units.WeightToKg(r.Weight, sys),
		ExerciseHours: r.ExerciseHours,
		Intensity:     r.Intensity,
		SweatRate:     r.SweatRate,
		Climate:       climate,
		Conditions:    r.Conditions,
		Pregnant:      r.Pregnant,
		Breastfeeding: r.Breastfeeding,
		CaffeineMg:    r.CaffeineMg,
		AlcoholDrinks: r.AlcoholDrinks,
	}, verr.OrNil()
}

type OvulationRequest struct {
	LMP          string `json:"lmp"`
	CycleLength  int    `json:"cycleLength,omitempty"`
	PeriodLength int    `json:"periodLength,omitempty"`
	Today        string `json:"today,omitempty"`
}

func (r OvulationRequest) Input(d Defaults) (ovulation.Input, error) {
	verr := &validate.ValidationError{}

	in := ovulation.Input{
		LMP:          parseDate("lmp", r.LMP, verr),
		CycleLength:  r.CycleLength,
		PeriodLength: r.PeriodLength,
		Today:        today(r.Today, d, verr),
	}
	if in.CycleLength == 0 {
		in.CycleLength = 28
	}
	if in.PeriodLength == 0 {
		in.PeriodLength = 5
	}
	return in, verr.OrNil()
}

// DueDateMethod selects the dating reference with Type: "lmp" and
// "conception" use Date; "ultrasound" uses ScanDate, Weeks and Days.
type DueDateMethod struct {
	Type     string `json:"type"`
	Date     string `json:"date,omitempty"`
	ScanDate string `json:"scanDate,omitempty"`
	Weeks    int    `json:"weeks,omitempty"`
	Days     int    `json:"days,omitempty"`
}

type DueDateRequest struct {
	Method DueDateMethod `json:"method"`
	Today  string        `json:"today,omitempty"`
}

func (r DueDateRequest) Input(d Defaults) (pregnancy.Input, error) {
	verr := &validate.ValidationError{}

	var m pregnancy.Method
	switch strings.ToLower(r.Method.Type) {
	case "lmp":
		m = pregnancy.LMP{Date: parseDate("method.date", r.Method.Date, verr)}
	case "conception":
		m = pregnancy.Conception{Date: parseDate("method.date", r.Method.Date, verr)}
	case "ultrasound":
		m = pregnancy.Ultrasound{
			ScanDate: parseDate("method.scanDate", r.Method.ScanDate, verr),
			Weeks:    r.Method.Weeks,
			Days:     r.Method.Days,
		}
	case "":
		verr.Add("method.type", "is required")
	default:
		verr.Add("method.type", "must be one of: lmp, conception, ultrasound")
	}

	return pregnancy.Input{Method: m, Today: today(r.Today, d, verr)}, verr.OrNil()
}

type SleepRequest struct {
	Mode sleep.Mode `json:"mode"`
	// Time is HH:MM, the wake-up time for mode "wake" and the bedtime for
	// mode "bed".
	Time  string `json:"time"`
	Count int    `json:"count,omitempty"`
	Age   *int   `json:"age,omitempty"`
}

func (r SleepRequest) Input(_ Defaults) (sleep.Input, error) {
	verr := &validate.ValidationError{}

	in := sleep.Input{Mode: r.Mode, Count: r.Count, Age: r.Age}
	if in.Count == 0 {
		in.Count = 3
	}
	if r.Time == "" {
		verr.Add("time", "is required")
	} else if c, err := sleep.ParseClock(r.Time); err != nil {
		verr.Add("time", "must be a time of day in HH:MM format")
	} else {
		in.Time = c
	}
	return in, verr.OrNil()
}
