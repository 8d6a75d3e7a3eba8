package types

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/bodyfat"
	"github.com/charlie0129/healthcalc/pkg/calc/energy"
	"github.com/charlie0129/healthcalc/pkg/calc/pregnancy"
	"github.com/charlie0129/healthcalc/pkg/calc/units"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

var defaults = Defaults{Units: units.Metric, Today: calc.NewDate(2024, time.June, 1)}

func TestBMIRequestUnits(t *testing.T) {
	var req BMIRequest
	if err := json.Unmarshal([]byte(`{"units":"imperial","weight":176.37,"height":70.866}`), &req); err != nil {
		t.Fatal(err)
	}
	in, err := req.Input(defaults)
	if err != nil {
		t.Fatalf("Input returned error: %v", err)
	}
	if math.Abs(in.WeightKg-80) > 0.01 || math.Abs(in.HeightCm-180) > 0.01 {
		t.Fatalf("unexpected conversion %+v", in)
	}

	// The server default applies when the request does not say.
	in, err = BMIRequest{Weight: 176.37, Height: 70.866}.Input(Defaults{Units: units.Imperial})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(in.WeightKg-80) > 0.01 {
		t.Fatalf("default units not applied: %+v", in)
	}

	_, err = BMIRequest{WithUnits: WithUnits{Units: "stone"}, Weight: 1, Height: 1}.Input(defaults)
	if verr, ok := validate.As(err); !ok || !verr.Has("units") {
		t.Fatalf("expected units error, got %v", err)
	}
}

func TestEnergyRequestFormula(t *testing.T) {
	in, err := EnergyRequest{Formula: "Katch-McArdle", BodyFatPercent: 20}.Input(defaults)
	if err != nil {
		t.Fatal(err)
	}
	if f, ok := in.Formula.(energy.KatchMcArdle); !ok || f.BodyFatPercent != 20 {
		t.Fatalf("unexpected formula %#v", in.Formula)
	}
	if in.Goal != energy.Maintain {
		t.Fatalf("goal should default to maintain, got %s", in.Goal)
	}

	_, err = EnergyRequest{Formula: "cunningham"}.Input(defaults)
	if verr, ok := validate.As(err); !ok || !verr.Has("formula") {
		t.Fatalf("expected formula error, got %v", err)
	}
}

func TestBodyFatRequestMethods(t *testing.T) {
	hip := 38.0
	req := BodyFatRequest{
		WithUnits:    WithUnits{Units: "imperial"},
		Measurements: BodyFatMeasurements{Method: "navy", Neck: 13, Waist: 30, Hip: &hip},
	}
	in, err := req.Input(defaults)
	if err != nil {
		t.Fatal(err)
	}
	navy, ok := in.Measurements.(bodyfat.USNavy)
	if !ok || navy.NeckCm != 13*2.54 || navy.HipCm == nil || *navy.HipCm != 38*2.54 {
		t.Fatalf("unexpected measurements %#v", in.Measurements)
	}

	in, err = BodyFatRequest{Measurements: BodyFatMeasurements{Method: "jp3", Chest: 10, Abdomen: 20, Thigh: 15}}.Input(defaults)
	if err != nil {
		t.Fatal(err)
	}
	// Skinfolds are always mm.
	if jp, ok := in.Measurements.(bodyfat.JacksonPollock3); !ok || jp.Chest != 10 {
		t.Fatalf("unexpected measurements %#v", in.Measurements)
	}

	_, err = BodyFatRequest{Measurements: BodyFatMeasurements{Method: "calipers"}}.Input(defaults)
	if verr, ok := validate.As(err); !ok || !verr.Has("measurements.method") {
		t.Fatalf("expected method error, got %v", err)
	}
}

func TestBloodSugarRequestMmol(t *testing.T) {
	post := 7.8
	in, err := BloodSugarRequest{GlucoseUnit: "mmol/L", Fasting: 5.5, PostMeal: &post}.Input(defaults)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(in.FastingMgdl-99.1) > 0.01 || math.Abs(*in.PostMealMgdl-140.54) > 0.01 {
		t.Fatalf("unexpected conversion %+v", in)
	}
	if in.History != "none" {
		t.Fatalf("history should default to none, got %q", in.History)
	}
}

func TestDueDateRequest(t *testing.T) {
	in, err := DueDateRequest{Method: DueDateMethod{Type: "lmp", Date: "2024-01-01"}}.Input(defaults)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := in.Method.(pregnancy.LMP); !ok || !in.Today.Equal(defaults.Today) {
		t.Fatalf("unexpected input %+v", in)
	}

	_, err = DueDateRequest{Method: DueDateMethod{Type: "ultrasound", ScanDate: "01/03/2024"}, Today: "tomorrow"}.Input(defaults)
	verr, ok := validate.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"method.scanDate", "today"} {
		if !verr.Has(f) {
			t.Errorf("expected %s error, got %v", f, verr.Fields)
		}
	}
}

func TestOvulationRequestDefaults(t *testing.T) {
	in, err := OvulationRequest{LMP: "2024-05-20"}.Input(defaults)
	if err != nil {
		t.Fatal(err)
	}
	if in.CycleLength != 28 || in.PeriodLength != 5 || in.LMP.String() != "2024-05-20" {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestSleepRequest(t *testing.T) {
	in, err := SleepRequest{Mode: "wake", Time: "06:30"}.Input(defaults)
	if err != nil {
		t.Fatal(err)
	}
	if in.Count != 3 || in.Time.String() != "06:30" {
		t.Fatalf("unexpected input %+v", in)
	}

	_, err = SleepRequest{Mode: "wake", Time: "6pm"}.Input(defaults)
	if verr, ok := validate.As(err); !ok || !verr.Has("time") {
		t.Fatalf("expected time error, got %v", err)
	}
}
